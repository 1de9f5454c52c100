package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/doculyzer/generator"
)

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Complete(ctx context.Context, system string, user string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.options.Model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return rsp.Choices[0].Message.Content, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	if len(options.BaseUrl) > 0 {
		cfg := openai.DefaultConfig(options.ApiKey)
		cfg.BaseURL = options.BaseUrl
		g.client = openai.NewClientWithConfig(cfg)
	} else {
		g.client = openai.NewClient(options.ApiKey)
	}

	return g
}
