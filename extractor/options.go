package extractor

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	Location     string
	ApiKey       string
	PollInterval time.Duration
	Context      context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.PollInterval = interval
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		PollInterval: 2 * time.Second,
		Context:      context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
