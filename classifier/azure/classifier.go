package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/w-h-a/doculyzer/classifier"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiVersion = "2024-09-01"

type azureClassifier struct {
	options classifier.Options
	client  *http.Client
}

func (c *azureClassifier) Analyze(ctx context.Context, text string) (classifier.Severities, error) {
	body := map[string]any{
		"text": text,
		"categories": []classifier.Category{
			classifier.CategoryHate,
			classifier.CategorySexual,
			classifier.CategoryViolence,
		},
	}

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/contentsafety/text:analyze?api-version=%s", c.options.Location, apiVersion),
		bytes.NewReader(bs),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Ocp-Apim-Subscription-Key", c.options.ApiKey)

	rsp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return nil, fmt.Errorf("content safety status: %s", rsp.Status)
	}

	var res struct {
		CategoriesAnalysis []struct {
			Category classifier.Category `json:"category"`
			Severity int                 `json:"severity"`
		} `json:"categoriesAnalysis"`
	}

	if err := json.NewDecoder(rsp.Body).Decode(&res); err != nil {
		return nil, err
	}

	severities := classifier.Severities{}
	for _, analysis := range res.CategoriesAnalysis {
		severities[analysis.Category] = analysis.Severity
	}

	return severities, nil
}

func NewClassifier(opts ...classifier.Option) classifier.Classifier {
	options := classifier.NewOptions(opts...)

	return &azureClassifier{
		options: options,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}
