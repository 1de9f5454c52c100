package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/w-h-a/doculyzer/extractor"
	"github.com/w-h-a/doculyzer/searcher"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiVersion = "2024-02-29-preview"

type azureExtractor struct {
	options extractor.Options
	client  *http.Client
}

func (e *azureExtractor) Extract(ctx context.Context, document []byte, name string) (searcher.Invoice, error) {
	operation, err := e.submit(ctx, document)
	if err != nil {
		return searcher.Invoice{}, err
	}

	result, err := e.poll(ctx, operation)
	if err != nil {
		return searcher.Invoice{}, err
	}

	invoice := mapFields(result)
	invoice.DocumentName = name

	return invoice, nil
}

func (e *azureExtractor) submit(ctx context.Context, document []byte) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/documentintelligence/documentModels/prebuilt-invoice:analyze?api-version=%s", e.options.Location, apiVersion),
		bytes.NewReader(document),
	)
	if err != nil {
		return "", err
	}

	req.Header.Add("Content-Type", "application/octet-stream")
	req.Header.Add("Ocp-Apim-Subscription-Key", e.options.ApiKey)

	rsp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return "", fmt.Errorf("document analysis status: %s", rsp.Status)
	}

	operation := rsp.Header.Get("Operation-Location")
	if len(operation) == 0 {
		return "", errors.New("document analysis operation location is missing")
	}

	return operation, nil
}

func (e *azureExtractor) poll(ctx context.Context, operation string) (*analyzeResult, error) {
	ticker := time.NewTicker(e.options.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operation, nil)
		if err != nil {
			return nil, err
		}

		req.Header.Add("Ocp-Apim-Subscription-Key", e.options.ApiKey)

		rsp, err := e.client.Do(req)
		if err != nil {
			return nil, err
		}

		var res struct {
			Status        string         `json:"status"`
			AnalyzeResult *analyzeResult `json:"analyzeResult"`
		}

		err = json.NewDecoder(rsp.Body).Decode(&res)
		rsp.Body.Close()
		if err != nil {
			return nil, err
		}

		switch res.Status {
		case "succeeded":
			if res.AnalyzeResult == nil {
				return nil, errors.New("document analysis returned no result")
			}
			return res.AnalyzeResult, nil
		case "failed":
			return nil, errors.New("document analysis failed")
		}
	}
}

type analyzeResult struct {
	Documents []struct {
		Fields map[string]field `json:"fields"`
	} `json:"documents"`
}

type field struct {
	ValueString   string  `json:"valueString"`
	ValueDate     string  `json:"valueDate"`
	ValueNumber   float64 `json:"valueNumber"`
	ValueCurrency *struct {
		Amount       float64 `json:"amount"`
		CurrencyCode string  `json:"currencyCode"`
	} `json:"valueCurrency"`
	ValueArray  []field          `json:"valueArray"`
	ValueObject map[string]field `json:"valueObject"`
}

func mapFields(result *analyzeResult) searcher.Invoice {
	var invoice searcher.Invoice

	if len(result.Documents) == 0 {
		return invoice
	}

	fields := result.Documents[0].Fields

	if f, ok := fields["InvoiceId"]; ok {
		invoice.Number = f.ValueString
	}

	if f, ok := fields["InvoiceDate"]; ok {
		if date, err := time.Parse("2006-01-02", f.ValueDate); err == nil {
			invoice.Date = date
		}
	}

	if f, ok := fields["VendorName"]; ok {
		invoice.Vendor = f.ValueString
	}

	if f, ok := fields["CustomerName"]; ok {
		invoice.Customer = f.ValueString
	}

	if f, ok := fields["CustomerId"]; ok {
		invoice.CustomerId = f.ValueString
	}

	if f, ok := fields["InvoiceTotal"]; ok && f.ValueCurrency != nil {
		invoice.TotalAmount = f.ValueCurrency.Amount
		invoice.Currency = f.ValueCurrency.CurrencyCode
	}

	if f, ok := fields["Items"]; ok {
		for _, item := range f.ValueArray {
			invoice.LineItems = append(invoice.LineItems, mapLineItem(item.ValueObject))
		}
	}

	return invoice
}

func mapLineItem(fields map[string]field) searcher.LineItem {
	var item searcher.LineItem

	if f, ok := fields["Description"]; ok {
		item.Product = f.ValueString
	}

	if f, ok := fields["ProductCode"]; ok {
		item.Code = f.ValueString
	}

	if f, ok := fields["Quantity"]; ok {
		item.Quantity = f.ValueNumber
	}

	if f, ok := fields["UnitPrice"]; ok && f.ValueCurrency != nil {
		item.UnitPrice = f.ValueCurrency.Amount
	}

	if f, ok := fields["Amount"]; ok && f.ValueCurrency != nil {
		item.TotalPrice = f.ValueCurrency.Amount
	}

	return item
}

func NewExtractor(opts ...extractor.Option) extractor.Extractor {
	options := extractor.NewOptions(opts...)

	return &azureExtractor{
		options: options,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}
