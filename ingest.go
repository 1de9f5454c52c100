package doculyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/w-h-a/doculyzer/docstore"
)

const alreadyProcessedMessage = "Invoice has already been processed."

// Ingest extracts invoice fields from a stored document, writes them back
// as document metadata, and indexes the invoice for retrieval. Re-running
// on a processed document is a no-op. Nothing is rolled back on failure; a
// retry finds the status still unset and redoes extraction.
func (a *Agent) Ingest(ctx context.Context, documentName string) IngestResult {
	status, err := a.docs.Status(ctx, documentName)
	if err != nil {
		return a.failIngest(ctx, documentName, err)
	}

	if status == docstore.StatusProcessed {
		return IngestResult{Success: true, Message: alreadyProcessedMessage}
	}

	document, err := a.docs.GetStream(ctx, documentName)
	if err != nil {
		return a.failIngest(ctx, documentName, err)
	}

	invoice, err := a.extractor.Extract(ctx, document, documentName)
	if err != nil {
		return a.failIngest(ctx, documentName, err)
	}

	metadata := map[string]string{
		"InvoiceNumber": invoice.Number,
		"InvoiceDate":   invoice.Date.Format("2006-01-02"),
		"CustomerName":  invoice.Customer,
		"CustomerId":    invoice.CustomerId,
		"TotalAmount":   fmt.Sprintf("%.2f", invoice.TotalAmount),
		"Currency":      invoice.Currency,
		"ProcessedDate": time.Now().UTC().Format(time.RFC3339),
		"Status":        docstore.StatusProcessed,
	}

	if err := a.docs.SetMetadata(ctx, documentName, metadata); err != nil {
		return a.failIngest(ctx, documentName, err)
	}

	if err := a.searcher.Upsert(ctx, invoice); err != nil {
		return a.failIngest(ctx, documentName, err)
	}

	return IngestResult{
		Success: true,
		Message: "Invoice processed successfully",
		Invoice: &invoice,
	}
}

func (a *Agent) failIngest(ctx context.Context, documentName string, err error) IngestResult {
	slog.ErrorContext(ctx, "error processing invoice document", "document", documentName, "error", err)
	return IngestResult{
		Success:      false,
		ErrorMessage: err.Error(),
	}
}
