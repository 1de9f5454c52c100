package doculyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/w-h-a/doculyzer/searcher"
)

const answerSystemPrompt = `
You are an AI assistant that answers questions about invoices.
Use the provided invoice data to answer the user's question accurately.
Provide specific numbers, dates, and details when available.
If you cannot answer based on the provided data, say so clearly and include 'cannot answer' phrase in your response.
`

// Answer synthesis runs cool so the same records produce the same answer.
const answerTemperature = 0.3

const filteredContentNotice = "The response contains inappropriate content and has been filtered."

// noAnswerMarker is the phrase the answer prompt instructs the model to
// emit when the records do not support an answer.
const noAnswerMarker = "cannot answer"

type generatedAnswer struct {
	text       string
	responseId string
}

// generateAnswer produces an answer from the retrieved invoices, re-gates
// the model's own output, and evaluates whatever passed the gate. A
// flagged answer is replaced with the filtered-content notice and never
// evaluated or persisted.
func (a *Agent) generateAnswer(ctx context.Context, prompt string, invoices []searcher.Invoice) (generatedAnswer, error) {
	invoiceContext, err := json.MarshalIndent(invoices, "", "  ")
	if err != nil {
		return generatedAnswer{}, fmt.Errorf("serialize invoices: %w", err)
	}

	userMessage := fmt.Sprintf("Question: %s\n\nInvoice Data:\n%s", prompt, invoiceContext)

	start := time.Now()
	text, err := a.generator.Complete(ctx, answerSystemPrompt, userMessage, answerTemperature)
	latency := time.Since(start)
	if err != nil {
		return generatedAnswer{}, err
	}

	toxic, err := a.isToxic(ctx, text)
	if err != nil {
		return generatedAnswer{}, err
	}

	if toxic {
		slog.WarnContext(ctx, "toxic content detected in generated answer")
		return generatedAnswer{text: filteredContentNotice}, nil
	}

	record, err := a.engine.Evaluate(ctx, prompt, text, invoices, latency)
	if err != nil {
		return generatedAnswer{}, err
	}

	return generatedAnswer{text: text, responseId: record.Id}, nil
}

// isUngrounded reports an answer that should not be paired with evidence.
func isUngrounded(answer string) bool {
	if len(strings.TrimSpace(answer)) == 0 {
		return true
	}
	return strings.Contains(strings.ToLower(answer), noAnswerMarker)
}
