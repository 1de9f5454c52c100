package doculyzer

import (
	"context"
	"log/slog"
)

const rejectedPromptMessage = "The query contains inappropriate content and cannot be processed."

// Query runs the full pipeline for one prompt: gate, parse, dispatch,
// generate, post-process. Errors never escape; every run produces a
// result envelope.
func (a *Agent) Query(ctx context.Context, prompt string) QueryResult {
	if err := validatePrompt(prompt); err != nil {
		return QueryResult{IsSuccessful: false, ErrorMessage: err.Error()}
	}

	toxic, err := a.isToxic(ctx, prompt)
	if err != nil {
		return a.fail(ctx, err)
	}

	if toxic {
		slog.WarnContext(ctx, "toxic content detected in query")
		return QueryResult{IsSuccessful: false, ErrorMessage: rejectedPromptMessage}
	}

	in, err := a.parser.Parse(ctx, prompt)
	if err != nil {
		return a.fail(ctx, err)
	}

	invoices, err := a.dispatch(ctx, in)
	if err != nil {
		return a.fail(ctx, err)
	}

	answer, err := a.generateAnswer(ctx, prompt, invoices)
	if err != nil {
		return a.fail(ctx, err)
	}

	// An answer with no support should not be paired with evidence.
	if isUngrounded(answer.text) {
		invoices = nil
	}

	return QueryResult{
		Answer:           answer.text,
		RelevantInvoices: invoices,
		IsSuccessful:     true,
		ResponseId:       answer.responseId,
	}
}

func (a *Agent) fail(ctx context.Context, err error) QueryResult {
	slog.ErrorContext(ctx, "error processing document query", "error", err)
	return QueryResult{
		IsSuccessful: false,
		ErrorMessage: err.Error(),
	}
}
