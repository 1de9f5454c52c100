package doculyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/w-h-a/doculyzer/evalstore"
)

// AttachFeedback records a thumbs up/down against a previously persisted
// evaluation. An unknown id is surfaced as NotFound so callers can tell
// "no such prior answer" apart from a storage failure.
func (a *Agent) AttachFeedback(ctx context.Context, responseId string, satisfied bool) FeedbackResult {
	err := a.evals.PatchFeedback(ctx, responseId, satisfied)
	if errors.Is(err, evalstore.ErrNotFound) {
		return FeedbackResult{
			Success:      false,
			ErrorMessage: err.Error(),
			NotFound:     true,
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "error adding user feedback", "response_id", responseId, "error", err)
		return FeedbackResult{
			Success:      false,
			ErrorMessage: err.Error(),
		}
	}

	return FeedbackResult{Success: true}
}
