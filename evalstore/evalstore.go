package evalstore

import (
	"context"
	"errors"
)

// ErrNotFound reports a feedback patch that targets an id with no record.
// Stores must never create a record on patch.
var ErrNotFound = errors.New("evaluation record not found")

type Store interface {
	Create(ctx context.Context, record Record) error
	PatchFeedback(ctx context.Context, id string, satisfied bool) error
}
