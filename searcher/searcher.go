package searcher

import (
	"context"
	"time"
)

// MaxResults caps every search call. The cap is handed to the backing
// index, not enforced by callers.
const MaxResults = 1000

type Searcher interface {
	Search(ctx context.Context, text string, opts ...SearchOption) ([]Invoice, error)
	SearchByDateRange(ctx context.Context, start time.Time, end time.Time) ([]Invoice, error)
	SearchByCustomer(ctx context.Context, name string, opts ...SearchOption) ([]Invoice, error)
	Upsert(ctx context.Context, invoice Invoice) error
}
