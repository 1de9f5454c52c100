package doculyzer

import (
	"context"
	"time"

	"github.com/w-h-a/doculyzer/intent"
	"github.com/w-h-a/doculyzer/searcher"
)

// maxDate substitutes an absent upper bound on a date-range query. The
// zero time already serves as the absent lower bound.
var maxDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// dispatch routes a parsed intent to a retrieval strategy. Invalid intents
// short-circuit without touching the index. Result ordering is whatever
// the index returns.
func (a *Agent) dispatch(ctx context.Context, in intent.Intent) ([]searcher.Invoice, error) {
	switch in.Type {
	case intent.TypeInvalid:
		return nil, nil

	case intent.TypeDateRange:
		start := in.StartDate
		end := in.EndDate
		if end.IsZero() {
			end = maxDate
		}
		return a.searcher.SearchByDateRange(ctx, start, end)

	case intent.TypeCustomer:
		var opts []searcher.SearchOption
		if !in.StartDate.IsZero() {
			opts = append(opts, searcher.WithStart(in.StartDate))
		}
		if !in.EndDate.IsZero() {
			opts = append(opts, searcher.WithEnd(in.EndDate))
		}
		return a.searcher.SearchByCustomer(ctx, in.CustomerName, opts...)

	case intent.TypeProduct:
		return a.searcher.Search(ctx, in.SearchTerm)

	default:
		term := in.SearchTerm
		if len(term) == 0 {
			term = "*"
		}
		return a.searcher.Search(ctx, term)
	}
}
