package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/w-h-a/doculyzer/searcher"
)

type memorySearcher struct {
	options  searcher.Options
	invoices map[string]searcher.Invoice
	mtx      sync.RWMutex
}

func (s *memorySearcher) Search(ctx context.Context, text string, opts ...searcher.SearchOption) ([]searcher.Invoice, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.collect(func(invoice searcher.Invoice) bool {
		if text == "*" {
			return true
		}
		return strings.Contains(strings.ToLower(searchText(invoice)), strings.ToLower(text))
	}), nil
}

func (s *memorySearcher) SearchByDateRange(ctx context.Context, start time.Time, end time.Time) ([]searcher.Invoice, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.collect(func(invoice searcher.Invoice) bool {
		return !invoice.Date.Before(start) && !invoice.Date.After(end)
	}), nil
}

func (s *memorySearcher) SearchByCustomer(ctx context.Context, name string, opts ...searcher.SearchOption) ([]searcher.Invoice, error) {
	options := searcher.NewSearchOptions(opts...)

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.collect(func(invoice searcher.Invoice) bool {
		if invoice.Customer != name {
			return false
		}
		if !options.Start.IsZero() && invoice.Date.Before(options.Start) {
			return false
		}
		if !options.End.IsZero() && invoice.Date.After(options.End) {
			return false
		}
		return true
	}), nil
}

func (s *memorySearcher) Upsert(ctx context.Context, invoice searcher.Invoice) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.invoices[invoice.DocumentName] = invoice

	return nil
}

func (s *memorySearcher) collect(match func(searcher.Invoice) bool) []searcher.Invoice {
	var results []searcher.Invoice

	for _, invoice := range s.invoices {
		if match(invoice) {
			results = append(results, invoice)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DocumentName < results[j].DocumentName
	})

	if len(results) > searcher.MaxResults {
		results = results[:searcher.MaxResults]
	}

	return results
}

func searchText(invoice searcher.Invoice) string {
	var sb strings.Builder
	sb.WriteString(invoice.Number + " " + invoice.Vendor + " " + invoice.Customer + " " + invoice.CustomerId + " " + invoice.Currency)
	for _, item := range invoice.LineItems {
		sb.WriteString(" " + item.Product + " " + item.Code + " " + item.Description)
	}
	return sb.String()
}

func NewSearcher(opts ...searcher.Option) searcher.Searcher {
	options := searcher.NewOptions(opts...)

	return &memorySearcher{
		options:  options,
		invoices: map[string]searcher.Invoice{},
	}
}
