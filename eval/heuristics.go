package eval

import (
	"strings"

	"github.com/w-h-a/doculyzer/searcher"
)

// HeuristicGroundedness is 1.0 when any retrieved invoice number appears
// verbatim in the response, else 0.0. Invoices without a number are
// ignored rather than matching everything.
func HeuristicGroundedness(response string, invoices []searcher.Invoice) float64 {
	for _, invoice := range invoices {
		if len(invoice.Number) == 0 {
			continue
		}
		if strings.Contains(response, invoice.Number) {
			return 1.0
		}
	}
	return 0.0
}

// HeuristicCompleteness is the fraction of query tokens echoed in the
// response, case-insensitively. An empty query scores 0 to keep the
// division defined.
func HeuristicCompleteness(response string, query string) float64 {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return 0.0
	}

	lower := strings.ToLower(response)

	matched := 0
	for _, token := range tokens {
		if strings.Contains(lower, strings.ToLower(token)) {
			matched++
		}
	}

	return float64(matched) / float64(len(tokens))
}
