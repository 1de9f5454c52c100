package extractor

import (
	"context"

	"github.com/w-h-a/doculyzer/searcher"
)

type Extractor interface {
	Extract(ctx context.Context, document []byte, name string) (searcher.Invoice, error)
}
