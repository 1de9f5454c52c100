package searcher

import (
	"context"
	"time"

	"github.com/w-h-a/doculyzer/embedder"
)

type Option func(*Options)

type Options struct {
	Location string
	Embedder embedder.Embedder
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithEmbedder(embedder embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = embedder
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type SearchOption func(*SearchOptions)

// SearchOptions carries optional bounds for a search call. Zero times mean
// the bound is absent.
type SearchOptions struct {
	Start   time.Time
	End     time.Time
	Context context.Context
}

func WithStart(start time.Time) SearchOption {
	return func(o *SearchOptions) {
		o.Start = start
	}
}

func WithEnd(end time.Time) SearchOption {
	return func(o *SearchOptions) {
		o.End = end
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
