// Package doculyzer orchestrates natural-language queries and document
// ingestion over an invoice index. It composes a generative model, a
// content classifier, a search index, a document store, a field extractor,
// and an evaluation store behind two pipelines and a feedback channel.
package doculyzer

import (
	"github.com/w-h-a/doculyzer/classifier"
	"github.com/w-h-a/doculyzer/docstore"
	"github.com/w-h-a/doculyzer/eval"
	"github.com/w-h-a/doculyzer/evalstore"
	"github.com/w-h-a/doculyzer/extractor"
	"github.com/w-h-a/doculyzer/generator"
	"github.com/w-h-a/doculyzer/intent"
	"github.com/w-h-a/doculyzer/searcher"
)

type Agent struct {
	generator  generator.Generator
	classifier classifier.Classifier
	searcher   searcher.Searcher
	docs       docstore.Store
	extractor  extractor.Extractor
	evals      evalstore.Store
	parser     *intent.Parser
	engine     *eval.Engine
}

func New(
	generator generator.Generator,
	classifier classifier.Classifier,
	searcher searcher.Searcher,
	docs docstore.Store,
	extractor extractor.Extractor,
	evals evalstore.Store,
) *Agent {
	if generator == nil {
		panic("generator is required")
	}

	if classifier == nil {
		panic("classifier is required")
	}

	if searcher == nil {
		panic("searcher is required")
	}

	if docs == nil {
		panic("document store is required")
	}

	if extractor == nil {
		panic("extractor is required")
	}

	if evals == nil {
		panic("evaluation store is required")
	}

	return &Agent{
		generator:  generator,
		classifier: classifier,
		searcher:   searcher,
		docs:       docs,
		extractor:  extractor,
		evals:      evals,
		parser:     intent.NewParser(generator),
		engine:     eval.NewEngine(generator, evals),
	}
}
