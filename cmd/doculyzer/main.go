package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/w-h-a/doculyzer"
	"github.com/w-h-a/doculyzer/classifier"
	azureclassifier "github.com/w-h-a/doculyzer/classifier/azure"
	"github.com/w-h-a/doculyzer/docstore"
	memorydocs "github.com/w-h-a/doculyzer/docstore/memory"
	postgresdocs "github.com/w-h-a/doculyzer/docstore/postgres"
	"github.com/w-h-a/doculyzer/embedder"
	openaiembedder "github.com/w-h-a/doculyzer/embedder/openai"
	"github.com/w-h-a/doculyzer/evalstore"
	memoryevals "github.com/w-h-a/doculyzer/evalstore/memory"
	postgresevals "github.com/w-h-a/doculyzer/evalstore/postgres"
	"github.com/w-h-a/doculyzer/extractor"
	azureextractor "github.com/w-h-a/doculyzer/extractor/azure"
	"github.com/w-h-a/doculyzer/generator"
	anthropicgenerator "github.com/w-h-a/doculyzer/generator/anthropic"
	googlegenerator "github.com/w-h-a/doculyzer/generator/google"
	openaigenerator "github.com/w-h-a/doculyzer/generator/openai"
	"github.com/w-h-a/doculyzer/searcher"
	memorysearcher "github.com/w-h-a/doculyzer/searcher/memory"
	postgressearcher "github.com/w-h-a/doculyzer/searcher/postgres"
	"github.com/w-h-a/doculyzer/server"
	httpserver "github.com/w-h-a/doculyzer/server/http"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address for the HTTP server" default:":8080"`

		// Generator config
		Generator      string `help:"Generator provider: openai, anthropic, or google" default:"openai"`
		GeneratorKey   string `help:"API Key for the generator" env:"GENERATOR_API_KEY" default:""`
		GeneratorModel string `help:"Model identifier for the generator" default:"gpt-4o-mini"`

		// Embedder config (optional; enables similarity fallback for product search)
		EmbedderKey   string `help:"API Key for the embedder" env:"EMBEDDER_API_KEY" default:""`
		EmbedderModel string `help:"Model identifier for the embedder" default:"text-embedding-3-small"`

		// Content safety config
		ContentSafetyLocation string `help:"Endpoint of the content safety service" env:"CONTENT_SAFETY_ENDPOINT" default:""`
		ContentSafetyKey      string `help:"API Key for the content safety service" env:"CONTENT_SAFETY_API_KEY" default:""`

		// Document intelligence config
		DocIntelLocation string `help:"Endpoint of the document analysis service" env:"DOC_INTEL_ENDPOINT" default:""`
		DocIntelKey      string `help:"API Key for the document analysis service" env:"DOC_INTEL_API_KEY" default:""`

		// Storage config
		PostgresLocation string `help:"Postgres connection string; empty selects in-memory stores" env:"POSTGRES_URL" default:""`
	}
)

func main() {
	// Parse inputs
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Create generator
	var gen generator.Generator
	switch cfg.Generator {
	case "anthropic":
		gen = anthropicgenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.GeneratorModel),
		)
	case "google":
		gen = googlegenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.GeneratorModel),
		)
	default:
		gen = openaigenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.GeneratorModel),
		)
	}

	// Create content classifier
	cls := azureclassifier.NewClassifier(
		classifier.WithLocation(cfg.ContentSafetyLocation),
		classifier.WithApiKey(cfg.ContentSafetyKey),
	)

	// Create optional embedder
	var emb embedder.Embedder
	if len(cfg.EmbedderKey) > 0 {
		emb = openaiembedder.NewEmbedder(
			embedder.WithApiKey(cfg.EmbedderKey),
			embedder.WithModel(cfg.EmbedderModel),
		)
	}

	// Create storage collaborators
	var search searcher.Searcher
	var docs docstore.Store
	var evals evalstore.Store

	if len(cfg.PostgresLocation) > 0 {
		searchOpts := []searcher.Option{searcher.WithLocation(cfg.PostgresLocation)}
		if emb != nil {
			searchOpts = append(searchOpts, searcher.WithEmbedder(emb))
		}
		search = postgressearcher.NewSearcher(searchOpts...)
		docs = postgresdocs.NewStore(docstore.WithLocation(cfg.PostgresLocation))
		evals = postgresevals.NewStore(evalstore.WithLocation(cfg.PostgresLocation))
	} else {
		search = memorysearcher.NewSearcher()
		docs = memorydocs.NewStore()
		evals = memoryevals.NewStore()
	}

	// Create extractor
	ext := azureextractor.NewExtractor(
		extractor.WithLocation(cfg.DocIntelLocation),
		extractor.WithApiKey(cfg.DocIntelKey),
	)

	// Create agent
	agent := doculyzer.New(gen, cls, search, docs, ext, evals)

	// Create and run server
	srv := httpserver.NewServer(
		agent,
		server.WithAddress(cfg.Address),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	slog.Info("server started", "address", cfg.Address)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Fatalf("failed to stop server: %v", err)
	}
}
