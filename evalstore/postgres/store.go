package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/w-h-a/doculyzer/evalstore"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

var DRIVER string

func init() {
	driver, err := otelsql.Register(
		"postgres",
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		detail := "failed to register pg evalstore with otel"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	DRIVER = driver
}

type postgresStore struct {
	options evalstore.Options
	conn    *sql.DB
}

func (s *postgresStore) Create(ctx context.Context, record evalstore.Record) error {
	query := `
		INSERT INTO evaluations (
			id,
			query,
			response,
			groundedness,
			relevance,
			completeness,
			latency_ms,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.conn.ExecContext(
		ctx,
		query,
		record.Id,
		record.Query,
		record.Response,
		record.Groundedness,
		record.Relevance,
		record.Completeness,
		record.LatencyMs,
		record.Timestamp,
	)

	return err
}

func (s *postgresStore) PatchFeedback(ctx context.Context, id string, satisfied bool) error {
	result, err := s.conn.ExecContext(
		ctx,
		`UPDATE evaluations SET user_feedback = $2 WHERE id = $1`,
		id,
		satisfied,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return evalstore.ErrNotFound
	}

	return nil
}

func (s *postgresStore) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			response TEXT NOT NULL,
			groundedness DOUBLE PRECISION,
			relevance DOUBLE PRECISION,
			completeness DOUBLE PRECISION NOT NULL DEFAULT 0,
			latency_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			user_feedback BOOLEAN
		)
	`

	_, err := s.conn.ExecContext(ctx, schema)
	return err
}

func NewStore(opts ...evalstore.Option) evalstore.Store {
	options := evalstore.NewOptions(opts...)

	conn, err := sql.Open(DRIVER, options.Location)
	if err != nil {
		detail := "failed to open pg evalstore connection"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	s := &postgresStore{
		options: options,
		conn:    conn,
	}

	if err := s.ensureSchema(options.Context); err != nil {
		detail := "failed to ensure pg evalstore schema"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	return s
}
