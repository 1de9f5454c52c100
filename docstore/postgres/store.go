package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/w-h-a/doculyzer/docstore"
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
		detail := "failed to register pg docstore with otel"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	DRIVER = driver
}

type postgresStore struct {
	options docstore.Options
	conn    *sql.DB
}

func (s *postgresStore) GetStream(ctx context.Context, name string) ([]byte, error) {
	var content []byte

	err := s.conn.QueryRowContext(
		ctx,
		`SELECT content FROM documents WHERE name = $1`,
		name,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s not found", name)
	}
	if err != nil {
		return nil, err
	}

	return content, nil
}

func (s *postgresStore) SetMetadata(ctx context.Context, name string, metadata map[string]string) error {
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	result, err := s.conn.ExecContext(
		ctx,
		`UPDATE documents SET metadata = metadata || $2 WHERE name = $1`,
		name,
		metaJSON,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("document %s not found", name)
	}

	return nil
}

func (s *postgresStore) Status(ctx context.Context, name string) (string, error) {
	var status sql.NullString

	err := s.conn.QueryRowContext(
		ctx,
		`SELECT metadata->>'Status' FROM documents WHERE name = $1`,
		name,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return status.String, nil
}

func (s *postgresStore) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			content BYTEA NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'
		)
	`

	_, err := s.conn.ExecContext(ctx, schema)
	return err
}

func NewStore(opts ...docstore.Option) docstore.Store {
	options := docstore.NewOptions(opts...)

	conn, err := sql.Open(DRIVER, options.Location)
	if err != nil {
		detail := "failed to open pg docstore connection"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	s := &postgresStore{
		options: options,
		conn:    conn,
	}

	if err := s.ensureSchema(options.Context); err != nil {
		detail := "failed to ensure pg docstore schema"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	return s
}
