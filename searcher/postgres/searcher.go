package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/w-h-a/doculyzer/searcher"
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
		detail := "failed to register pg searcher with otel"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	DRIVER = driver
}

type postgresSearcher struct {
	options searcher.Options
	conn    *sql.DB
}

func (s *postgresSearcher) Search(ctx context.Context, text string, opts ...searcher.SearchOption) ([]searcher.Invoice, error) {
	if text == "*" {
		return s.query(
			ctx,
			selectClause+` ORDER BY invoice_date DESC LIMIT $1`,
			searcher.MaxResults,
		)
	}

	invoices, err := s.query(
		ctx,
		selectClause+`
		WHERE to_tsvector('english', search_text) @@ plainto_tsquery('english', $1)
		LIMIT $2`,
		text,
		searcher.MaxResults,
	)
	if err != nil {
		return nil, err
	}

	if len(invoices) > 0 || s.options.Embedder == nil {
		return invoices, nil
	}

	// No lexical hits. Fall back to embedding similarity.
	vec, err := s.options.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.query(
		ctx,
		selectClause+`
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`,
		pgvector.NewVector(vec),
		searcher.MaxResults,
	)
}

func (s *postgresSearcher) SearchByDateRange(ctx context.Context, start time.Time, end time.Time) ([]searcher.Invoice, error) {
	return s.query(
		ctx,
		selectClause+`
		WHERE invoice_date >= $1 AND invoice_date <= $2
		LIMIT $3`,
		start,
		end,
		searcher.MaxResults,
	)
}

func (s *postgresSearcher) SearchByCustomer(ctx context.Context, name string, opts ...searcher.SearchOption) ([]searcher.Invoice, error) {
	options := searcher.NewSearchOptions(opts...)

	query := selectClause + ` WHERE customer_name = $1`
	args := []any{name}

	if !options.Start.IsZero() {
		args = append(args, options.Start)
		query += fmt.Sprintf(" AND invoice_date >= $%d", len(args))
	}

	if !options.End.IsZero() {
		args = append(args, options.End)
		query += fmt.Sprintf(" AND invoice_date <= $%d", len(args))
	}

	args = append(args, searcher.MaxResults)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	return s.query(ctx, query, args...)
}

func (s *postgresSearcher) Upsert(ctx context.Context, invoice searcher.Invoice) error {
	itemsJSON, err := json.Marshal(invoice.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}

	args := []any{
		invoice.DocumentName,
		invoice.Number,
		invoice.Date,
		invoice.Vendor,
		invoice.Customer,
		invoice.CustomerId,
		invoice.TotalAmount,
		invoice.Currency,
		itemsJSON,
		searchText(invoice),
	}

	if s.options.Embedder != nil {
		vec, err := s.options.Embedder.Embed(ctx, searchText(invoice))
		if err != nil {
			return fmt.Errorf("embed invoice: %w", err)
		}
		args = append(args, pgvector.NewVector(vec))
	}

	if _, err := s.conn.ExecContext(ctx, upsertQuery(s.options.Embedder != nil), args...); err != nil {
		return err
	}

	return nil
}

// upsertQuery writes the embedding column only when embeddings are
// configured; the column does not exist otherwise.
func upsertQuery(withEmbedding bool) string {
	columns := []string{
		"document_name",
		"invoice_number",
		"invoice_date",
		"vendor_name",
		"customer_name",
		"customer_id",
		"total_amount",
		"currency",
		"line_items",
		"search_text",
	}
	if withEmbedding {
		columns = append(columns, "embedding")
	}

	placeholders := make([]string, len(columns))
	updates := make([]string, 0, len(columns)-1)
	for i, column := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if column != "document_name" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
	}

	return fmt.Sprintf(
		`INSERT INTO invoices (%s) VALUES (%s) ON CONFLICT (document_name) DO UPDATE SET %s`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
}

const selectClause = `
	SELECT
		document_name,
		invoice_number,
		invoice_date,
		vendor_name,
		customer_name,
		customer_id,
		total_amount,
		currency,
		line_items
	FROM invoices`

func (s *postgresSearcher) query(ctx context.Context, query string, args ...any) ([]searcher.Invoice, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []searcher.Invoice

	for rows.Next() {
		var invoice searcher.Invoice
		var itemsJSON []byte

		if err := rows.Scan(
			&invoice.DocumentName,
			&invoice.Number,
			&invoice.Date,
			&invoice.Vendor,
			&invoice.Customer,
			&invoice.CustomerId,
			&invoice.TotalAmount,
			&invoice.Currency,
			&itemsJSON,
		); err != nil {
			return nil, err
		}

		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &invoice.LineItems); err != nil {
				return nil, fmt.Errorf("unmarshal line items: %w", err)
			}
		}

		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}

// searchText flattens the invoice into the text the full-text index and
// embeddings are built over.
func searchText(invoice searcher.Invoice) string {
	text := fmt.Sprintf(
		"%s %s %s %s %.2f %s",
		invoice.Number,
		invoice.Vendor,
		invoice.Customer,
		invoice.CustomerId,
		invoice.TotalAmount,
		invoice.Currency,
	)
	for _, item := range invoice.LineItems {
		text += fmt.Sprintf(" %s %s %s", item.Product, item.Code, item.Description)
	}
	return text
}

func (s *postgresSearcher) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS invoices (
			document_name TEXT PRIMARY KEY,
			invoice_number TEXT NOT NULL DEFAULT '',
			invoice_date TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
			vendor_name TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			customer_id TEXT NOT NULL DEFAULT '',
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT '',
			line_items JSONB NOT NULL DEFAULT '[]',
			search_text TEXT NOT NULL DEFAULT ''
		)
	`

	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return err
	}

	// The embedding column exists only on databases that have run with an
	// embedder. It is added here on first configuration.
	if s.options.Embedder == nil {
		return nil
	}

	if _, err := s.conn.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}

	if _, err := s.conn.ExecContext(ctx, `ALTER TABLE invoices ADD COLUMN IF NOT EXISTS embedding vector(1536)`); err != nil {
		return err
	}

	return nil
}

func NewSearcher(opts ...searcher.Option) searcher.Searcher {
	options := searcher.NewOptions(opts...)

	conn, err := sql.Open(DRIVER, options.Location)
	if err != nil {
		detail := "failed to open pg searcher connection"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	s := &postgresSearcher{
		options: options,
		conn:    conn,
	}

	if err := s.ensureSchema(options.Context); err != nil {
		detail := "failed to ensure pg searcher schema"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	return s
}
