package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/doculyzer/evalstore"
	"github.com/w-h-a/doculyzer/generator"
	"github.com/w-h-a/doculyzer/searcher"
)

const systemPrompt = `
You are an AI assistant tasked with evaluating the quality of responses to invoice-related queries. Your task is to assess the quality of a response based on the retrieved documents and the original query.
Evaluate the response using the invoice data and the query. If the query is vague, nonsensical, or unanswerable, and the response does not provide meaningful information, assign a score 0, otherwise provide scores from 0.0 to 1.0 for each of the following:
- Groundedness: Is the response factually supported by the retrieved invoices?
- Relevance: Does the response use information that is relevant to the query?
- Completeness: Does the response fully answer all parts of the query?

Examples:

Query: 'What's the total amount of invoices in 2015?'
Response: 'The total amount of invoices is 257,054.0 EUR.'
Invoice Data: [{"invoice_number": "Invoice123", "customer_name": "XYZ"}, {"invoice_number": "Invoice456", "customer_name": "XYZ"}]
Evaluation: {"Groundedness": 1, "Relevance": 1, "Completeness": 1}

Query: 'Find all invoices for customer XYZ'
Response: 'Invoices for customer XYZ: Invoice123'
Invoice Data: [{"invoice_number": "Invoice123", "customer_name": "XYZ"}, {"invoice_number": "Invoice456", "customer_name": "XYZ"}]
Evaluation: {"Groundedness": 1, "Relevance": 1, "Completeness": 0.5}

Query: 'What is the color of the sky?'
Response: 'I cannot answer your question based on the provided invoice data. There is no information about the color of the sky in the invoice data.'
Invoice Data: []
Evaluation: {"Groundedness": 0, "Relevance": 0, "Completeness": 0}

Provide the evaluation in JSON format:
{"Groundedness": <value>, "Relevance": <value>, "Completeness": <value>}
`

// Self-scoring runs cool. Determinism matters more than latitude here.
const temperature = 0.3

type Engine struct {
	generator generator.Generator
	store     evalstore.Store
}

// Evaluate blends the model's self-assessment with deterministic
// heuristics and persists the record before returning it. A scoring
// payload the model garbles degrades to zero model scores instead of
// failing the run; the query/answer pairing is still worth keeping.
func (e *Engine) Evaluate(ctx context.Context, query string, response string, invoices []searcher.Invoice, latency time.Duration) (evalstore.Record, error) {
	modelScores := e.selfScore(ctx, query, response, invoices, latency)

	groundedness := (modelScores.Groundedness + HeuristicGroundedness(response, invoices)) / 2
	completeness := (modelScores.Completeness + HeuristicCompleteness(response, query)) / 2
	relevance := modelScores.Relevance

	record := evalstore.Record{
		Id:           uuid.New().String(),
		Query:        query,
		Response:     response,
		Groundedness: &groundedness,
		Relevance:    &relevance,
		Completeness: completeness,
		LatencyMs:    float64(latency.Milliseconds()),
		Timestamp:    time.Now().UTC(),
	}

	// A cancelled run must not leave a half-baked record behind.
	if err := ctx.Err(); err != nil {
		return evalstore.Record{}, err
	}

	if err := e.store.Create(ctx, record); err != nil {
		return evalstore.Record{}, fmt.Errorf("persist evaluation: %w", err)
	}

	return record, nil
}

type scores struct {
	Groundedness float64 `json:"Groundedness"`
	Relevance    float64 `json:"Relevance"`
	Completeness float64 `json:"Completeness"`
}

func (e *Engine) selfScore(ctx context.Context, query string, response string, invoices []searcher.Invoice, latency time.Duration) scores {
	invoiceContext, err := json.MarshalIndent(invoices, "", "  ")
	if err != nil {
		slog.WarnContext(ctx, "failed to serialize invoices for evaluation", "error", err)
		return scores{}
	}

	userMessage := fmt.Sprintf(
		"Query: %s\nResponse: %s\nInvoice Data: %s\nLatency: %d",
		query,
		response,
		invoiceContext,
		latency.Milliseconds(),
	)

	raw, err := e.generator.Complete(ctx, systemPrompt, userMessage, temperature)
	if err != nil {
		slog.WarnContext(ctx, "evaluation model call failed, falling back to zero scores", "error", err)
		return scores{}
	}

	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	var s scores
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		slog.WarnContext(ctx, "evaluation payload malformed, falling back to zero scores", "error", err)
		return scores{}
	}

	// The model occasionally scores outside its instructed range. Persisted
	// scores stay within [0, 1] like the heuristics.
	s.Groundedness = clamp(s.Groundedness)
	s.Relevance = clamp(s.Relevance)
	s.Completeness = clamp(s.Completeness)

	return s
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func NewEngine(generator generator.Generator, store evalstore.Store) *Engine {
	if generator == nil {
		panic("generator is required")
	}

	if store == nil {
		panic("evaluation store is required")
	}

	return &Engine{
		generator: generator,
		store:     store,
	}
}
