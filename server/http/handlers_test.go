package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/w-h-a/doculyzer"
	"github.com/w-h-a/doculyzer/classifier"
	memorydocs "github.com/w-h-a/doculyzer/docstore/memory"
	"github.com/w-h-a/doculyzer/evalstore"
	memoryevals "github.com/w-h-a/doculyzer/evalstore/memory"
	"github.com/w-h-a/doculyzer/searcher"
	"github.com/w-h-a/doculyzer/server"
)

// mockGenerator serves all three model roles, routed by the system prompt.
type mockGenerator struct{}

func (g *mockGenerator) Complete(ctx context.Context, system string, user string, temperature float32) (string, error) {
	switch {
	case strings.Contains(system, "parses natural language"):
		return `{"QueryType": "General", "SearchTerm": "invoices"}`, nil
	case strings.Contains(system, "answers questions about invoices"):
		return "Invoice 12345 totals 40 EUR.", nil
	default:
		return `{"Groundedness": 1, "Relevance": 1, "Completeness": 1}`, nil
	}
}

type mockClassifier struct {
	err error
}

func (c *mockClassifier) Analyze(ctx context.Context, text string) (classifier.Severities, error) {
	if c.err != nil {
		return nil, c.err
	}
	return classifier.Severities{}, nil
}

type mockSearcher struct {
	invoices []searcher.Invoice
}

func (s *mockSearcher) Search(ctx context.Context, text string, opts ...searcher.SearchOption) ([]searcher.Invoice, error) {
	return s.invoices, nil
}

func (s *mockSearcher) SearchByDateRange(ctx context.Context, start time.Time, end time.Time) ([]searcher.Invoice, error) {
	return s.invoices, nil
}

func (s *mockSearcher) SearchByCustomer(ctx context.Context, name string, opts ...searcher.SearchOption) ([]searcher.Invoice, error) {
	return s.invoices, nil
}

func (s *mockSearcher) Upsert(ctx context.Context, invoice searcher.Invoice) error {
	return nil
}

type mockExtractor struct{}

func (e *mockExtractor) Extract(ctx context.Context, document []byte, name string) (searcher.Invoice, error) {
	return searcher.Invoice{DocumentName: name}, nil
}

func newTestHandler(t *testing.T, cls *mockClassifier, evals *memoryevals.Store, opts ...server.Option) http.Handler {
	t.Helper()

	agent := doculyzer.New(
		&mockGenerator{},
		cls,
		&mockSearcher{invoices: []searcher.Invoice{{Number: "12345"}}},
		memorydocs.NewStore(),
		&mockExtractor{},
		evals,
	)

	srv, ok := NewServer(agent, opts...).(*httpServer)
	if !ok {
		t.Fatal("unexpected server implementation")
	}

	return srv.server.Handler
}

func TestQueryEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		classifier *mockClassifier
		wantStatus int
	}{
		{
			name:       "missing prompt",
			body:       `{}`,
			classifier: &mockClassifier{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       `find invoices`,
			classifier: &mockClassifier{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "pipeline failure",
			body:       `{"prompt": "find invoices"}`,
			classifier: &mockClassifier{err: errors.New("service unavailable")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "success",
			body:       `{"prompt": "find invoices"}`,
			classifier: &mockClassifier{},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.classifier, memoryevals.NewStore())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/agent", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusBadRequest {
				return
			}

			var result doculyzer.QueryResult
			if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if result.IsSuccessful != (tt.wantStatus == http.StatusOK) {
				t.Errorf("isSuccessful: got %v under status %d", result.IsSuccessful, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && len(result.ResponseId) == 0 {
				t.Error("expected a response id")
			}
		})
	}
}

func TestFeedbackEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing response id",
			body:       `{"satisfied": true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown response id",
			body:       `{"responseId": "no-such-id", "satisfied": true}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "existing record",
			body:       `{"responseId": "resp-1", "satisfied": true}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evals := memoryevals.NewStore()
			if err := evals.Create(context.Background(), evalstore.Record{
				Id:        "resp-1",
				Query:     "find invoices",
				Response:  "Invoice 12345.",
				Timestamp: time.Now().UTC(),
			}); err != nil {
				t.Fatal(err)
			}

			h := newTestHandler(t, &mockClassifier{}, evals)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestProcessEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing document name",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "accepted",
			body:       `{"documentName": "invoices/may.pdf"}`,
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &mockClassifier{}, memoryevals.NewStore())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/process", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMiddlewareWrapsEveryRoute(t *testing.T) {
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-Id", "test-id")
			next.ServeHTTP(w, r)
		})
	}

	h := newTestHandler(t, &mockClassifier{}, memoryevals.NewStore(), WithMiddleware(mw))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if rec.Header().Get("X-Request-Id") != "test-id" {
		t.Error("middleware did not wrap the route")
	}
}
