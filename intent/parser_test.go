package intent

import (
	"context"
	"errors"
	"testing"
)

type mockGenerator struct {
	response string
	err      error
	calls    int
}

func (m *mockGenerator) Complete(ctx context.Context, system string, user string, temperature float32) (string, error) {
	m.calls++
	return m.response, m.err
}

// A transport failure is fatal while a garbled payload falls back to
// General. Both paths are pinned here so nobody unifies them by accident.
func TestParse_TransportFailureIsFatal(t *testing.T) {
	transportErr := errors.New("connection refused")
	parser := NewParser(&mockGenerator{err: transportErr})

	_, err := parser.Parse(context.Background(), "find invoices")
	if !errors.Is(err, transportErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestParse_MalformedPayloadFallsBackToGeneral(t *testing.T) {
	parser := NewParser(&mockGenerator{response: "no json here"})

	parsed, err := parser.Parse(context.Background(), "find invoices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Type != TypeGeneral {
		t.Errorf("type: got %q, want %q", parsed.Type, TypeGeneral)
	}
}

func TestParse_WellFormedPayload(t *testing.T) {
	parser := NewParser(&mockGenerator{response: `{"QueryType": "Customer", "CustomerName": "ACME"}`})

	parsed, err := parser.Parse(context.Background(), "invoices for ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Type != TypeCustomer || parsed.CustomerName != "ACME" {
		t.Errorf("unexpected intent: %+v", parsed)
	}
}
