package doculyzer

import (
	"context"
	"testing"
	"time"

	"github.com/w-h-a/doculyzer/intent"
)

func TestDispatch_InvalidIntentSkipsTheIndex(t *testing.T) {
	search := &mockSearcher{}
	agent, _, _ := newTestAgent(&mockGenerator{}, &mockClassifier{}, search)

	invoices, err := agent.dispatch(context.Background(), intent.Intent{Type: intent.TypeInvalid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices) != 0 {
		t.Errorf("expected no invoices, got %d", len(invoices))
	}
	if len(search.calls) != 0 {
		t.Errorf("index was called: %+v", search.calls)
	}
}

func TestDispatch_DateRangePassesExactBounds(t *testing.T) {
	search := &mockSearcher{}
	agent, _, _ := newTestAgent(&mockGenerator{}, &mockClassifier{}, search)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	if _, err := agent.dispatch(context.Background(), intent.Intent{
		Type:      intent.TypeDateRange,
		StartDate: start,
		EndDate:   end,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(search.calls) != 1 || search.calls[0].method != "dateRange" {
		t.Fatalf("calls: %+v", search.calls)
	}
	if !search.calls[0].start.Equal(start) || !search.calls[0].end.Equal(end) {
		t.Errorf("bounds substituted: got [%v, %v]", search.calls[0].start, search.calls[0].end)
	}
}

func TestDispatch_DateRangeSubstitutesAbsentBounds(t *testing.T) {
	search := &mockSearcher{}
	agent, _, _ := newTestAgent(&mockGenerator{}, &mockClassifier{}, search)

	if _, err := agent.dispatch(context.Background(), intent.Intent{Type: intent.TypeDateRange}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := search.calls[0]
	if !call.start.IsZero() {
		t.Errorf("absent start should be the zero time, got %v", call.start)
	}
	if !call.end.Equal(maxDate) {
		t.Errorf("absent end should be the max date, got %v", call.end)
	}
}

func TestDispatch_CustomerCarriesOptionalBounds(t *testing.T) {
	search := &mockSearcher{}
	agent, _, _ := newTestAgent(&mockGenerator{}, &mockClassifier{}, search)

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	if _, err := agent.dispatch(context.Background(), intent.Intent{
		Type:         intent.TypeCustomer,
		CustomerName: "ACME",
		StartDate:    start,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := search.calls[0]
	if call.method != "customer" || call.name != "ACME" {
		t.Fatalf("calls: %+v", search.calls)
	}
	if !call.start.Equal(start) || !call.end.IsZero() {
		t.Errorf("bounds: got [%v, %v]", call.start, call.end)
	}
}

func TestDispatch_GeneralFallsBackToMatchAll(t *testing.T) {
	search := &mockSearcher{}
	agent, _, _ := newTestAgent(&mockGenerator{}, &mockClassifier{}, search)

	if _, err := agent.dispatch(context.Background(), intent.Intent{Type: intent.TypeGeneral}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if search.calls[0].method != "search" || search.calls[0].text != "*" {
		t.Errorf("calls: %+v", search.calls)
	}
}

func TestDispatch_ProductUsesFullTextSearch(t *testing.T) {
	search := &mockSearcher{}
	agent, _, _ := newTestAgent(&mockGenerator{}, &mockClassifier{}, search)

	if _, err := agent.dispatch(context.Background(), intent.Intent{
		Type:       intent.TypeProduct,
		SearchTerm: "laptops",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if search.calls[0].method != "search" || search.calls[0].text != "laptops" {
		t.Errorf("calls: %+v", search.calls)
	}
}
