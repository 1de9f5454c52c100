package doculyzer

import "github.com/w-h-a/doculyzer/searcher"

// QueryResult is the envelope every query run produces. The pipeline never
// returns a raw error upward; a failed run sets IsSuccessful false and a
// human-readable ErrorMessage.
type QueryResult struct {
	Answer           string             `json:"answer,omitempty"`
	RelevantInvoices []searcher.Invoice `json:"relevantRecords"`
	IsSuccessful     bool               `json:"isSuccessful"`
	ErrorMessage     string             `json:"errorMessage,omitempty"`
	ResponseId       string             `json:"responseId,omitempty"`
}

type FeedbackResult struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	NotFound     bool   `json:"-"`
}

type IngestResult struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message,omitempty"`
	Invoice      *searcher.Invoice `json:"invoice,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}
