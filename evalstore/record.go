package evalstore

import "time"

// Record is one persisted evaluation of a generated answer. Groundedness
// and Relevance are nullable: the model declines to score unanswerable
// queries. UserFeedback is nil until a later feedback patch lands.
type Record struct {
	Id           string    `json:"id"`
	Query        string    `json:"query"`
	Response     string    `json:"response"`
	Groundedness *float64  `json:"groundedness"`
	Relevance    *float64  `json:"relevance"`
	Completeness float64   `json:"completeness"`
	LatencyMs    float64   `json:"latency_ms"`
	Timestamp    time.Time `json:"timestamp"`
	UserFeedback *bool     `json:"user_feedback,omitempty"`
}
