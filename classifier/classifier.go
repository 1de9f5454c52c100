package classifier

import "context"

type Category string

const (
	CategoryHate     Category = "Hate"
	CategorySexual   Category = "Sexual"
	CategoryViolence Category = "Violence"
	CategorySelfHarm Category = "SelfHarm"
)

// Severities maps a category to the severity reported by the underlying
// classifier. Categories the classifier did not score are absent.
type Severities map[Category]int

type Classifier interface {
	Analyze(ctx context.Context, text string) (Severities, error)
}
