package doculyzer

import (
	"context"
	"fmt"

	"github.com/w-h-a/doculyzer/classifier"
)

// A category severity above this is a gate failure. Severity 2 ("low")
// still passes.
const toxicSeverityThreshold = 2

var gatedCategories = []classifier.Category{
	classifier.CategoryHate,
	classifier.CategorySexual,
	classifier.CategoryViolence,
}

// isToxic applies the content safety gate to free text. A classifier
// failure propagates; it is never treated as a pass.
func (a *Agent) isToxic(ctx context.Context, text string) (bool, error) {
	severities, err := a.classifier.Analyze(ctx, text)
	if err != nil {
		return false, fmt.Errorf("content safety: %w", err)
	}

	for _, category := range gatedCategories {
		if severities[category] > toxicSeverityThreshold {
			return true, nil
		}
	}

	return false, nil
}
