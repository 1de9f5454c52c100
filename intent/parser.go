package intent

import (
	"context"

	"github.com/w-h-a/doculyzer/generator"
)

const systemPrompt = `
You are an AI assistant that parses natural language queries about invoices.
Extract the following information from the user's query and return it in JSON format:
- QueryType: 'DateRange', 'Customer', 'Product', 'General' or 'Invalid' if query is vague, nonsensical, or unanswerable
- StartDate: ISO date if mentioned
- EndDate: ISO date if mentioned
- CustomerName: customer identifier if mentioned
- SearchTerm: relevant search terms

Examples:
'What's today amount of invoices in March?' -> {"QueryType": "DateRange", "StartDate": "2024-03-01", "EndDate": "2024-03-31"}
'Give me list of products sold to customer XYZ in April' -> {"QueryType": "Customer", "CustomerName": "XYZ", "StartDate": "2024-04-01", "EndDate": "2024-04-30"}
`

// Classification runs warm. The model gets some latitude when choosing
// between intent types.
const temperature = 0.7

type Parser struct {
	generator generator.Generator
}

// Parse classifies a prompt into an Intent. A transport failure is
// returned as-is and is fatal to the caller's pipeline run; a response
// that arrives but cannot be decoded falls back to the General intent.
// The two paths are deliberately not unified.
func (p *Parser) Parse(ctx context.Context, prompt string) (Intent, error) {
	raw, err := p.generator.Complete(ctx, systemPrompt, prompt, temperature)
	if err != nil {
		return Intent{}, err
	}

	parsed, ok := Decode(raw)
	if !ok {
		return Intent{Type: TypeGeneral}, nil
	}

	return parsed, nil
}

func NewParser(generator generator.Generator) *Parser {
	if generator == nil {
		panic("generator is required")
	}

	return &Parser{
		generator: generator,
	}
}
