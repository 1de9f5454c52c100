package intent

import (
	"encoding/json"
	"strings"
	"time"
)

type Type string

const (
	TypeDateRange Type = "DateRange"
	TypeCustomer  Type = "Customer"
	TypeProduct   Type = "Product"
	TypeGeneral   Type = "General"
	TypeInvalid   Type = "Invalid"
)

// Intent is the structured interpretation of one free-text query. It is
// produced once per query and only read after that. Zero times mean the
// bound was not mentioned.
type Intent struct {
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	CustomerName string
	SearchTerm   string
}

type payload struct {
	QueryType    string `json:"QueryType"`
	StartDate    string `json:"StartDate"`
	EndDate      string `json:"EndDate"`
	CustomerName string `json:"CustomerName"`
	SearchTerm   string `json:"SearchTerm"`
}

// Decode parses a model response into an Intent. The second return is
// false when the payload is malformed or names an unknown query type;
// callers decide the fallback, not this function.
func Decode(raw string) (Intent, bool) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var p payload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return Intent{}, false
	}

	t := Type(p.QueryType)
	switch t {
	case TypeDateRange, TypeCustomer, TypeProduct, TypeGeneral, TypeInvalid:
	default:
		return Intent{}, false
	}

	return Intent{
		Type:         t,
		StartDate:    parseDate(p.StartDate),
		EndDate:      parseDate(p.EndDate),
		CustomerName: p.CustomerName,
		SearchTerm:   p.SearchTerm,
	}, true
}

func parseDate(raw string) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date
	}

	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date
	}

	return time.Time{}
}
