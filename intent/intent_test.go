package intent

import (
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOk bool
		want   Intent
	}{
		{
			name:   "date range",
			raw:    `{"QueryType": "DateRange", "StartDate": "2024-03-01", "EndDate": "2024-03-31"}`,
			wantOk: true,
			want: Intent{
				Type:      TypeDateRange,
				StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "customer with bounds",
			raw:    `{"QueryType": "Customer", "CustomerName": "XYZ", "StartDate": "2024-04-01", "EndDate": "2024-04-30"}`,
			wantOk: true,
			want: Intent{
				Type:         TypeCustomer,
				CustomerName: "XYZ",
				StartDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
				EndDate:      time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "fenced payload",
			raw:    "```json\n{\"QueryType\": \"Product\", \"SearchTerm\": \"laptops\"}\n```",
			wantOk: true,
			want:   Intent{Type: TypeProduct, SearchTerm: "laptops"},
		},
		{
			name:   "invalid query type",
			raw:    `{"QueryType": "Invalid"}`,
			wantOk: true,
			want:   Intent{Type: TypeInvalid},
		},
		{
			name:   "unknown query type",
			raw:    `{"QueryType": "Fancy"}`,
			wantOk: false,
		},
		{
			name:   "not json",
			raw:    "I could not determine the intent.",
			wantOk: false,
		},
		{
			name:   "unparseable date dropped",
			raw:    `{"QueryType": "DateRange", "StartDate": "yesterday"}`,
			wantOk: true,
			want:   Intent{Type: TypeDateRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.raw)
			if ok != tt.wantOk {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Errorf("intent: got %+v, want %+v", got, tt.want)
			}
		})
	}
}
