package searcher

import "time"

type Invoice struct {
	DocumentName string     `json:"document_name"`
	Number       string     `json:"invoice_number"`
	Date         time.Time  `json:"invoice_date"`
	Vendor       string     `json:"vendor_name"`
	Customer     string     `json:"customer_name"`
	CustomerId   string     `json:"customer_id"`
	TotalAmount  float64    `json:"total_amount"`
	Currency     string     `json:"currency"`
	LineItems    []LineItem `json:"line_items,omitempty"`
}

type LineItem struct {
	Product     string  `json:"product_name"`
	Code        string  `json:"product_code,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	Description string  `json:"description,omitempty"`
}
