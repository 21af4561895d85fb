package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one product line on an invoice. ProductName and UnitPrice
// are snapshots taken when the line was added, so later catalog edits or
// removals never alter an open draft or a committed invoice.
type InvoiceItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Invoice is a committed, immutable sale record. Once created it is never
// mutated; the ledger retains it forever.
type Invoice struct {
	ID                  string          `json:"id"`
	CustomerName        string          `json:"customer_name"`
	CustomerPhoneNumber string          `json:"customer_phone_number,omitempty"`
	CustomerAddress     string          `json:"customer_address,omitempty"`
	Items               []InvoiceItem   `json:"items"`
	SubTotal            decimal.Decimal `json:"sub_total"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
	InvoiceDate         time.Time       `json:"invoice_date"`
	DueDate             *time.Time      `json:"due_date,omitempty"`
}

// Totals holds the monetary summary of a draft or committed invoice.
// GrandTotal = SubTotal + TaxAmount always holds.
type Totals struct {
	SubTotal   decimal.Decimal `json:"sub_total"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
