package domain

import "time"

// Expense and Invoice are validated against fixed, field-level rule sets
// rather than the extensible journal rule registry. The shapes are stable,
// so the rules are compiled in.

type Expense struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Category   string    `json:"category"`
	AccountID  string    `json:"account_id"`
	ApprovedBy string    `json:"approved_by,omitempty"`
}

type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerID    string        `json:"customer_id"`
	Items         []InvoiceItem `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
}

// ComputedTotal is the invoice total derived from its line items.
func (i *Invoice) ComputedTotal() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Quantity * item.UnitPrice
	}
	return total
}
