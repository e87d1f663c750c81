package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of a sales invoice or purchase invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoicePosted    InvoiceStatus = "posted"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// PaymentTerms enumerates the supported due-date conventions.
type PaymentTerms string

const (
	TermsImmediate      PaymentTerms = "Immediate payment"
	TermsNet15          PaymentTerms = "15 Days"
	TermsNet20          PaymentTerms = "20 Days"
	TermsNet30          PaymentTerms = "30 Days"
	TermsNet45          PaymentTerms = "45 Days"
	TermsEndOfNextMonth PaymentTerms = "End of following Month"
)

// SalesInvoice is a customer-facing document. Total is derived from the
// owned lines and recomputed on every line mutation.
type SalesInvoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary Key (UUID)
	CustomerID   string          `json:"customerID"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      *time.Time      `json:"dueDate"`
	PaymentTerms PaymentTerms    `json:"paymentTerms"`
	Status       InvoiceStatus   `json:"status"`
	Total        decimal.Decimal `json:"total"`
	JournalID    string          `json:"journalID"` // FK -> Journal used when posting
	AuditFields

	Lines []InvoiceLine `json:"lines,omitempty"`
}

// InvoiceLine is one product line on a sales invoice.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> SalesInvoice
	ProductID   string          `json:"productID"`
	AccountID   string          `json:"accountID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

// LineTotal returns quantity * price for this line.
func (l InvoiceLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// CalculateTotal sums quantity * price over the given lines. Recomputing with
// the same line set always yields the same total.
func CalculateTotal(lines []InvoiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}
