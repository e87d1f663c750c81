package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoice (a vendor bill) mirrors SalesInvoice on the payable side.
type PurchaseInvoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary Key (UUID)
	VendorID     string          `json:"vendorID"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      *time.Time      `json:"dueDate"`
	PaymentTerms PaymentTerms    `json:"paymentTerms"`
	Status       InvoiceStatus   `json:"status"`
	Total        decimal.Decimal `json:"total"`
	JournalID    string          `json:"journalID"`
	AuditFields

	Lines []PurchaseLine `json:"lines,omitempty"`
}

// PurchaseLine is one product line on a purchase invoice.
type PurchaseLine struct {
	LineID      string          `json:"lineID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> PurchaseInvoice
	ProductID   string          `json:"productID"`
	AccountID   string          `json:"accountID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

// LineTotal returns quantity * price for this line.
func (l PurchaseLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// CalculatePurchaseTotal sums quantity * price over the given lines.
func CalculatePurchaseTotal(lines []PurchaseLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}
