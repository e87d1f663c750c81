package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a customer or vendor payment.
type PaymentStatus string

const (
	PaymentDraft PaymentStatus = "draft"
	PaymentPaid  PaymentStatus = "paid"
)

// CustomerPayment records money received from a customer against an invoice.
// Posting a draft payment creates one journal entry and flips the status to
// paid; non-draft payments are never re-posted.
type CustomerPayment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	CustomerID  string          `json:"customerID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> SalesInvoice
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	JournalID   string          `json:"journalID"`
	Reference   string          `json:"reference"`
	Status      PaymentStatus   `json:"status"`
	AuditFields
}

// VendorPayment records money paid to a vendor against a purchase invoice.
type VendorPayment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	VendorID    string          `json:"vendorID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> PurchaseInvoice
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	JournalID   string          `json:"journalID"`
	Reference   string          `json:"reference"`
	Status      PaymentStatus   `json:"status"`
	AuditFields
}
