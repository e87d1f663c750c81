package domain

import "github.com/shopspring/decimal"

// PartyStatus is the activity state of a customer or vendor record.
type PartyStatus string

const (
	PartyActive    PartyStatus = "active"
	PartyInactive  PartyStatus = "inactive"
	PartySuspended PartyStatus = "suspended"
)

// Customer is master data maintained outside the posting core. The posting
// workflows only read the record and adjust CurrentBalance.
type Customer struct {
	CustomerID     string          `json:"customerID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Status         PartyStatus     `json:"status"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Outstanding receivable
	AuditFields
}

// Vendor is master data for the payable side.
type Vendor struct {
	VendorID       string          `json:"vendorID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	CompanyName    string          `json:"companyName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Status         PartyStatus     `json:"status"`
	PaymentDays    int             `json:"paymentDays"`
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Outstanding payable
	AuditFields
}
