package dto

import (
	"time"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerPaymentRequest defines the data for a draft customer payment.
type CreateCustomerPaymentRequest struct {
	CustomerID  string          `json:"customerID" binding:"required"`
	InvoiceID   string          `json:"invoiceID" binding:"required"`
	JournalID   string          `json:"journalID" binding:"required"`
	PaymentDate *time.Time      `json:"paymentDate"` // Defaults to today
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reference   string          `json:"reference"`
}

// CreateVendorPaymentRequest defines the data for a draft vendor payment.
type CreateVendorPaymentRequest struct {
	VendorID    string          `json:"vendorID" binding:"required"`
	InvoiceID   string          `json:"invoiceID" binding:"required"`
	JournalID   string          `json:"journalID" binding:"required"`
	PaymentDate *time.Time      `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Reference   string          `json:"reference"`
}

// PaymentResponse defines the data returned for either payment kind.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	PartyID     string          `json:"partyID"`
	InvoiceID   string          `json:"invoiceID"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	JournalID   string          `json:"journalID"`
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
}

// ToCustomerPaymentResponse converts a domain.CustomerPayment to its DTO.
func ToCustomerPaymentResponse(p *domain.CustomerPayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		PartyID:     p.CustomerID,
		InvoiceID:   p.InvoiceID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		JournalID:   p.JournalID,
		Reference:   p.Reference,
		Status:      string(p.Status),
	}
}

// ToVendorPaymentResponse converts a domain.VendorPayment to its DTO.
func ToVendorPaymentResponse(p *domain.VendorPayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		PartyID:     p.VendorID,
		InvoiceID:   p.InvoiceID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		JournalID:   p.JournalID,
		Reference:   p.Reference,
		Status:      string(p.Status),
	}
}
