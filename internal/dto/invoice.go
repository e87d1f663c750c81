package dto

import (
	"time"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to open a draft sales invoice.
type CreateInvoiceRequest struct {
	CustomerID   string              `json:"customerID" binding:"required"`
	JournalID    string              `json:"journalID" binding:"required"`
	InvoiceDate  *time.Time          `json:"invoiceDate"` // Defaults to today
	DueDate      *time.Time          `json:"dueDate"`
	PaymentTerms domain.PaymentTerms `json:"paymentTerms"`
}

// CreateBillRequest defines the data needed to open a draft purchase invoice.
type CreateBillRequest struct {
	VendorID     string              `json:"vendorID" binding:"required"`
	JournalID    string              `json:"journalID" binding:"required"`
	InvoiceDate  *time.Time          `json:"invoiceDate"`
	DueDate      *time.Time          `json:"dueDate"`
	PaymentTerms domain.PaymentTerms `json:"paymentTerms"`
}

// AddLineRequest defines one product line on an invoice or bill.
type AddLineRequest struct {
	ProductID   string          `json:"productID"`
	AccountID   string          `json:"accountID"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

// LineResponse defines the data returned for an invoice/bill line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	ProductID   string          `json:"productID"`
	AccountID   string          `json:"accountID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	Description string          `json:"description"`
}

// InvoiceResponse defines the data returned for a sales invoice.
type InvoiceResponse struct {
	InvoiceID    string          `json:"invoiceID"`
	CustomerID   string          `json:"customerID"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      *time.Time      `json:"dueDate"`
	PaymentTerms string          `json:"paymentTerms"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	JournalID    string          `json:"journalID"`
	Lines        []LineResponse  `json:"lines"`
}

// BillResponse defines the data returned for a purchase invoice.
type BillResponse struct {
	InvoiceID    string          `json:"invoiceID"`
	VendorID     string          `json:"vendorID"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      *time.Time      `json:"dueDate"`
	PaymentTerms string          `json:"paymentTerms"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	JournalID    string          `json:"journalID"`
	Lines        []LineResponse  `json:"lines"`
}

// ToInvoiceResponse converts a domain.SalesInvoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.SalesInvoice) InvoiceResponse {
	lines := make([]LineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = LineResponse{
			LineID:      line.LineID,
			ProductID:   line.ProductID,
			AccountID:   line.AccountID,
			Quantity:    line.Quantity,
			Price:       line.Price,
			LineTotal:   line.LineTotal(),
			Description: line.Description,
		}
	}
	return InvoiceResponse{
		InvoiceID:    inv.InvoiceID,
		CustomerID:   inv.CustomerID,
		InvoiceDate:  inv.InvoiceDate,
		DueDate:      inv.DueDate,
		PaymentTerms: string(inv.PaymentTerms),
		Status:       string(inv.Status),
		Total:        inv.Total,
		JournalID:    inv.JournalID,
		Lines:        lines,
	}
}

// ToBillResponse converts a domain.PurchaseInvoice to BillResponse DTO.
func ToBillResponse(inv *domain.PurchaseInvoice) BillResponse {
	lines := make([]LineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = LineResponse{
			LineID:      line.LineID,
			ProductID:   line.ProductID,
			AccountID:   line.AccountID,
			Quantity:    line.Quantity,
			Price:       line.Price,
			LineTotal:   line.LineTotal(),
			Description: line.Description,
		}
	}
	return BillResponse{
		InvoiceID:    inv.InvoiceID,
		VendorID:     inv.VendorID,
		InvoiceDate:  inv.InvoiceDate,
		DueDate:      inv.DueDate,
		PaymentTerms: string(inv.PaymentTerms),
		Status:       string(inv.Status),
		Total:        inv.Total,
		JournalID:    inv.JournalID,
		Lines:        lines,
	}
}
