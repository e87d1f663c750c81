package services

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/finbooks/books_backend/internal/dto"
)

// InvoiceSvcFacade defines operations on sales invoices and their lines.
// Every line mutation recomputes the parent's total before returning.
type InvoiceSvcFacade interface {
	// CreateInvoice persists a new draft invoice with zero total.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.SalesInvoice, error)

	// GetInvoice retrieves an invoice together with its lines.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, limit int, offset int) ([]domain.SalesInvoice, error)

	// AddLine appends a line to a draft invoice.
	AddLine(ctx context.Context, invoiceID string, req dto.AddLineRequest, userID string) (*domain.SalesInvoice, error)

	// UpdateLine rewrites an existing line on a draft invoice.
	UpdateLine(ctx context.Context, invoiceID string, lineID string, req dto.AddLineRequest, userID string) (*domain.SalesInvoice, error)

	// RemoveLine deletes a line from a draft invoice.
	RemoveLine(ctx context.Context, invoiceID string, lineID string, userID string) (*domain.SalesInvoice, error)
}

// BillSvcFacade defines the same operations for purchase invoices.
type BillSvcFacade interface {
	CreateBill(ctx context.Context, req dto.CreateBillRequest, userID string) (*domain.PurchaseInvoice, error)
	GetBill(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error)
	ListBills(ctx context.Context, limit int, offset int) ([]domain.PurchaseInvoice, error)
	AddBillLine(ctx context.Context, invoiceID string, req dto.AddLineRequest, userID string) (*domain.PurchaseInvoice, error)
	UpdateBillLine(ctx context.Context, invoiceID string, lineID string, req dto.AddLineRequest, userID string) (*domain.PurchaseInvoice, error)
	RemoveBillLine(ctx context.Context, invoiceID string, lineID string, userID string) (*domain.PurchaseInvoice, error)
}
