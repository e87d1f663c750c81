package repositories

import (
	"context"
	"time"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SalesInvoiceReader defines read operations for sales invoice data
type SalesInvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error)

	// FindInvoiceLines retrieves the invoice's lines in insertion order.
	FindInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)

	// FindLineByID retrieves a single invoice line.
	FindLineByID(ctx context.Context, lineID string) (*domain.InvoiceLine, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, limit int, offset int) ([]domain.SalesInvoice, error)
}

// SalesInvoiceWriter defines write operations for sales invoice data.
// Line mutations and the total recompute they trigger share one transaction.
type SalesInvoiceWriter interface {
	// SaveInvoice persists a new draft invoice header.
	SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error

	// SaveLineInTx appends a line to an invoice.
	SaveLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error

	// UpdateLineInTx rewrites an existing line.
	UpdateLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error

	// DeleteLineInTx removes a line from its invoice.
	DeleteLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error

	// FindInvoiceLinesInTx reads the invoice's lines within the transaction.
	FindInvoiceLinesInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.InvoiceLine, error)

	// UpdateInvoiceTotalInTx overwrites the derived total on the header.
	UpdateInvoiceTotalInTx(ctx context.Context, tx pgx.Tx, invoiceID string, total decimal.Decimal, userID string, now time.Time) error

	// UpdateInvoiceStatusInTx transitions the invoice's status.
	UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus) error

	// FindInvoiceByIDForUpdate selects an invoice header and locks its row.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SalesInvoice, error)
}

// SalesInvoiceRepositoryFacade combines the sales invoice repository interfaces
type SalesInvoiceRepositoryFacade interface {
	SalesInvoiceReader
	SalesInvoiceWriter
}

// SalesInvoiceRepositoryWithTx adds transaction capabilities
type SalesInvoiceRepositoryWithTx interface {
	SalesInvoiceRepositoryFacade
	TransactionManager
}

// PurchaseInvoiceReader defines read operations for purchase invoice data
type PurchaseInvoiceReader interface {
	FindBillByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error)
	FindBillLines(ctx context.Context, invoiceID string) ([]domain.PurchaseLine, error)
	FindBillLineByID(ctx context.Context, lineID string) (*domain.PurchaseLine, error)
	ListBills(ctx context.Context, limit int, offset int) ([]domain.PurchaseInvoice, error)
}

// PurchaseInvoiceWriter defines write operations for purchase invoice data
type PurchaseInvoiceWriter interface {
	SaveBill(ctx context.Context, invoice domain.PurchaseInvoice) error
	SaveBillLineInTx(ctx context.Context, tx pgx.Tx, line domain.PurchaseLine) error
	UpdateBillLineInTx(ctx context.Context, tx pgx.Tx, line domain.PurchaseLine) error
	DeleteBillLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error
	FindBillLinesInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.PurchaseLine, error)
	UpdateBillTotalInTx(ctx context.Context, tx pgx.Tx, invoiceID string, total decimal.Decimal, userID string, now time.Time) error
	UpdateBillStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus) error
	FindBillByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.PurchaseInvoice, error)
}

// PurchaseInvoiceRepositoryFacade combines the purchase invoice repository interfaces
type PurchaseInvoiceRepositoryFacade interface {
	PurchaseInvoiceReader
	PurchaseInvoiceWriter
}

// PurchaseInvoiceRepositoryWithTx adds transaction capabilities
type PurchaseInvoiceRepositoryWithTx interface {
	PurchaseInvoiceRepositoryFacade
	TransactionManager
}
