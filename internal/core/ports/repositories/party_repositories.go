package repositories

import (
	"context"
	"time"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for customer and vendor master data.
// Record creation and validation happen outside the posting core; the
// workflows only resolve parties and maintain their running balances.
type PartyReader interface {
	// FindCustomerByID retrieves a customer record.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindVendorByID retrieves a vendor record.
	FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)

	// FindProductByID retrieves a product record.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// PartyBalanceSupport defines balance maintenance within a posting transaction.
type PartyBalanceSupport interface {
	// FindCustomerByIDForUpdate selects and locks a customer row.
	FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error)

	// FindVendorByIDForUpdate selects and locks a vendor row.
	FindVendorByIDForUpdate(ctx context.Context, tx pgx.Tx, vendorID string) (*domain.Vendor, error)

	// UpdateCustomerBalanceInTx overwrites the customer's running balance.
	UpdateCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, customerID string, balance decimal.Decimal, userID string, now time.Time) error

	// UpdateVendorBalanceInTx overwrites the vendor's running balance.
	UpdateVendorBalanceInTx(ctx context.Context, tx pgx.Tx, vendorID string, balance decimal.Decimal, userID string, now time.Time) error
}

// PartyRepositoryFacade combines the party repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyBalanceSupport
}
