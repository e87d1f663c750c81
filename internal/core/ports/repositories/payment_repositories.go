package repositories

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentReader defines read operations for payment records
type PaymentReader interface {
	// FindCustomerPaymentByID retrieves a customer payment.
	FindCustomerPaymentByID(ctx context.Context, paymentID string) (*domain.CustomerPayment, error)

	// FindVendorPaymentByID retrieves a vendor payment.
	FindVendorPaymentByID(ctx context.Context, paymentID string) (*domain.VendorPayment, error)

	// ListCustomerPayments retrieves a paginated list of customer payments.
	ListCustomerPayments(ctx context.Context, limit int, offset int) ([]domain.CustomerPayment, error)

	// ListVendorPayments retrieves a paginated list of vendor payments.
	ListVendorPayments(ctx context.Context, limit int, offset int) ([]domain.VendorPayment, error)
}

// PaymentWriter defines write operations for payment records
type PaymentWriter interface {
	// SaveCustomerPayment persists a new draft customer payment.
	SaveCustomerPayment(ctx context.Context, payment domain.CustomerPayment) error

	// SaveVendorPayment persists a new draft vendor payment.
	SaveVendorPayment(ctx context.Context, payment domain.VendorPayment) error

	// FindCustomerPaymentByIDForUpdate selects and locks a customer payment row.
	FindCustomerPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.CustomerPayment, error)

	// FindVendorPaymentByIDForUpdate selects and locks a vendor payment row.
	FindVendorPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.VendorPayment, error)

	// UpdateCustomerPaymentStatusInTx transitions a customer payment's status.
	UpdateCustomerPaymentStatusInTx(ctx context.Context, tx pgx.Tx, paymentID string, status domain.PaymentStatus) error

	// UpdateVendorPaymentStatusInTx transitions a vendor payment's status.
	UpdateVendorPaymentStatusInTx(ctx context.Context, tx pgx.Tx, paymentID string, status domain.PaymentStatus) error
}

// PaymentRepositoryFacade combines the payment repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx adds transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
