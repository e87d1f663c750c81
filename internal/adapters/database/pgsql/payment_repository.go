package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
)

type paymentRepository struct {
	baseRepository
}

// NewPaymentRepository creates a new repository for payment records.
func NewPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &paymentRepository{baseRepository{pool: pool}}
}

const customerPaymentColumns = `payment_id, customer_id, invoice_id, payment_date, amount, journal_id, reference, status, created_at, created_by, last_updated_at, last_updated_by`

const vendorPaymentColumns = `payment_id, vendor_id, invoice_id, payment_date, amount, journal_id, reference, status, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomerPayment(row pgx.Row) (*domain.CustomerPayment, error) {
	var payment domain.CustomerPayment
	var reference *string
	err := row.Scan(
		&payment.PaymentID,
		&payment.CustomerID,
		&payment.InvoiceID,
		&payment.PaymentDate,
		&payment.Amount,
		&payment.JournalID,
		&reference,
		&payment.Status,
		&payment.CreatedAt,
		&payment.CreatedBy,
		&payment.LastUpdatedAt,
		&payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reference != nil {
		payment.Reference = *reference
	}
	return &payment, nil
}

func scanVendorPayment(row pgx.Row) (*domain.VendorPayment, error) {
	var payment domain.VendorPayment
	var reference *string
	err := row.Scan(
		&payment.PaymentID,
		&payment.VendorID,
		&payment.InvoiceID,
		&payment.PaymentDate,
		&payment.Amount,
		&payment.JournalID,
		&reference,
		&payment.Status,
		&payment.CreatedAt,
		&payment.CreatedBy,
		&payment.LastUpdatedAt,
		&payment.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reference != nil {
		payment.Reference = *reference
	}
	return &payment, nil
}

// FindCustomerPaymentByID retrieves a customer payment.
func (r *paymentRepository) FindCustomerPaymentByID(ctx context.Context, paymentID string) (*domain.CustomerPayment, error) {
	query := `SELECT ` + customerPaymentColumns + ` FROM customer_payments WHERE payment_id = $1;`
	payment, err := scanCustomerPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

// FindVendorPaymentByID retrieves a vendor payment.
func (r *paymentRepository) FindVendorPaymentByID(ctx context.Context, paymentID string) (*domain.VendorPayment, error) {
	query := `SELECT ` + vendorPaymentColumns + ` FROM vendor_payments WHERE payment_id = $1;`
	payment, err := scanVendorPayment(r.pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListCustomerPayments retrieves a page of customer payments, most recent first.
func (r *paymentRepository) ListCustomerPayments(ctx context.Context, limit int, offset int) ([]domain.CustomerPayment, error) {
	query := `SELECT ` + customerPaymentColumns + ` FROM customer_payments ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.CustomerPayment{}
	for rows.Next() {
		payment, err := scanCustomerPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer payment rows: %w", err)
	}
	return payments, nil
}

// ListVendorPayments retrieves a page of vendor payments, most recent first.
func (r *paymentRepository) ListVendorPayments(ctx context.Context, limit int, offset int) ([]domain.VendorPayment, error) {
	query := `SELECT ` + vendorPaymentColumns + ` FROM vendor_payments ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.VendorPayment{}
	for rows.Next() {
		payment, err := scanVendorPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendor payment rows: %w", err)
	}
	return payments, nil
}

// SaveCustomerPayment persists a new draft customer payment.
func (r *paymentRepository) SaveCustomerPayment(ctx context.Context, payment domain.CustomerPayment) error {
	query := `
		INSERT INTO customer_payments (` + customerPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID,
		payment.CustomerID,
		payment.InvoiceID,
		payment.PaymentDate,
		payment.Amount,
		payment.JournalID,
		payment.Reference,
		payment.Status,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// SaveVendorPayment persists a new draft vendor payment.
func (r *paymentRepository) SaveVendorPayment(ctx context.Context, payment domain.VendorPayment) error {
	query := `
		INSERT INTO vendor_payments (` + vendorPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		payment.PaymentID,
		payment.VendorID,
		payment.InvoiceID,
		payment.PaymentDate,
		payment.Amount,
		payment.JournalID,
		payment.Reference,
		payment.Status,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save vendor payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// FindCustomerPaymentByIDForUpdate selects and locks a customer payment row.
func (r *paymentRepository) FindCustomerPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.CustomerPayment, error) {
	query := `SELECT ` + customerPaymentColumns + ` FROM customer_payments WHERE payment_id = $1 FOR UPDATE;`
	payment, err := scanCustomerPayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

// FindVendorPaymentByIDForUpdate selects and locks a vendor payment row.
func (r *paymentRepository) FindVendorPaymentByIDForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.VendorPayment, error) {
	query := `SELECT ` + vendorPaymentColumns + ` FROM vendor_payments WHERE payment_id = $1 FOR UPDATE;`
	payment, err := scanVendorPayment(tx.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

// UpdateCustomerPaymentStatusInTx transitions a customer payment's status.
func (r *paymentRepository) UpdateCustomerPaymentStatusInTx(ctx context.Context, tx pgx.Tx, paymentID string, status domain.PaymentStatus) error {
	query := `UPDATE customer_payments SET status = $2, last_updated_at = $3 WHERE payment_id = $1;`
	tag, err := tx.Exec(ctx, query, paymentID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update status for customer payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateVendorPaymentStatusInTx transitions a vendor payment's status.
func (r *paymentRepository) UpdateVendorPaymentStatusInTx(ctx context.Context, tx pgx.Tx, paymentID string, status domain.PaymentStatus) error {
	query := `UPDATE vendor_payments SET status = $2, last_updated_at = $3 WHERE payment_id = $1;`
	tag, err := tx.Exec(ctx, query, paymentID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update status for vendor payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
