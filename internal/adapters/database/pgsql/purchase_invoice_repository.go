package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
)

type purchaseInvoiceRepository struct {
	baseRepository
}

// NewPurchaseInvoiceRepository creates a new repository for vendor bill data.
func NewPurchaseInvoiceRepository(pool *pgxpool.Pool) portsrepo.PurchaseInvoiceRepositoryWithTx {
	return &purchaseInvoiceRepository{baseRepository{pool: pool}}
}

const billColumns = `invoice_id, vendor_id, invoice_date, due_date, payment_terms, status, total, journal_id, created_at, created_by, last_updated_at, last_updated_by`

const billLineColumns = `line_id, invoice_id, product_id, account_id, quantity, price, description, notes`

func scanBill(row pgx.Row) (*domain.PurchaseInvoice, error) {
	var bill domain.PurchaseInvoice
	var dueDate *time.Time
	err := row.Scan(
		&bill.InvoiceID,
		&bill.VendorID,
		&bill.InvoiceDate,
		&dueDate,
		&bill.PaymentTerms,
		&bill.Status,
		&bill.Total,
		&bill.JournalID,
		&bill.CreatedAt,
		&bill.CreatedBy,
		&bill.LastUpdatedAt,
		&bill.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	bill.DueDate = dueDate
	return &bill, nil
}

func scanBillLine(row pgx.Row) (*domain.PurchaseLine, error) {
	var line domain.PurchaseLine
	var productID, accountID, description, notes *string
	err := row.Scan(
		&line.LineID,
		&line.InvoiceID,
		&productID,
		&accountID,
		&line.Quantity,
		&line.Price,
		&description,
		&notes,
	)
	if err != nil {
		return nil, err
	}
	if productID != nil {
		line.ProductID = *productID
	}
	if accountID != nil {
		line.AccountID = *accountID
	}
	if description != nil {
		line.Description = *description
	}
	if notes != nil {
		line.Notes = *notes
	}
	return &line, nil
}

func collectBillLines(rows pgx.Rows) ([]domain.PurchaseLine, error) {
	defer rows.Close()
	lines := []domain.PurchaseLine{}
	for rows.Next() {
		line, err := scanBillLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill line row: %w", err)
		}
		lines = append(lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill line rows: %w", err)
	}
	return lines, nil
}

// FindBillByID retrieves a bill header by its ID.
func (r *purchaseInvoiceRepository) FindBillByID(ctx context.Context, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `SELECT ` + billColumns + ` FROM purchase_invoices WHERE invoice_id = $1;`
	bill, err := scanBill(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by ID %s: %w", invoiceID, err)
	}
	return bill, nil
}

// FindBillLines retrieves the bill's lines in insertion order.
func (r *purchaseInvoiceRepository) FindBillLines(ctx context.Context, invoiceID string) ([]domain.PurchaseLine, error) {
	query := `SELECT ` + billLineColumns + ` FROM purchase_invoice_lines WHERE invoice_id = $1 ORDER BY seq;`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for bill %s: %w", invoiceID, err)
	}
	return collectBillLines(rows)
}

// FindBillLineByID retrieves a single bill line.
func (r *purchaseInvoiceRepository) FindBillLineByID(ctx context.Context, lineID string) (*domain.PurchaseLine, error) {
	query := `SELECT ` + billLineColumns + ` FROM purchase_invoice_lines WHERE line_id = $1;`
	line, err := scanBillLine(r.pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill line by ID %s: %w", lineID, err)
	}
	return line, nil
}

// ListBills retrieves a page of bills, most recent first.
func (r *purchaseInvoiceRepository) ListBills(ctx context.Context, limit int, offset int) ([]domain.PurchaseInvoice, error) {
	query := `SELECT ` + billColumns + ` FROM purchase_invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.PurchaseInvoice{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// SaveBill persists a new draft bill header.
func (r *purchaseInvoiceRepository) SaveBill(ctx context.Context, invoice domain.PurchaseInvoice) error {
	query := `
		INSERT INTO purchase_invoices (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.VendorID,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.PaymentTerms,
		invoice.Status,
		invoice.Total,
		invoice.JournalID,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bill %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// SaveBillLineInTx appends a line to a bill.
func (r *purchaseInvoiceRepository) SaveBillLineInTx(ctx context.Context, tx pgx.Tx, line domain.PurchaseLine) error {
	query := `
		INSERT INTO purchase_invoice_lines (` + billLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	var productID, accountID *string
	if line.ProductID != "" {
		productID = &line.ProductID
	}
	if line.AccountID != "" {
		accountID = &line.AccountID
	}
	_, err := tx.Exec(ctx, query,
		line.LineID,
		line.InvoiceID,
		productID,
		accountID,
		line.Quantity,
		line.Price,
		line.Description,
		line.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save line %s for bill %s: %w", line.LineID, line.InvoiceID, err)
	}
	return nil
}

// UpdateBillLineInTx rewrites an existing line.
func (r *purchaseInvoiceRepository) UpdateBillLineInTx(ctx context.Context, tx pgx.Tx, line domain.PurchaseLine) error {
	query := `
		UPDATE purchase_invoice_lines
		SET product_id = $2, account_id = $3, quantity = $4, price = $5, description = $6, notes = $7
		WHERE line_id = $1;
	`
	var productID, accountID *string
	if line.ProductID != "" {
		productID = &line.ProductID
	}
	if line.AccountID != "" {
		accountID = &line.AccountID
	}
	tag, err := tx.Exec(ctx, query,
		line.LineID,
		productID,
		accountID,
		line.Quantity,
		line.Price,
		line.Description,
		line.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill line %s: %w", line.LineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBillLineInTx removes a line from its bill.
func (r *purchaseInvoiceRepository) DeleteBillLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error {
	query := `DELETE FROM purchase_invoice_lines WHERE line_id = $1;`
	tag, err := tx.Exec(ctx, query, lineID)
	if err != nil {
		return fmt.Errorf("failed to delete bill line %s: %w", lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBillLinesInTx reads the bill's lines within the transaction.
func (r *purchaseInvoiceRepository) FindBillLinesInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.PurchaseLine, error) {
	query := `SELECT ` + billLineColumns + ` FROM purchase_invoice_lines WHERE invoice_id = $1 ORDER BY seq;`
	rows, err := tx.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for bill %s: %w", invoiceID, err)
	}
	return collectBillLines(rows)
}

// UpdateBillTotalInTx overwrites the derived total on the header.
func (r *purchaseInvoiceRepository) UpdateBillTotalInTx(ctx context.Context, tx pgx.Tx, invoiceID string, total decimal.Decimal, userID string, now time.Time) error {
	query := `UPDATE purchase_invoices SET total = $2, last_updated_at = $3, last_updated_by = $4 WHERE invoice_id = $1;`
	tag, err := tx.Exec(ctx, query, invoiceID, total, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update total for bill %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBillStatusInTx transitions the bill's status.
func (r *purchaseInvoiceRepository) UpdateBillStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus) error {
	query := `UPDATE purchase_invoices SET status = $2, last_updated_at = $3 WHERE invoice_id = $1;`
	tag, err := tx.Exec(ctx, query, invoiceID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update status for bill %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBillByIDForUpdate selects a bill header and locks its row.
func (r *purchaseInvoiceRepository) FindBillByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `SELECT ` + billColumns + ` FROM purchase_invoices WHERE invoice_id = $1 FOR UPDATE;`
	bill, err := scanBill(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by ID %s: %w", invoiceID, err)
	}
	return bill, nil
}
