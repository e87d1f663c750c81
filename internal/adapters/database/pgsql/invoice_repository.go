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

type invoiceRepository struct {
	baseRepository
}

// NewInvoiceRepository creates a new repository for sales invoice data.
func NewInvoiceRepository(pool *pgxpool.Pool) portsrepo.SalesInvoiceRepositoryWithTx {
	return &invoiceRepository{baseRepository{pool: pool}}
}

const invoiceColumns = `invoice_id, customer_id, invoice_date, due_date, payment_terms, status, total, journal_id, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, product_id, account_id, quantity, price, description, notes`

func scanInvoice(row pgx.Row) (*domain.SalesInvoice, error) {
	var inv domain.SalesInvoice
	var dueDate *time.Time
	err := row.Scan(
		&inv.InvoiceID,
		&inv.CustomerID,
		&inv.InvoiceDate,
		&dueDate,
		&inv.PaymentTerms,
		&inv.Status,
		&inv.Total,
		&inv.JournalID,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	inv.DueDate = dueDate
	return &inv, nil
}

func scanInvoiceLine(row pgx.Row) (*domain.InvoiceLine, error) {
	var line domain.InvoiceLine
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

func collectInvoiceLines(rows pgx.Rows) ([]domain.InvoiceLine, error) {
	defer rows.Close()
	lines := []domain.InvoiceLine{}
	for rows.Next() {
		line, err := scanInvoiceLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		lines = append(lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", err)
	}
	return lines, nil
}

// FindInvoiceByID retrieves an invoice header by its ID.
func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE invoice_id = $1;`
	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return inv, nil
}

// FindInvoiceLines retrieves the invoice's lines in insertion order.
func (r *invoiceRepository) FindInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE invoice_id = $1 ORDER BY seq;`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for invoice %s: %w", invoiceID, err)
	}
	return collectInvoiceLines(rows)
}

// FindLineByID retrieves a single invoice line.
func (r *invoiceRepository) FindLineByID(ctx context.Context, lineID string) (*domain.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE line_id = $1;`
	line, err := scanInvoiceLine(r.pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice line by ID %s: %w", lineID, err)
	}
	return line, nil
}

// ListInvoices retrieves a page of invoices, most recent first.
func (r *invoiceRepository) ListInvoices(ctx context.Context, limit int, offset int) ([]domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.SalesInvoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// SaveInvoice persists a new draft invoice header.
func (r *invoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CustomerID,
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
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// SaveLineInTx appends a line to an invoice.
func (r *invoiceRepository) SaveLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (` + invoiceLineColumns + `)
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
		return fmt.Errorf("failed to save line %s for invoice %s: %w", line.LineID, line.InvoiceID, err)
	}
	return nil
}

// UpdateLineInTx rewrites an existing line.
func (r *invoiceRepository) UpdateLineInTx(ctx context.Context, tx pgx.Tx, line domain.InvoiceLine) error {
	query := `
		UPDATE invoice_lines
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
		return fmt.Errorf("failed to update line %s: %w", line.LineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLineInTx removes a line from its invoice.
func (r *invoiceRepository) DeleteLineInTx(ctx context.Context, tx pgx.Tx, lineID string) error {
	query := `DELETE FROM invoice_lines WHERE line_id = $1;`
	tag, err := tx.Exec(ctx, query, lineID)
	if err != nil {
		return fmt.Errorf("failed to delete line %s: %w", lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceLinesInTx reads the invoice's lines within the transaction.
func (r *invoiceRepository) FindInvoiceLinesInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE invoice_id = $1 ORDER BY seq;`
	rows, err := tx.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for invoice %s: %w", invoiceID, err)
	}
	return collectInvoiceLines(rows)
}

// UpdateInvoiceTotalInTx overwrites the derived total on the header.
func (r *invoiceRepository) UpdateInvoiceTotalInTx(ctx context.Context, tx pgx.Tx, invoiceID string, total decimal.Decimal, userID string, now time.Time) error {
	query := `UPDATE sales_invoices SET total = $2, last_updated_at = $3, last_updated_by = $4 WHERE invoice_id = $1;`
	tag, err := tx.Exec(ctx, query, invoiceID, total, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update total for invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateInvoiceStatusInTx transitions the invoice's status.
func (r *invoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus) error {
	query := `UPDATE sales_invoices SET status = $2, last_updated_at = $3 WHERE invoice_id = $1;`
	tag, err := tx.Exec(ctx, query, invoiceID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update status for invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceByIDForUpdate selects an invoice header and locks its row.
func (r *invoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE invoice_id = $1 FOR UPDATE;`
	inv, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return inv, nil
}
