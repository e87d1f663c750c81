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

type partyRepository struct {
	baseRepository
}

// NewPartyRepository creates a new repository for customer and vendor master data.
func NewPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &partyRepository{baseRepository{pool: pool}}
}

const customerColumns = `customer_id, name, email, phone, status, credit_limit, current_balance, created_at, created_by, last_updated_at, last_updated_by`

const vendorColumns = `vendor_id, name, company_name, email, phone, status, payment_days, current_balance, created_at, created_by, last_updated_at, last_updated_by`

const productColumns = `product_id, name, sales, purchase, product_type, price, description`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	var email, phone *string
	err := row.Scan(
		&customer.CustomerID,
		&customer.Name,
		&email,
		&phone,
		&customer.Status,
		&customer.CreditLimit,
		&customer.CurrentBalance,
		&customer.CreatedAt,
		&customer.CreatedBy,
		&customer.LastUpdatedAt,
		&customer.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if email != nil {
		customer.Email = *email
	}
	if phone != nil {
		customer.Phone = *phone
	}
	return &customer, nil
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var vendor domain.Vendor
	var companyName, email, phone *string
	err := row.Scan(
		&vendor.VendorID,
		&vendor.Name,
		&companyName,
		&email,
		&phone,
		&vendor.Status,
		&vendor.PaymentDays,
		&vendor.CurrentBalance,
		&vendor.CreatedAt,
		&vendor.CreatedBy,
		&vendor.LastUpdatedAt,
		&vendor.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if companyName != nil {
		vendor.CompanyName = *companyName
	}
	if email != nil {
		vendor.Email = *email
	}
	if phone != nil {
		vendor.Phone = *phone
	}
	return &vendor, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	var description *string
	err := row.Scan(
		&product.ProductID,
		&product.Name,
		&product.Sales,
		&product.Purchase,
		&product.ProductType,
		&product.Price,
		&description,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		product.Description = *description
	}
	return &product, nil
}

// FindCustomerByID retrieves a customer record.
func (r *partyRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return customer, nil
}

// FindVendorByID retrieves a vendor record.
func (r *partyRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE vendor_id = $1;`
	vendor, err := scanVendor(r.pool.QueryRow(ctx, query, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor by ID %s: %w", vendorID, err)
	}
	return vendor, nil
}

// FindProductByID retrieves a product record.
func (r *partyRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	product, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return product, nil
}

// FindCustomerByIDForUpdate selects and locks a customer row.
func (r *partyRepository) FindCustomerByIDForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE;`
	customer, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return customer, nil
}

// FindVendorByIDForUpdate selects and locks a vendor row.
func (r *partyRepository) FindVendorByIDForUpdate(ctx context.Context, tx pgx.Tx, vendorID string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE vendor_id = $1 FOR UPDATE;`
	vendor, err := scanVendor(tx.QueryRow(ctx, query, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor by ID %s: %w", vendorID, err)
	}
	return vendor, nil
}

// UpdateCustomerBalanceInTx overwrites the customer's running balance.
func (r *partyRepository) UpdateCustomerBalanceInTx(ctx context.Context, tx pgx.Tx, customerID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1;
	`
	tag, err := tx.Exec(ctx, query, customerID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateVendorBalanceInTx overwrites the vendor's running balance.
func (r *partyRepository) UpdateVendorBalanceInTx(ctx context.Context, tx pgx.Tx, vendorID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE vendors
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE vendor_id = $1;
	`
	tag, err := tx.Exec(ctx, query, vendorID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for vendor %s: %w", vendorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
