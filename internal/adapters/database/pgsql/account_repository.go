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

type accountRepository struct {
	baseRepository
}

// NewAccountRepository creates a new repository for chart-of-accounts data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &accountRepository{baseRepository{pool: pool}}
}

const accountColumns = `account_id, code, name, account_type, category, parent_account_id, balance, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

// scanAccount reads one account row. Works for both pool and tx rows.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	var parentID *string
	var description *string

	err := row.Scan(
		&acc.AccountID,
		&acc.Code,
		&acc.Name,
		&acc.AccountType,
		&acc.Category,
		&parentID,
		&acc.Balance,
		&description,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		acc.ParentAccountID = *parentID
	}
	if description != nil {
		acc.Description = *description
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByCode retrieves an account by its chart code.
func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	acc, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return acc, nil
}

// FindAccountsByCodes retrieves the accounts matching the given codes, keyed
// by code. Codes with no matching account are simply absent from the map.
func (r *accountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1);`
	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[acc.Code] = *acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *accountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// HasChildAccounts reports whether any account references the given one as parent.
func (r *accountRepository) HasChildAccounts(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE parent_account_id = $1);`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check child accounts for %s: %w", accountID, err)
	}
	return exists, nil
}

// UpdateAccount updates an existing account's editable details.
func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, category = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Category,
		account.Description,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *accountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HighestAccountCodeForUpdate returns the code of the most recently created
// account, locking that row so concurrent creations serialize on it.
func (r *accountRepository) HighestAccountCodeForUpdate(ctx context.Context, tx pgx.Tx) (string, error) {
	query := `SELECT code FROM accounts ORDER BY created_at DESC, code DESC LIMIT 1 FOR UPDATE;`
	var code string
	err := tx.QueryRow(ctx, query).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find highest account code: %w", err)
	}
	return code, nil
}

// SaveAccountInTx persists a new account within the given transaction.
func (r *accountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	var parentID *string
	if account.ParentAccountID != "" {
		parentID = &account.ParentAccountID
	}
	_, err := tx.Exec(ctx, query,
		account.AccountID,
		account.Code,
		account.Name,
		account.AccountType,
		account.Category,
		parentID,
		account.Balance,
		account.Description,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

const sumItemsQuery = `
	SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
	FROM journal_items
	WHERE account_id = $1;
`

// SumItemsByAccount aggregates total debits and credits over all journal
// items referencing the account.
func (r *accountRepository) SumItemsByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits decimal.Decimal
	if err := r.pool.QueryRow(ctx, sumItemsQuery, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum journal items for account %s: %w", accountID, err)
	}
	return debits, credits, nil
}

// SumItemsByAccountInTx is SumItemsByAccount within an open transaction.
func (r *accountRepository) SumItemsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits decimal.Decimal
	if err := tx.QueryRow(ctx, sumItemsQuery, accountID).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum journal items for account %s: %w", accountID, err)
	}
	return debits, credits, nil
}

const updateBalanceQuery = `
	UPDATE accounts
	SET balance = $2, last_updated_at = $3, last_updated_by = $4
	WHERE account_id = $1;
`

// UpdateAccountBalance overwrites the stored balance for the account.
func (r *accountRepository) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	tag, err := r.pool.Exec(ctx, updateBalanceQuery, accountID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountBalanceInTx is UpdateAccountBalance within an open transaction.
func (r *accountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, updateBalanceQuery, accountID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByIDForUpdate selects an account and locks its row for update.
func (r *accountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByCodeForUpdate selects an account by chart code and locks its row.
func (r *accountRepository) FindAccountByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1 FOR UPDATE;`
	acc, err := scanAccount(tx.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return acc, nil
}
