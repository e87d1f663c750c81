package repositories

import (
	"context"
	"time"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its assigned chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// HasChildAccounts reports whether any account references the given one as parent.
	HasChildAccounts(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountSequenceSupport covers code assignment, which must run inside the
// same transaction as the insert.
type AccountSequenceSupport interface {
	// HighestAccountCodeForUpdate returns the code of the most recently created
	// account, locking that row. Returns "" when the chart is empty.
	HighestAccountCodeForUpdate(ctx context.Context, tx pgx.Tx) (string, error)

	// SaveAccountInTx persists a new account within the given transaction.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error
}

// AccountBalanceSupport defines operations maintaining the running balance.
type AccountBalanceSupport interface {
	// SumItemsByAccount aggregates total debit and credit amounts over all
	// journal items referencing the account.
	SumItemsByAccount(ctx context.Context, accountID string) (debits decimal.Decimal, credits decimal.Decimal, err error)

	// UpdateAccountBalance overwrites the stored balance for the account.
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error

	// SumItemsByAccountInTx is SumItemsByAccount within an open transaction.
	SumItemsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (debits decimal.Decimal, credits decimal.Decimal, err error)

	// UpdateAccountBalanceInTx is UpdateAccountBalance within an open transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error

	// FindAccountByIDForUpdate selects an account and locks its row for update.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// FindAccountByCodeForUpdate selects an account by chart code and locks its row.
	FindAccountByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountSequenceSupport
	AccountBalanceSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
