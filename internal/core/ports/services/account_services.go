package services

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its assigned chart code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account, assigning the next sequential code.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive; rejected while child
	// accounts reference it.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountBalanceSvc defines balance maintenance operations
type AccountBalanceSvc interface {
	// RecomputeBalance overwrites the account's balance with the sum of debits
	// minus credits over all journal items referencing it.
	RecomputeBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountBalanceSvc
}
