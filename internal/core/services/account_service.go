package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
	"github.com/finbooks/books_backend/internal/utils/accounting"
)

const (
	accountCodeSeed  = "1000"
	accountCodeWidth = 4

	// maxParentDepth caps the ancestor walk when validating the account tree.
	maxParentDepth = 100
)

var (
	ErrParentInactive = errors.New("parent account is inactive")
	ErrAccountHasKids = errors.New("account has child accounts and cannot be deactivated")
	ErrParentCycle    = errors.New("account hierarchy contains a cycle")
)

// accountService implements the chart-of-accounts registry.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if err := s.validateParentChain(ctx, parentID); err != nil {
			logger.Warn("Parent account validation failed", slog.String("parent_id", parentID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		AccountType:     req.AccountType,
		Category:        req.Category,
		ParentAccountID: parentID,
		Balance:         decimal.Zero,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Code assignment must see a stable view of the highest existing code, so
	// the scan and the insert share one transaction.
	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for account creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.accountRepo.Rollback(ctx, tx) }()

	highest, err := s.accountRepo.HighestAccountCodeForUpdate(ctx, tx)
	if err != nil {
		logger.Error("Failed to read highest account code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read highest account code: %w", err)
	}

	code, err := accounting.NextSequence(highest, accountCodeSeed, accountCodeWidth)
	if err != nil {
		logger.Error("Cannot derive next account code", slog.String("highest", highest), slog.String("error", err.Error()))
		return nil, err
	}
	account.Code = code

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit account creation", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit account creation: %w", err)
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// validateParentChain verifies the parent exists, is active, and that its
// ancestor chain terminates. A chain that revisits an account or exceeds
// maxParentDepth indicates corrupted hierarchy data.
func (s *accountService) validateParentChain(ctx context.Context, parentID string) error {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("invalid parent account: %w", err)
	}
	if !parent.IsActive {
		return fmt.Errorf("%w: %s", ErrParentInactive, parentID)
	}

	seen := map[string]bool{parentID: true}
	current := parent
	for depth := 0; current.ParentAccountID != ""; depth++ {
		if depth >= maxParentDepth {
			return fmt.Errorf("%w: chain from %s exceeds depth %d", ErrParentCycle, parentID, maxParentDepth)
		}
		if seen[current.ParentAccountID] {
			return fmt.Errorf("%w: account %s", ErrParentCycle, current.ParentAccountID)
		}
		seen[current.ParentAccountID] = true

		current, err = s.accountRepo.FindAccountByID(ctx, current.ParentAccountID)
		if err != nil {
			return fmt.Errorf("broken parent chain above %s: %w", parentID, err)
		}
	}
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by code", slog.String("code", code), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	hasChildren, err := s.accountRepo.HasChildAccounts(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check for child accounts", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to check for child accounts: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: %s", ErrAccountHasKids, accountID)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) RecomputeBalance(ctx context.Context, accountID string, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	debits, credits, err := s.accountRepo.SumItemsByAccount(ctx, accountID)
	if err != nil {
		logger.Error("Failed to sum journal items for account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to sum journal items: %w", err)
	}

	balance := debits.Sub(credits)
	if err := s.accountRepo.UpdateAccountBalance(ctx, accountID, balance, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to store recomputed balance", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to store recomputed balance: %w", err)
	}

	logger.Info("Account balance recomputed", slog.String("account_id", accountID), slog.String("balance", balance.String()))
	return balance, nil
}
