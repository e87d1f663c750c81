package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
	"github.com/finbooks/books_backend/internal/utils/accounting"
)

const (
	entryReferenceSeed  = "10011"
	entryReferenceWidth = 6
)

var (
	ErrEntryNotDraft   = errors.New("journal entry is not in draft status")
	ErrNegativeAmount  = errors.New("debit and credit amounts must not be negative")
	ErrJournalRequired = errors.New("journal not found for entry")
)

// entryService implements the journal entry engine. Item mutations and the
// account balance recompute they trigger always commit together.
type entryService struct {
	entryRepo   portsrepo.EntryRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx, journalRepo portsrepo.JournalRepositoryFacade) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) CreateDraftEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.journalRepo.FindJournalByID(ctx, req.JournalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrJournalRequired, req.JournalID)
		}
		logger.Error("Failed to resolve journal for new entry", slog.String("journal_id", req.JournalID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	accountingDate := now
	if req.AccountingDate != nil {
		accountingDate = *req.AccountingDate
	}

	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		AccountingDate: accountingDate,
		JournalID:      req.JournalID,
		Description:    req.Description,
		Status:         domain.EntryDraft,
		CreatedAt:      now,
		Items:          []domain.JournalItem{},
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.entryRepo.Rollback(ctx, tx) }()

	highest, err := s.entryRepo.HighestEntryReferenceForUpdate(ctx, tx)
	if err != nil {
		logger.Error("Failed to read highest entry reference", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read highest entry reference: %w", err)
	}

	reference, err := accounting.NextSequence(highest, entryReferenceSeed, entryReferenceWidth)
	if err != nil {
		logger.Error("Cannot derive next entry reference", slog.String("highest", highest), slog.String("error", err.Error()))
		return nil, err
	}
	entry.Reference = reference

	if err := s.entryRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		logger.Error("Failed to save entry", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit entry creation", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit entry creation: %w", err)
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	return &entry, nil
}

func (s *entryService) AddItem(ctx context.Context, entryID string, req dto.AddItemRequest, userID string) (*domain.JournalItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Debit.IsNegative() || req.Credit.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for item addition", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.entryRepo.Rollback(ctx, tx) }()

	entry, err := s.entryRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrEntryNotDraft)
	}

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", req.AccountID, err)
		}
		logger.Error("Failed to lock account for item addition", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	item := domain.JournalItem{
		ItemID:    uuid.NewString(),
		EntryID:   entryID,
		AccountID: req.AccountID,
		Partner:   req.Partner,
		Label:     req.Label,
		Debit:     req.Debit,
		Credit:    req.Credit,
	}

	if err := s.entryRepo.SaveItemInTx(ctx, tx, item); err != nil {
		logger.Error("Failed to save item", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	if err := s.recomputeAccountBalanceInTx(ctx, tx, req.AccountID, userID); err != nil {
		logger.Error("Failed to recompute account balance", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit item addition", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit item addition: %w", err)
	}

	logger.Info("Item added to entry", slog.String("entry_id", entryID), slog.String("item_id", item.ItemID), slog.String("account_id", item.AccountID))
	return &item, nil
}

func (s *entryService) RemoveItem(ctx context.Context, entryID string, itemID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for item removal", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.entryRepo.Rollback(ctx, tx) }()

	entry, err := s.entryRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrEntryNotDraft)
	}

	item, err := s.entryRepo.FindItemByIDInTx(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if item.EntryID != entryID {
		return fmt.Errorf("%w: item %s does not belong to entry %s", apperrors.ErrNotFound, itemID, entryID)
	}

	if err := s.entryRepo.DeleteItemInTx(ctx, tx, itemID); err != nil {
		logger.Error("Failed to delete item", slog.String("item_id", itemID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if err := s.recomputeAccountBalanceInTx(ctx, tx, item.AccountID, userID); err != nil {
		logger.Error("Failed to recompute account balance", slog.String("account_id", item.AccountID), slog.String("error", err.Error()))
		return err
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit item removal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit item removal: %w", err)
	}

	logger.Info("Item removed from entry", slog.String("entry_id", entryID), slog.String("item_id", itemID))
	return nil
}

func (s *entryService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entry by ID", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	items, err := s.entryRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to load entry items", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load entry items: %w", err)
	}
	if items == nil {
		items = []domain.JournalItem{}
	}
	entry.Items = items
	return entry, nil
}

func (s *entryService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.entryRepo.Rollback(ctx, tx) }()

	entry, err := s.entryRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	items, err := s.entryRepo.FindItemsByEntryIDInTx(ctx, tx, entryID)
	if err != nil {
		logger.Error("Failed to load entry items for posting", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load entry items: %w", err)
	}
	if items == nil {
		items = []domain.JournalItem{}
	}
	entry.Items = items

	// Re-posting an already posted entry changes nothing.
	if entry.Status == domain.EntryPosted {
		logger.Debug("Entry already posted, nothing to do", slog.String("entry_id", entryID))
		return entry, nil
	}

	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalanced,
			entry.TotalDebits().String(), entry.TotalCredits().String())
	}

	if err := s.entryRepo.UpdateEntryStatusInTx(ctx, tx, entryID, domain.EntryPosted); err != nil {
		logger.Error("Failed to update entry status", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update entry status: %w", err)
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit posting", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit posting: %w", err)
	}

	entry.Status = domain.EntryPosted
	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.String("reference", entry.Reference))
	return entry, nil
}

// recomputeAccountBalanceInTx overwrites the account's stored balance with the
// authoritative sum of debits minus credits over all of its journal items.
func (s *entryService) recomputeAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, userID string) error {
	debits, credits, err := s.accountRepo.SumItemsByAccountInTx(ctx, tx, accountID)
	if err != nil {
		return fmt.Errorf("failed to sum journal items for account %s: %w", accountID, err)
	}

	balance := debits.Sub(credits)
	if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, accountID, balance, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store balance for account %s: %w", accountID, err)
	}
	return nil
}
