package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/books_backend/internal/core/ports/services"
	"github.com/finbooks/books_backend/internal/dto"
	"github.com/finbooks/books_backend/internal/middleware"
	"github.com/finbooks/books_backend/internal/utils/accounting"
)

const (
	journalCodeSeed  = "1001"
	journalCodeWidth = 4
)

// journalService manages the journal classification buckets.
// Journals are immutable after creation.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		Name:        req.Name,
		JournalType: req.JournalType,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction for journal creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	highest, err := s.journalRepo.HighestJournalCodeForUpdate(ctx, tx)
	if err != nil {
		logger.Error("Failed to read highest journal code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read highest journal code: %w", err)
	}

	code, err := accounting.NextSequence(highest, journalCodeSeed, journalCodeWidth)
	if err != nil {
		logger.Error("Cannot derive next journal code", slog.String("highest", highest), slog.String("error", err.Error()))
		return nil, err
	}
	journal.Code = code

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("journal_id", journal.JournalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit journal creation", slog.String("journal_id", journal.JournalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit journal creation: %w", err)
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return &journal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find journal by ID", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journals", slog.Int("limit", limit), slog.Int("offset", offset), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		return []domain.Journal{}, nil
	}
	return journals, nil
}
