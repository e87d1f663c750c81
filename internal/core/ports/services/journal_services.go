package services

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/finbooks/books_backend/internal/dto"
)

// JournalSvcFacade defines operations on journal classification buckets.
type JournalSvcFacade interface {
	// CreateJournal persists a new journal, assigning the next sequential code.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)

	// GetJournalByID retrieves a specific journal.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error)
}
