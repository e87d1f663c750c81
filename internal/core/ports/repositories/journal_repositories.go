package repositories

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal classification data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// HighestJournalCodeForUpdate returns the code of the most recently created
	// journal, locking that row. Returns "" when no journals exist.
	HighestJournalCodeForUpdate(ctx context.Context, tx pgx.Tx) (string, error)

	// SaveJournalInTx persists a new journal within the given transaction.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
