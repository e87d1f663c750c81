package repositories

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryID retrieves the entry's items in insertion order.
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error)

	// FindItemByID retrieves a single journal item.
	FindItemByID(ctx context.Context, itemID string) (*domain.JournalItem, error)
}

// EntryWriter defines write operations for journal entry data. All writes
// happen inside a caller-owned transaction so that item mutations and the
// account balance recompute they trigger land atomically.
type EntryWriter interface {
	// HighestEntryReferenceForUpdate returns the reference of the most recently
	// created entry, locking that row. Returns "" when no entries exist.
	HighestEntryReferenceForUpdate(ctx context.Context, tx pgx.Tx) (string, error)

	// SaveEntryInTx persists a new entry header.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// SaveItemInTx appends an item to an entry.
	SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.JournalItem) error

	// DeleteItemInTx removes an item from its entry.
	DeleteItemInTx(ctx context.Context, tx pgx.Tx, itemID string) error

	// UpdateEntryStatusInTx transitions the entry's status.
	UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus) error

	// FindEntryByIDForUpdate selects an entry header and locks its row.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryIDInTx reads the entry's items within the transaction.
	FindItemsByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.JournalItem, error)

	// FindItemByIDInTx reads a single item within the transaction.
	FindItemByIDInTx(ctx context.Context, tx pgx.Tx, itemID string) (*domain.JournalItem, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
