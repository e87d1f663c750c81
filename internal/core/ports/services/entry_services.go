package services

import (
	"context"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/finbooks/books_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	// GetEntry retrieves an entry together with its items.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// EntryWriterSvc defines the draft-side mutations of the entry engine
type EntryWriterSvc interface {
	// CreateDraftEntry creates a new draft entry, assigning the next reference.
	CreateDraftEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// AddItem appends an item to a draft entry and recomputes the affected
	// account's balance in the same transaction.
	AddItem(ctx context.Context, entryID string, req dto.AddItemRequest, userID string) (*domain.JournalItem, error)

	// RemoveItem deletes an item from a draft entry and recomputes the affected
	// account's balance in the same transaction.
	RemoveItem(ctx context.Context, entryID string, itemID string, userID string) error
}

// EntryPosterSvc defines the posting transition
type EntryPosterSvc interface {
	// PostEntry transitions a balanced draft entry to posted. Posting an
	// already-posted entry is a no-op; an unbalanced entry fails and stays draft.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
	EntryPosterSvc
}
