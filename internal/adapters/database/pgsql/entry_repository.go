package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/finbooks/books_backend/internal/core/domain"
	portsrepo "github.com/finbooks/books_backend/internal/core/ports/repositories"
)

type entryRepository struct {
	baseRepository
}

// NewEntryRepository creates a new repository for journal entries and items.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &entryRepository{baseRepository{pool: pool}}
}

const entryColumns = `entry_id, reference, accounting_date, journal_id, description, status, created_at`

const itemColumns = `item_id, entry_id, account_id, partner, label, debit, credit`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	var description *string
	err := row.Scan(
		&entry.EntryID,
		&entry.Reference,
		&entry.AccountingDate,
		&entry.JournalID,
		&description,
		&entry.Status,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		entry.Description = *description
	}
	return &entry, nil
}

func scanItem(row pgx.Row) (*domain.JournalItem, error) {
	var item domain.JournalItem
	var partner, label *string
	err := row.Scan(
		&item.ItemID,
		&item.EntryID,
		&item.AccountID,
		&partner,
		&label,
		&item.Debit,
		&item.Credit,
	)
	if err != nil {
		return nil, err
	}
	if partner != nil {
		item.Partner = *partner
	}
	if label != nil {
		item.Label = *label
	}
	return &item, nil
}

func collectItems(rows pgx.Rows) ([]domain.JournalItem, error) {
	defer rows.Close()
	items := []domain.JournalItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal item rows: %w", err)
	}
	return items, nil
}

// FindEntryByID retrieves an entry header by its ID.
func (r *entryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	return entry, nil
}

// FindItemsByEntryID retrieves the entry's items in insertion order.
func (r *entryRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE entry_id = $1 ORDER BY seq;`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	return collectItems(rows)
}

// FindItemByID retrieves a single journal item.
func (r *entryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE item_id = $1;`
	item, err := scanItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}
	return item, nil
}

// HighestEntryReferenceForUpdate returns the reference of the most recently
// created entry, locking that row.
func (r *entryRepository) HighestEntryReferenceForUpdate(ctx context.Context, tx pgx.Tx) (string, error) {
	query := `SELECT reference FROM journal_entries ORDER BY created_at DESC, reference DESC LIMIT 1 FOR UPDATE;`
	var reference string
	err := tx.QueryRow(ctx, query).Scan(&reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find highest entry reference: %w", err)
	}
	return reference, nil
}

// SaveEntryInTx persists a new entry header.
func (r *entryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.Reference,
		entry.AccountingDate,
		entry.JournalID,
		entry.Description,
		entry.Status,
		entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry reference %s already exists", apperrors.ErrDuplicate, entry.Reference)
		}
		return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// SaveItemInTx appends an item to an entry.
func (r *entryRepository) SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.JournalItem) error {
	query := `
		INSERT INTO journal_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		item.ItemID,
		item.EntryID,
		item.AccountID,
		item.Partner,
		item.Label,
		item.Debit,
		item.Credit,
	)
	if err != nil {
		return fmt.Errorf("failed to save item %s for entry %s: %w", item.ItemID, item.EntryID, err)
	}
	return nil
}

// DeleteItemInTx removes an item from its entry.
func (r *entryRepository) DeleteItemInTx(ctx context.Context, tx pgx.Tx, itemID string) error {
	query := `DELETE FROM journal_items WHERE item_id = $1;`
	tag, err := tx.Exec(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEntryStatusInTx transitions the entry's status.
func (r *entryRepository) UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus) error {
	query := `UPDATE journal_entries SET status = $2 WHERE entry_id = $1;`
	tag, err := tx.Exec(ctx, query, entryID, status)
	if err != nil {
		return fmt.Errorf("failed to update status for entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByIDForUpdate selects an entry header and locks its row.
func (r *entryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	entry, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	return entry, nil
}

// FindItemsByEntryIDInTx reads the entry's items within the transaction.
func (r *entryRepository) FindItemsByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE entry_id = $1 ORDER BY seq;`
	rows, err := tx.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	return collectItems(rows)
}

// FindItemByIDInTx reads a single item within the transaction.
func (r *entryRepository) FindItemByIDInTx(ctx context.Context, tx pgx.Tx, itemID string) (*domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE item_id = $1;`
	item, err := scanItem(tx.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}
	return item, nil
}
