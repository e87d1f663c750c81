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

type journalRepository struct {
	baseRepository
}

// NewJournalRepository creates a new repository for journal classification data.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &journalRepository{baseRepository{pool: pool}}
}

const journalColumns = `journal_id, code, name, journal_type, description, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var journal domain.Journal
	var description *string
	err := row.Scan(
		&journal.JournalID,
		&journal.Code,
		&journal.Name,
		&journal.JournalType,
		&description,
		&journal.CreatedAt,
		&journal.CreatedBy,
		&journal.LastUpdatedAt,
		&journal.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		journal.Description = *description
	}
	return &journal, nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *journalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	journal, err := scanJournal(r.pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return journal, nil
}

// ListJournals retrieves a page of journals ordered by code.
func (r *journalRepository) ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY code LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}

// HighestJournalCodeForUpdate returns the code of the most recently created
// journal, locking that row.
func (r *journalRepository) HighestJournalCodeForUpdate(ctx context.Context, tx pgx.Tx) (string, error) {
	query := `SELECT code FROM journals ORDER BY created_at DESC, code DESC LIMIT 1 FOR UPDATE;`
	var code string
	err := tx.QueryRow(ctx, query).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find highest journal code: %w", err)
	}
	return code, nil
}

// SaveJournalInTx persists a new journal within the given transaction.
func (r *journalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		journal.JournalID,
		journal.Code,
		journal.Name,
		journal.JournalType,
		journal.Description,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal code %s already exists", apperrors.ErrDuplicate, journal.Code)
		}
		return fmt.Errorf("failed to save journal %s: %w", journal.JournalID, err)
	}
	return nil
}
