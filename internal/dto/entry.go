package dto

import (
	"time"

	"github.com/finbooks/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to open a draft journal entry.
type CreateEntryRequest struct {
	JournalID      string     `json:"journalID" binding:"required"`
	AccountingDate *time.Time `json:"accountingDate"` // Defaults to today
	Description    string     `json:"description"`
}

// AddItemRequest defines one ledger line appended to a draft entry.
// Conventionally exactly one of debit/credit is non-zero.
type AddItemRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Partner   string          `json:"partner"`
	Label     string          `json:"label"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// ItemResponse defines the data returned for a journal item.
type ItemResponse struct {
	ItemID    string          `json:"itemID"`
	AccountID string          `json:"accountID"`
	Partner   string          `json:"partner"`
	Label     string          `json:"label"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry with its items.
type EntryResponse struct {
	EntryID        string         `json:"entryID"`
	Reference      string         `json:"reference"`
	AccountingDate time.Time      `json:"accountingDate"`
	JournalID      string         `json:"journalID"`
	Description    string         `json:"description"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	Items          []ItemResponse `json:"items"`
}

// ToItemResponse converts a domain.JournalItem to ItemResponse DTO.
func ToItemResponse(item *domain.JournalItem) ItemResponse {
	return ItemResponse{
		ItemID:    item.ItemID,
		AccountID: item.AccountID,
		Partner:   item.Partner,
		Label:     item.Label,
		Debit:     item.Debit,
		Credit:    item.Credit,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	items := make([]ItemResponse, len(entry.Items))
	for i := range entry.Items {
		items[i] = ToItemResponse(&entry.Items[i])
	}
	return EntryResponse{
		EntryID:        entry.EntryID,
		Reference:      entry.Reference,
		AccountingDate: entry.AccountingDate,
		JournalID:      entry.JournalID,
		Description:    entry.Description,
		Status:         string(entry.Status),
		CreatedAt:      entry.CreatedAt,
		Items:          items,
	}
}
