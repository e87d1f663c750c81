package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft  EntryStatus = "Draft"
	EntryPosted EntryStatus = "posted"
)

// JournalEntry represents a single, balanced financial event composed of
// journal items. Draft -> posted is a one-way transition; once posted the
// items are immutable.
type JournalEntry struct {
	EntryID        string      `json:"entryID"`   // Primary Key (UUID)
	Reference      string      `json:"reference"` // Sequential reference, seed "10011"
	AccountingDate time.Time   `json:"accountingDate"`
	JournalID      string      `json:"journalID"` // FK -> Journal
	Description    string      `json:"description"`
	Status         EntryStatus `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`

	// Items are owned exclusively by this entry; populated on demand.
	Items []JournalItem `json:"items,omitempty"`
}

// JournalItem is a single ledger line within a journal entry, affecting one
// account. Conventionally exactly one of Debit/Credit is non-zero.
type JournalItem struct {
	ItemID    string          `json:"itemID"`  // Primary Key (UUID)
	EntryID   string          `json:"entryID"` // FK -> JournalEntry (Not Null)
	AccountID string          `json:"accountID"`
	Partner   string          `json:"partner"` // Free-text counterparty label
	Label     string          `json:"label"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// TotalDebits returns the sum of the debit side over the entry's items.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Debit)
	}
	return total
}

// TotalCredits returns the sum of the credit side over the entry's items.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Credit)
	}
	return total
}

// IsBalanced reports whether total debits equal total credits exactly.
// Comparison is decimal-exact with no tolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}
