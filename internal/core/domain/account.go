package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Expense   AccountType = "expense"
)

// Account represents one entry in the chart of accounts.
// Code is assigned sequentially by the registry and never user-supplied.
// Balance is maintained by the journal entry engine as the exact sum of
// debits minus credits over all journal items referencing this account.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique sequential code, e.g. "1000"
	Name            string          `json:"name"`            // Display name
	AccountType     AccountType     `json:"accountType"`     // asset, liability, etc.
	Category        string          `json:"category"`        // Free-form reporting category
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing tree)
	Balance         decimal.Decimal `json:"balance"`         // Persisted running balance
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Soft delete or status flag
	AuditFields
}
