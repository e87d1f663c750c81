package domain

// JournalType classifies a journal by the business activity it records.
type JournalType string

const (
	JournalSales         JournalType = "Sales"
	JournalPurchases     JournalType = "Purchases"
	JournalCash          JournalType = "Cash"
	JournalBank          JournalType = "Bank"
	JournalMiscellaneous JournalType = "Miscellaneous"
	JournalGeneral       JournalType = "General"
	JournalPayroll       JournalType = "Payroll"
	JournalTax           JournalType = "Tax"
)

// Journal is a pure classification bucket for journal entries.
// Immutable after creation; the code is assigned sequentially ("1001" first).
type Journal struct {
	JournalID   string      `json:"journalID"` // Primary Key (UUID)
	Code        string      `json:"code"`      // Unique sequential code, e.g. "1001"
	Name        string      `json:"name"`
	JournalType JournalType `json:"journalType"`
	Description string      `json:"description"`
	AuditFields
}
