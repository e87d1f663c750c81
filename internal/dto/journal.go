package dto

import (
	"github.com/finbooks/books_backend/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a journal.
type CreateJournalRequest struct {
	Name        string             `json:"name" binding:"required"`
	JournalType domain.JournalType `json:"journalType" binding:"required,oneof=Sales Purchases Cash Bank Miscellaneous General Payroll Tax"`
	Description string             `json:"description"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID   string             `json:"journalID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	JournalType domain.JournalType `json:"journalType"`
	Description string             `json:"description"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:   j.JournalID,
		Code:        j.Code,
		Name:        j.Name,
		JournalType: j.JournalType,
		Description: j.Description,
	}
}

// ToJournalResponses converts a slice of domain.Journal to response DTOs.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return res
}
