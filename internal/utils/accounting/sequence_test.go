package accounting

import (
	"testing"

	"github.com/finbooks/books_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestNextSequence(t *testing.T) {
	testCases := []struct {
		name     string
		highest  string
		seed     string
		width    int
		expected string
	}{
		{
			name:     "Empty sequence starts at seed",
			highest:  "",
			seed:     "1000",
			width:    4,
			expected: "1000",
		},
		{
			name:     "Account code increments with padding",
			highest:  "1000",
			seed:     "1000",
			width:    4,
			expected: "1001",
		},
		{
			name:     "Entry reference seed is returned unpadded",
			highest:  "",
			seed:     "10011",
			width:    6,
			expected: "10011",
		},
		{
			name:     "Entry reference successor is padded to six digits",
			highest:  "10011",
			seed:     "10011",
			width:    6,
			expected: "010012",
		},
		{
			name:     "Padded reference keeps incrementing",
			highest:  "010012",
			seed:     "10011",
			width:    6,
			expected: "010013",
		},
		{
			name:     "Code wider than the pad width is not truncated",
			highest:  "99999",
			seed:     "1000",
			width:    4,
			expected: "100000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := NextSequence(tc.highest, tc.seed, tc.width)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestNextSequence_NonNumeric(t *testing.T) {
	_, err := NextSequence("ACC-17", "1000", 4)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}
