// Package accounting holds small pure helpers shared by the ledger services.
package accounting

import (
	"fmt"
	"strconv"

	"github.com/finbooks/books_backend/internal/apperrors"
)

// NextSequence derives the next code in a numeric document sequence.
// When highest is empty the sequence starts at seed, returned verbatim.
// Otherwise highest is parsed as a decimal integer, incremented, and
// zero-padded to width digits. A non-numeric highest cannot be incremented
// and fails with ErrInvalidState.
func NextSequence(highest string, seed string, width int) (string, error) {
	if highest == "" {
		return seed, nil
	}

	n, err := strconv.ParseInt(highest, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: existing code %q is not numeric", apperrors.ErrInvalidState, highest)
	}

	return fmt.Sprintf("%0*d", width, n+1), nil
}
