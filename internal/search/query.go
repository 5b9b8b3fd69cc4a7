package search

import (
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/phonetic"
)

// ParseQuery validates a query typed outside the keypad (CLI, MCP).
// Separators such as spaces and dashes are dropped; any other non-digit is
// rejected.
func ParseQuery(raw string) (string, error) {
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '-', r == '(', r == ')', r == '.', r == '+':
		default:
			return "", errors.New(errors.ErrCodeInvalidQuery, "query must contain only keypad digits", nil).
				WithDetail("query", raw).
				WithSuggestion("Type the digits of the name as on a phone keypad, e.g. 5283 for \"Kate\"")
		}
	}
	return phonetic.NormalizeDigits(raw), nil
}
