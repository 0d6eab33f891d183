package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const MaxNameLength = 100

// NormalizeName trims, collapses inner whitespace and applies NFC.
func NormalizeName(value string) (string, error) {
	normalized := norm.NFC.String(strings.Join(strings.Fields(value), " "))
	if normalized == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(normalized) > MaxNameLength {
		return "", fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	return normalized, nil
}
