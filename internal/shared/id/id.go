// Package id generates and parses the identifiers used across the helpdesk:
// UUIDs for clients, service tags, users, comments and history entries, and the
// sequential TK-###### ticket identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultPasswordLength = 16
)

var ticketIDPattern = regexp.MustCompile(`^TK-\d{6,}$`)

// NewUUID returns a random v4 UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// FormatTicketID renders a sequence number as TK-000042.
func FormatTicketID(seq int64) string {
	return fmt.Sprintf("%s%0*d", constants.TicketIDPrefix, constants.TicketIDDigits, seq)
}

// IsTicketID reports whether s has the TK-###### shape.
func IsTicketID(s string) bool {
	return ticketIDPattern.MatchString(s)
}

// ParseTicketSeq extracts the numeric part of a ticket identifier.
func ParseTicketSeq(ticketID string) (int64, error) {
	if !IsTicketID(ticketID) {
		return 0, fmt.Errorf("invalid ticket id: %q", ticketID)
	}
	return strconv.ParseInt(strings.TrimPrefix(ticketID, constants.TicketIDPrefix), 10, 64)
}

// GeneratePassword creates a cryptographically random Base62 password.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}
