package utils

import (
	"encoding/binary"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

const (
	referencePrefix = "TXN"
	accountPrefix   = "WB"
	accountDigits   = 10_000_000_000
)

// NewReferenceNumber returns a transaction reference such as "TXN3F9A0C1B22DE".
// The suffix is random, so callers retry on a unique-key violation.
func NewReferenceNumber() string {
	id := uuid.New()
	return referencePrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}

// NewAccountNumber returns an account number such as "WB0482193377".
// The suffix is random, so callers retry on a unique-key violation.
func NewAccountNumber() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8]) % accountDigits
	return fmt.Sprintf("%s%010d", accountPrefix, n)
}

// IsEmail returns true if the string is a bare email address. Display
// names such as "Awa <awa@x>" are rejected.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
