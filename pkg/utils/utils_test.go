package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReferenceNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN[0-9A-F]{12}$`)
	seen := make(map[string]struct{})
	for range 1000 {
		ref := NewReferenceNumber()
		assert.Regexp(t, pattern, ref)
		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestNewAccountNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^WB[0-9]{10}$`)
	seen := make(map[string]struct{})
	for range 1000 {
		number := NewAccountNumber()
		assert.Regexp(t, pattern, number)
		_, dup := seen[number]
		assert.False(t, dup, "duplicate account number %s", number)
		seen[number] = struct{}{}
	}
}

func TestIsEmail(t *testing.T) {
	// Test with valid emails
	assert.True(t, IsEmail("test@example.com"))
	assert.True(t, IsEmail("another.test@sub.domain.co.uk"))
	assert.True(t, IsEmail("john@x"))

	// Test with invalid emails
	assert.False(t, IsEmail("invalid-email"))
	assert.False(t, IsEmail("invalid@.com"))
	assert.False(t, IsEmail("@example.com"))
	assert.False(t, IsEmail("John Doe <john@x>"))
}
