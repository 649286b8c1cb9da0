package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrImmutable is returned when a completed ledger entry would be rewritten
	ErrImmutable = errors.New("resource is immutable")
)

// CustomerNotFoundError is returned when a customer lookup misses.
// Field is one of "customer_id", "email" or "national_id".
type CustomerNotFoundError struct {
	Field string
	Value any
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer not found with %s: %v", e.Field, e.Value)
}

func (e *CustomerNotFoundError) Is(target error) bool { return target == ErrNotFound }

// AccountNotFoundError is returned when an account lookup misses.
// Field is one of "account_id" or "account_number".
type AccountNotFoundError struct {
	Field string
	Value any
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found with %s: %v", e.Field, e.Value)
}

func (e *AccountNotFoundError) Is(target error) bool { return target == ErrNotFound }

// TransactionNotFoundError is returned when a ledger lookup misses.
type TransactionNotFoundError struct {
	Field string
	Value any
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction not found with %s: %v", e.Field, e.Value)
}

func (e *TransactionNotFoundError) Is(target error) bool { return target == ErrNotFound }

// LoanNotFoundError is returned when a loan lookup misses.
type LoanNotFoundError struct {
	ID uint
}

func (e *LoanNotFoundError) Error() string {
	return fmt.Sprintf("loan not found with loan_id: %d", e.ID)
}

func (e *LoanNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientBalanceError is returned when a debit would drive a balance negative.
type InsufficientBalanceError struct {
	Requested float64
	Available float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: requested %.2f, available %.2f", e.Requested, e.Available)
}

// InvalidTransactionError covers non-positive amounts, inactive accounts,
// disallowed state transitions and unknown transaction types.
type InvalidTransactionError struct {
	Type   string
	Amount float64
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	if e.Type == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s of %.2f: %s", e.Type, e.Amount, e.Reason)
}

// NewInvalidTransaction is a shorthand for building an InvalidTransactionError.
func NewInvalidTransaction(txType string, amount float64, reason string) *InvalidTransactionError {
	return &InvalidTransactionError{Type: txType, Amount: amount, Reason: reason}
}

// StoreError wraps a lower-level persistence failure (I/O, constraint,
// connection) surfaced through the service layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsDomainError reports whether err belongs to the recoverable domain
// taxonomy, as opposed to a raw persistence failure.
func IsDomainError(err error) bool {
	var (
		cnf *CustomerNotFoundError
		anf *AccountNotFoundError
		tnf *TransactionNotFoundError
		lnf *LoanNotFoundError
		ib  *InsufficientBalanceError
		it  *InvalidTransactionError
		se  *StoreError
	)
	switch {
	case errors.As(err, &cnf), errors.As(err, &anf), errors.As(err, &tnf), errors.As(err, &lnf),
		errors.As(err, &ib), errors.As(err, &it), errors.As(err, &se):
		return true
	case errors.Is(err, ErrValidation), errors.Is(err, ErrImmutable):
		return true
	}
	return false
}
