// Package events holds the domain events emitted after a unit of work commits.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() EventType
	// Message is a one-line human readable description for the audit log.
	Message() string
}

// Meta carries the identity and timestamp shared by all events.
type Meta struct {
	ID        uuid.UUID
	Timestamp time.Time
}

// NewMeta stamps a fresh event id and the current time.
func NewMeta() Meta {
	return Meta{ID: uuid.New(), Timestamp: time.Now()}
}

// CustomerRegistered is emitted after a customer row is created.
type CustomerRegistered struct {
	Meta
	CustomerID uint
	Email      string
}

func (e CustomerRegistered) Type() EventType { return EventTypeCustomerRegistered }

func (e CustomerRegistered) Message() string {
	return fmt.Sprintf("customer %d registered (%s)", e.CustomerID, e.Email)
}

// AccountOpened is emitted after an account row is created.
type AccountOpened struct {
	Meta
	AccountID      uint
	CustomerID     uint
	AccountNumber  string
	AccountType    string
	InitialBalance float64
}

func (e AccountOpened) Type() EventType { return EventTypeAccountOpened }

func (e AccountOpened) Message() string {
	return fmt.Sprintf("account %s (%s) opened for customer %d with %.2f",
		e.AccountNumber, e.AccountType, e.CustomerID, e.InitialBalance)
}

// AccountStatusChanged is emitted after an account is frozen, unfrozen or closed.
type AccountStatusChanged struct {
	Meta
	AccountID     uint
	AccountNumber string
	From          string
	To            string
}

func (e AccountStatusChanged) Type() EventType { return EventTypeAccountStatusChanged }

func (e AccountStatusChanged) Message() string {
	return fmt.Sprintf("account %s status %s -> %s", e.AccountNumber, e.From, e.To)
}

// TransactionCompleted is emitted after a ledger entry is committed.
type TransactionCompleted struct {
	Meta
	TransactionID   uint
	ReferenceNumber string
	AccountID       uint
	ToAccountID     *uint
	TransactionType string
	Amount          float64
	BalanceAfter    float64
}

func (e TransactionCompleted) Type() EventType { return EventTypeTransactionCompleted }

func (e TransactionCompleted) Message() string {
	return fmt.Sprintf("%s %s of %.2f on account %d, balance %.2f",
		e.TransactionType, e.ReferenceNumber, e.Amount, e.AccountID, e.BalanceAfter)
}

// LoanStatusChanged is emitted after every committed loan transition,
// including the initial application (From is empty).
type LoanStatusChanged struct {
	Meta
	LoanID     uint
	CustomerID uint
	From       string
	To         string
}

func (e LoanStatusChanged) Type() EventType { return EventTypeLoanStatusChanged }

func (e LoanStatusChanged) Message() string {
	if e.From == "" {
		return fmt.Sprintf("loan %d created as %s for customer %d", e.LoanID, e.To, e.CustomerID)
	}
	return fmt.Sprintf("loan %d status %s -> %s", e.LoanID, e.From, e.To)
}
