// Package account defines the bank account entity, its builder and the
// ACTIVE, FROZEN and CLOSED lifecycle.
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/policy"
)

var (
	// ErrCustomerRequired is returned when an account is built without an owner.
	ErrCustomerRequired = errors.New("customerID is required")
	// ErrNumberRequired is returned when an account is built without an account number.
	ErrNumberRequired = errors.New("account number is required")
	// ErrNegativeBalance is returned when an account would be opened below zero.
	ErrNegativeBalance = errors.New("initial balance cannot be negative")
	// ErrInvalidBalance is returned when the opening balance is NaN or infinite.
	ErrInvalidBalance = errors.New("initial balance must be a finite number")
)

// Type is the product type of an account.
type Type string

const (
	TypeSavings      Type = policy.Savings
	TypeChecking     Type = policy.Checking
	TypeFixedDeposit Type = policy.FixedDeposit
)

// ParseType normalises operator input. Types outside the policy table are
// accepted and receive the table's fallback defaults.
func ParseType(s string) (Type, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return "", fmt.Errorf("%w: account type is required", domain.ErrValidation)
	}
	return Type(t), nil
}

// Status is the lifecycle state of an account. CLOSED is terminal.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusFrozen Status = "FROZEN"
	StatusClosed Status = "CLOSED"
)

// ParseStatus converts operator input into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusFrozen, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown account status %q", domain.ErrValidation, s)
}

// Account is a customer's bank account.
//
// Invariants:
//   - Balance never drops below zero.
//   - LastTransactionDate is never before OpeningDate.
//   - Policy defaults are applied whenever Type is assigned.
//
// MinimumBalance is informational; it is not enforced as a floor on withdrawals.
type Account struct {
	ID                     uint
	CustomerID             uint
	Number                 string
	Type                   Type
	Balance                float64
	InterestRate           float64
	MinimumBalance         float64
	DailyWithdrawalLimit   float64
	MonthlyWithdrawalLimit float64
	OpeningDate            time.Time
	LastTransactionDate    time.Time
	Status                 Status
}

// Builder provides a fluent API for opening new accounts.
type Builder struct {
	customerID  uint
	number      string
	accountType Type
	balance     float64
	openedAt    time.Time
}

// New creates a Builder for a zero balance account opened now.
func New() *Builder {
	return &Builder{openedAt: time.Now()}
}

// WithCustomerID sets the owner. This is a mandatory field.
func (b *Builder) WithCustomerID(id uint) *Builder {
	b.customerID = id
	return b
}

// WithNumber sets the externally visible account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithType sets the product type; policy defaults follow from it.
func (b *Builder) WithType(t Type) *Builder {
	b.accountType = t
	return b
}

// WithBalance sets the opening balance.
func (b *Builder) WithBalance(balance float64) *Builder {
	b.balance = balance
	return b
}

// WithOpeningDate overrides the opening timestamp. Used by tests.
func (b *Builder) WithOpeningDate(t time.Time) *Builder {
	b.openedAt = t
	return b
}

// Build validates the builder and returns an ACTIVE account carrying the
// policy defaults of its type.
func (b *Builder) Build() (*Account, error) {
	if b.customerID == 0 {
		return nil, ErrCustomerRequired
	}
	if b.number == "" {
		return nil, ErrNumberRequired
	}
	if !domain.IsFinite(b.balance) {
		return nil, ErrInvalidBalance
	}
	if b.balance < 0 {
		return nil, ErrNegativeBalance
	}
	if b.accountType == "" {
		return nil, fmt.Errorf("%w: account type is required", domain.ErrValidation)
	}
	a := &Account{
		CustomerID:          b.customerID,
		Number:              b.number,
		Balance:             b.balance,
		OpeningDate:         b.openedAt,
		LastTransactionDate: b.openedAt,
		Status:              StatusActive,
	}
	a.SetType(b.accountType)
	return a, nil
}

// SetType assigns the type and applies its policy defaults.
func (a *Account) SetType(t Type) {
	a.Type = t
	d := policy.ForAccountType(string(t))
	a.InterestRate = d.InterestRate
	a.MinimumBalance = d.MinimumBalance
	a.DailyWithdrawalLimit = d.DailyWithdrawalLimit
	a.MonthlyWithdrawalLimit = d.MonthlyWithdrawalLimit
}

// IsActive reports whether the account accepts money movements.
func (a *Account) IsActive() bool { return a.Status == StatusActive }

// HasSufficientBalance reports whether balance >= amount.
func (a *Account) HasSufficientBalance(amount float64) bool {
	return a.Balance >= amount
}

// MeetsMinimumBalance reports whether the balance is at or above the policy minimum.
func (a *Account) MeetsMinimumBalance() bool {
	return a.Balance >= a.MinimumBalance
}

// TransactionLimit is the daily withdrawal cap of the account.
func (a *Account) TransactionLimit() float64 {
	return a.DailyWithdrawalLimit
}

// CanCredit reports whether amount can be added without the balance
// overflowing to infinity.
func (a *Account) CanCredit(amount float64) bool {
	return domain.IsFinite(a.Balance + amount)
}

// Deposit credits the account. It is a no-op unless the account is ACTIVE,
// amount is positive and the balance can hold it.
func (a *Account) Deposit(amount float64) {
	if domain.IsPositiveAmount(amount) && a.IsActive() && a.CanCredit(amount) {
		a.Balance += amount
		a.touch()
	}
}

// Withdraw debits the account when it is ACTIVE, amount is positive and the
// balance covers it. It reports whether the debit happened.
func (a *Account) Withdraw(amount float64) bool {
	if domain.IsPositiveAmount(amount) && a.IsActive() && a.HasSufficientBalance(amount) {
		a.Balance -= amount
		a.touch()
		return true
	}
	return false
}

// Interest is the interest one posting would credit: balance × rate / 100,
// or zero unless the account is ACTIVE with a positive balance.
func (a *Account) Interest() float64 {
	if !a.IsActive() || a.Balance <= 0 {
		return 0
	}
	return a.Balance * (a.InterestRate / 100)
}

// AddInterest credits Interest() to the balance.
func (a *Account) AddInterest() {
	if interest := a.Interest(); interest > 0 && a.CanCredit(interest) {
		a.Balance += interest
		a.touch()
	}
}

// Freeze moves an ACTIVE account to FROZEN.
func (a *Account) Freeze() error {
	if a.Status != StatusActive {
		return a.transitionError("freeze")
	}
	a.Status = StatusFrozen
	return nil
}

// Unfreeze moves a FROZEN account back to ACTIVE.
func (a *Account) Unfreeze() error {
	if a.Status != StatusFrozen {
		return a.transitionError("unfreeze")
	}
	a.Status = StatusActive
	return nil
}

// Close moves an ACTIVE or FROZEN account to CLOSED.
func (a *Account) Close() error {
	if a.Status == StatusClosed {
		return a.transitionError("close")
	}
	a.Status = StatusClosed
	return nil
}

// TransitionTo applies the transition that leads to target.
func (a *Account) TransitionTo(target Status) error {
	switch target {
	case StatusFrozen:
		return a.Freeze()
	case StatusActive:
		return a.Unfreeze()
	case StatusClosed:
		return a.Close()
	}
	return fmt.Errorf("%w: unknown account status %q", domain.ErrValidation, target)
}

func (a *Account) transitionError(action string) error {
	return &domain.InvalidTransactionError{
		Reason: fmt.Sprintf("cannot %s account %s in status %s", action, a.Number, a.Status),
	}
}

func (a *Account) touch() {
	now := time.Now()
	if now.Before(a.OpeningDate) {
		now = a.OpeningDate
	}
	a.LastTransactionDate = now
}

// Valid reports whether the identifying fields are set.
func (a *Account) Valid() bool {
	return a.Number != "" && a.Type != ""
}

// Summary is a one-line description used in listings and reports.
func (a *Account) Summary() string {
	return fmt.Sprintf("Account %s: %s, Balance: %.2f, Status: %s", a.Number, a.Type, a.Balance, a.Status)
}

// Details lists every attribute, one per line.
func (a *Account) Details() []string {
	return []string{
		fmt.Sprintf("Account ID: %d", a.ID),
		"Account Number: " + a.Number,
		fmt.Sprintf("Customer ID: %d", a.CustomerID),
		"Type: " + string(a.Type),
		fmt.Sprintf("Balance: %.2f", a.Balance),
		fmt.Sprintf("Interest Rate: %.2f%%", a.InterestRate),
		fmt.Sprintf("Minimum Balance: %.2f", a.MinimumBalance),
		fmt.Sprintf("Daily Withdrawal Limit: %.2f", a.DailyWithdrawalLimit),
		fmt.Sprintf("Monthly Withdrawal Limit: %.2f", a.MonthlyWithdrawalLimit),
		"Status: " + string(a.Status),
		"Opening Date: " + a.OpeningDate.Format(time.DateTime),
		"Last Transaction: " + a.LastTransactionDate.Format(time.DateTime),
	}
}
