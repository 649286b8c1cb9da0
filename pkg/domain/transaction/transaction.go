// Package transaction defines ledger entries.
package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/waribank/pkg/domain"
)

// Type is the kind of money movement a ledger entry records.
type Type string

const (
	TypeDeposit          Type = "DEPOSIT"
	TypeWithdrawal       Type = "WITHDRAWAL"
	TypeTransfer         Type = "TRANSFER"
	TypeLoanDisbursement Type = "LOAN_DISBURSEMENT"
	TypeLoanRepayment    Type = "LOAN_REPAYMENT"
)

// Status is the lifecycle state of a ledger entry.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Descriptions used when the operator leaves the description empty.
const (
	DescDeposit          = "Cash deposit"
	DescWithdrawal       = "Cash withdrawal"
	DescTransfer         = "Money transfer"
	DescLoanDisbursement = "Loan disbursement"
	DescLoanRepayment    = "Loan repayment"
	DescInterest         = "Interest credit"
)

// ParseType converts operator input into a known Type.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer, TypeLoanDisbursement, TypeLoanRepayment:
		return t, nil
	}
	return "", &domain.InvalidTransactionError{Reason: fmt.Sprintf("unknown transaction type %q", s)}
}

// ParseStatus converts operator input into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown transaction status %q", domain.ErrValidation, s)
}

// DefaultDescription returns the description recorded for t when none is given.
func DefaultDescription(t Type) string {
	switch t {
	case TypeDeposit:
		return DescDeposit
	case TypeWithdrawal:
		return DescWithdrawal
	case TypeTransfer:
		return DescTransfer
	case TypeLoanDisbursement:
		return DescLoanDisbursement
	case TypeLoanRepayment:
		return DescLoanRepayment
	}
	return string(t)
}

// Sign is +1 for types that credit the originating account and -1 for
// types that debit it.
func (t Type) Sign() float64 {
	switch t {
	case TypeDeposit, TypeLoanDisbursement:
		return 1
	}
	return -1
}

// Transaction is one ledger entry. AccountID is the originating account;
// ToAccountID is set exactly for TRANSFER. Once COMPLETED the entry is
// never rewritten.
type Transaction struct {
	ID              uint
	AccountID       uint
	Type            Type
	Amount          float64
	Description     string
	Date            time.Time
	Status          Status
	ReferenceNumber string
	ToAccountID     *uint
	BalanceAfter    float64
}

// New creates a PENDING entry dated now.
func New(accountID uint, t Type, amount float64, description, reference string) *Transaction {
	if strings.TrimSpace(description) == "" {
		description = DefaultDescription(t)
	}
	return &Transaction{
		AccountID:       accountID,
		Type:            t,
		Amount:          amount,
		Description:     description,
		Date:            time.Now(),
		Status:          StatusPending,
		ReferenceNumber: reference,
	}
}

// NewTransfer creates a PENDING TRANSFER entry from one account to another.
func NewTransfer(from, to uint, amount float64, description, reference string) *Transaction {
	tx := New(from, TypeTransfer, amount, description, reference)
	tx.ToAccountID = &to
	return tx
}

// MarkCompleted records the originating account balance and completes the entry.
func (t *Transaction) MarkCompleted(balanceAfter float64) error {
	if err := t.mutable(); err != nil {
		return err
	}
	t.BalanceAfter = balanceAfter
	t.Status = StatusCompleted
	return nil
}

func (t *Transaction) MarkFailed() error {
	if err := t.mutable(); err != nil {
		return err
	}
	t.Status = StatusFailed
	return nil
}

func (t *Transaction) MarkCancelled() error {
	if err := t.mutable(); err != nil {
		return err
	}
	t.Status = StatusCancelled
	return nil
}

func (t *Transaction) mutable() error {
	if t.Status == StatusCompleted {
		return fmt.Errorf("transaction %s: %w", t.ReferenceNumber, domain.ErrImmutable)
	}
	return nil
}

func (t *Transaction) IsCompleted() bool { return t.Status == StatusCompleted }

// IsCredit reports whether the entry adds money to the originating account.
func (t *Transaction) IsCredit() bool { return t.Type.Sign() > 0 }

// IsDebit reports whether the entry removes money from the originating account.
func (t *Transaction) IsDebit() bool { return t.Type.Sign() < 0 }

// FormattedAmount renders the amount with its sign, e.g. "+12.50".
func (t *Transaction) FormattedAmount() string {
	if t.IsCredit() {
		return fmt.Sprintf("+%.2f", t.Amount)
	}
	return fmt.Sprintf("-%.2f", t.Amount)
}

// Valid reports whether the entry can be written to the ledger.
func (t *Transaction) Valid() bool {
	if t.AccountID == 0 || t.Amount <= 0 || t.ReferenceNumber == "" {
		return false
	}
	return (t.Type == TypeTransfer) == (t.ToAccountID != nil)
}

// Summary is a one-line description used in listings and reports.
func (t *Transaction) Summary() string {
	return fmt.Sprintf("%s %s %s %s (%s) %s",
		t.Date.Format(time.DateTime), t.ReferenceNumber, t.Type, t.FormattedAmount(), t.Status, t.Description)
}

// Details lists every attribute, one per line.
func (t *Transaction) Details() []string {
	lines := []string{
		fmt.Sprintf("Transaction ID: %d", t.ID),
		"Reference: " + t.ReferenceNumber,
		fmt.Sprintf("Account ID: %d", t.AccountID),
		"Type: " + string(t.Type),
		"Amount: " + t.FormattedAmount(),
		"Description: " + t.Description,
		"Date: " + t.Date.Format(time.DateTime),
		"Status: " + string(t.Status),
		fmt.Sprintf("Balance After: %.2f", t.BalanceAfter),
	}
	if t.ToAccountID != nil {
		lines = append(lines, fmt.Sprintf("To Account ID: %d", *t.ToAccountID))
	}
	return lines
}
