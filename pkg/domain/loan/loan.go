// Package loan defines the loan entity and its state machine.
//
//	PENDING --Approve--> APPROVED --Disburse--> ACTIVE --MakePayment--> COMPLETED
//	   |                                          |
//	   +--Reject--> REJECTED                      +--MarkDefaulted--> DEFAULTED
//
// DISBURSED is accepted from stored rows but never written. REJECTED, COMPLETED and
// DEFAULTED are terminal.
package loan

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/policy"
)

// Type is the loan product.
type Type string

const (
	TypePersonal    Type = policy.Personal
	TypeBusiness    Type = policy.Business
	TypeEducation   Type = policy.Education
	TypeAgriculture Type = policy.Agriculture
)

// ParseType normalises operator input. Types outside the policy table are
// accepted and priced at the fallback rate.
func ParseType(s string) (Type, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return "", fmt.Errorf("%w: loan type is required", domain.ErrValidation)
	}
	return Type(t), nil
}

// Status is the lifecycle state of a loan.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDisbursed Status = "DISBURSED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusDefaulted Status = "DEFAULTED"
)

// ParseStatus converts operator input into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed,
		StatusActive, StatusCompleted, StatusDefaulted:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown loan status %q", domain.ErrValidation, s)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusDefaulted
}

// Loan is a loan application and, once disbursed, the outstanding debt.
//
// RemainingBalance starts at Amount, not at TotalAmount(): paying back the
// principal completes the loan and the flat interest is never collected.
type Loan struct {
	ID               uint
	CustomerID       uint
	AccountID        uint
	Amount           float64
	InterestRate     float64
	TermInMonths     int
	Type             Type
	Purpose          string
	ApplicationDate  time.Time
	ApprovalDate     *time.Time
	DisbursementDate *time.Time
	DueDate          *time.Time
	Status           Status
	MonthlyPayment   float64
	RemainingBalance float64
	ApprovedBy       string
	RejectionReason  string
}

// New creates a PENDING application priced at the policy rate of its type.
func New(customerID, accountID uint, amount float64, termInMonths int, t Type, purpose string) (*Loan, error) {
	if !domain.IsPositiveAmount(amount) {
		return nil, domain.NewInvalidTransaction("loan", amount, "loan amount must be a positive number")
	}
	if termInMonths <= 0 {
		return nil, domain.NewInvalidTransaction("loan", amount, "term must be at least one month")
	}
	if customerID == 0 || accountID == 0 {
		return nil, fmt.Errorf("%w: customer and account are required", domain.ErrValidation)
	}
	if t == "" {
		return nil, fmt.Errorf("%w: loan type is required", domain.ErrValidation)
	}
	l := &Loan{
		CustomerID:       customerID,
		AccountID:        accountID,
		Amount:           amount,
		InterestRate:     policy.LoanInterestRate(string(t)),
		TermInMonths:     termInMonths,
		Type:             t,
		Purpose:          strings.TrimSpace(purpose),
		ApplicationDate:  time.Now(),
		Status:           StatusPending,
		RemainingBalance: amount,
	}
	if !domain.IsFinite(l.TotalAmount()) {
		return nil, domain.NewInvalidTransaction("loan", amount, "loan amount is too large")
	}
	return l, nil
}

// TotalInterest is amount × rate × months / 1200.
func (l *Loan) TotalInterest() float64 {
	return l.Amount * l.InterestRate * float64(l.TermInMonths) / (12 * 100)
}

// TotalAmount is principal plus flat interest.
func (l *Loan) TotalAmount() float64 {
	return l.Amount + l.TotalInterest()
}

// Approve moves a PENDING loan to APPROVED and fixes the monthly payment.
func (l *Loan) Approve(approvedBy string) error {
	if l.Status != StatusPending {
		return l.transitionError("approve")
	}
	now := time.Now()
	l.Status = StatusApproved
	l.ApprovalDate = &now
	l.ApprovedBy = approvedBy
	if l.TermInMonths > 0 {
		l.MonthlyPayment = l.TotalAmount() / float64(l.TermInMonths)
	}
	return nil
}

// Reject moves a PENDING loan to REJECTED.
func (l *Loan) Reject(reason string) error {
	if l.Status != StatusPending {
		return l.transitionError("reject")
	}
	l.Status = StatusRejected
	l.RejectionReason = reason
	return nil
}

// Disburse moves an APPROVED loan to ACTIVE and starts the repayment term.
func (l *Loan) Disburse() error {
	if l.Status != StatusApproved {
		return l.transitionError("disburse")
	}
	now := time.Now()
	due := now.AddDate(0, l.TermInMonths, 0)
	l.DisbursementDate = &now
	l.DueDate = &due
	l.Status = StatusActive
	return nil
}

// MakePayment reduces the remaining balance of an ACTIVE loan. A payment
// at or above the remaining balance clamps it to zero and completes the
// loan. It returns the amount actually applied.
func (l *Loan) MakePayment(amount float64) (float64, error) {
	if l.Status != StatusActive {
		return 0, l.transitionError("pay")
	}
	if !domain.IsPositiveAmount(amount) {
		return 0, domain.NewInvalidTransaction("loan payment", amount, "amount must be a positive number")
	}
	applied := min(amount, l.RemainingBalance)
	l.RemainingBalance -= amount
	if l.RemainingBalance <= 0 {
		l.RemainingBalance = 0
		l.Status = StatusCompleted
	}
	return applied, nil
}

// MarkDefaulted moves an ACTIVE loan to DEFAULTED.
func (l *Loan) MarkDefaulted() error {
	if l.Status != StatusActive {
		return l.transitionError("default")
	}
	l.Status = StatusDefaulted
	return nil
}

func (l *Loan) transitionError(action string) error {
	return &domain.InvalidTransactionError{
		Reason: fmt.Sprintf("cannot %s loan %d in status %s", action, l.ID, l.Status),
	}
}

// IsActive reports whether the loan is being repaid.
func (l *Loan) IsActive() bool { return l.Status == StatusActive }

// IsPending reports whether the application still awaits a decision.
func (l *Loan) IsPending() bool { return l.Status == StatusPending }

// IsCompleted reports whether the loan has been repaid in full.
func (l *Loan) IsCompleted() bool { return l.Status == StatusCompleted }

// IsOverdue reports whether an ACTIVE loan is past its due date.
func (l *Loan) IsOverdue() bool {
	return l.isOverdueAt(time.Now())
}

func (l *Loan) isOverdueAt(now time.Time) bool {
	return l.IsActive() && l.DueDate != nil && now.After(*l.DueDate)
}

// MonthsRemaining is the number of whole months until the due date of an
// ACTIVE loan, zero otherwise.
func (l *Loan) MonthsRemaining() int {
	return l.monthsRemainingAt(time.Now())
}

func (l *Loan) monthsRemainingAt(now time.Time) int {
	if !l.IsActive() || l.DueDate == nil || !now.Before(*l.DueDate) {
		return 0
	}
	return wholeMonths(now, *l.DueDate)
}

func wholeMonths(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	if from.AddDate(0, months, 0).After(to) {
		months--
	}
	return months
}

// Valid reports whether the loan satisfies its amount and balance bounds.
func (l *Loan) Valid() bool {
	if !domain.IsPositiveAmount(l.Amount) || l.TermInMonths <= 0 {
		return false
	}
	if l.RemainingBalance < 0 || l.RemainingBalance > l.TotalAmount() {
		return false
	}
	return (l.Status == StatusCompleted) == (l.RemainingBalance == 0)
}

// Summary is a one-line description used in listings and reports.
func (l *Loan) Summary() string {
	return fmt.Sprintf("Loan %d: %s %.2f over %d months, Status: %s, Remaining: %.2f",
		l.ID, l.Type, l.Amount, l.TermInMonths, l.Status, l.RemainingBalance)
}

// Details lists every attribute, one per line.
func (l *Loan) Details() []string {
	lines := []string{
		fmt.Sprintf("Loan ID: %d", l.ID),
		fmt.Sprintf("Customer ID: %d", l.CustomerID),
		fmt.Sprintf("Account ID: %d", l.AccountID),
		"Type: " + string(l.Type),
		"Purpose: " + l.Purpose,
		fmt.Sprintf("Amount: %.2f", l.Amount),
		fmt.Sprintf("Interest Rate: %.2f%%", l.InterestRate),
		fmt.Sprintf("Term: %d months", l.TermInMonths),
		fmt.Sprintf("Total Interest: %.2f", l.TotalInterest()),
		fmt.Sprintf("Total Repayable: %.2f", l.TotalAmount()),
		fmt.Sprintf("Monthly Payment: %.2f", l.MonthlyPayment),
		fmt.Sprintf("Remaining Balance: %.2f", l.RemainingBalance),
		"Status: " + string(l.Status),
		"Application Date: " + l.ApplicationDate.Format(time.DateTime),
	}
	if l.ApprovalDate != nil {
		lines = append(lines, "Approval Date: "+l.ApprovalDate.Format(time.DateTime), "Approved By: "+l.ApprovedBy)
	}
	if l.RejectionReason != "" {
		lines = append(lines, "Rejection Reason: "+l.RejectionReason)
	}
	if l.DisbursementDate != nil {
		lines = append(lines, "Disbursement Date: "+l.DisbursementDate.Format(time.DateTime))
	}
	if l.DueDate != nil {
		lines = append(lines, "Due Date: "+l.DueDate.Format(time.DateTime))
		if l.IsActive() {
			lines = append(lines, fmt.Sprintf("Months Remaining: %d", l.MonthsRemaining()))
		}
	}
	return lines
}
