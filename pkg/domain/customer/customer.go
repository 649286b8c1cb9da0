// Package customer defines the bank customer entity.
package customer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/amirasaad/waribank/pkg/domain"
)

// Status is the lifecycle state of a customer.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusInactive  Status = "INACTIVE"
)

// Credit score bounds. Every update is clamped into this range.
const (
	MinCreditScore = 0.0
	MaxCreditScore = 1000.0
)

// ParseStatus converts operator input into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusSuspended, StatusInactive:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown customer status %q", domain.ErrValidation, s)
}

// Customer represents a registered bank customer.
type Customer struct {
	ID               uint
	FirstName        string
	LastName         string
	Email            string
	PhoneNumber      string
	Address          string
	NationalID       string
	RegistrationDate time.Time
	Status           Status
	CreditScore      float64
}

// New creates an ACTIVE customer registered now with a zero credit score.
func New(firstName, lastName, email, phoneNumber, address, nationalID string) (*Customer, error) {
	c := &Customer{
		FirstName:        strings.TrimSpace(firstName),
		LastName:         strings.TrimSpace(lastName),
		Email:            strings.TrimSpace(email),
		PhoneNumber:      strings.TrimSpace(phoneNumber),
		Address:          strings.TrimSpace(address),
		NationalID:       strings.TrimSpace(nationalID),
		RegistrationDate: time.Now(),
		Status:           StatusActive,
	}
	if !c.Valid() || c.NationalID == "" {
		return nil, fmt.Errorf("%w: first name, last name, email and national id are required", domain.ErrValidation)
	}
	return c, nil
}

// FullName returns "first last".
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// IsActive reports whether the customer may transact.
func (c *Customer) IsActive() bool { return c.Status == StatusActive }

// Status setters. Any status may follow any other.
func (c *Customer) Activate()   { c.Status = StatusActive }
func (c *Customer) Suspend()    { c.Status = StatusSuspended }
func (c *Customer) Deactivate() { c.Status = StatusInactive }

// UpdateCreditScore stores the score clamped into [0, 1000].
func (c *Customer) UpdateCreditScore(score float64) {
	c.CreditScore = ClampCreditScore(score)
}

// ClampCreditScore bounds a score into [MinCreditScore, MaxCreditScore].
// NaN clamps to MinCreditScore.
func ClampCreditScore(score float64) float64 {
	if math.IsNaN(score) {
		return MinCreditScore
	}
	return max(MinCreditScore, min(MaxCreditScore, score))
}

// Valid reports whether the mandatory identity fields are set.
func (c *Customer) Valid() bool {
	return c.FirstName != "" && c.LastName != "" && c.Email != ""
}

// Summary is a one-line description used in listings and reports.
func (c *Customer) Summary() string {
	return fmt.Sprintf("Customer %d: %s, Email: %s, Status: %s", c.ID, c.FullName(), c.Email, c.Status)
}

// Details lists every attribute, one per line.
func (c *Customer) Details() []string {
	return []string{
		fmt.Sprintf("Customer ID: %d", c.ID),
		"Name: " + c.FullName(),
		"Email: " + c.Email,
		"Phone: " + c.PhoneNumber,
		"Address: " + c.Address,
		"National ID: " + c.NationalID,
		"Status: " + string(c.Status),
		fmt.Sprintf("Credit Score: %.2f", c.CreditScore),
		"Registration Date: " + c.RegistrationDate.Format(time.DateTime),
	}
}
