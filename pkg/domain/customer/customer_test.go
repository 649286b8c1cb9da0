package customer_test

import (
	"math"
	"testing"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := customer.New(" John ", "Doe", "john@x", "+1", "A", "N1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", c.FullName())
	assert.Equal(t, customer.StatusActive, c.Status)
	assert.Zero(t, c.CreditScore)
	assert.False(t, c.RegistrationDate.IsZero())

	for _, args := range [][6]string{
		{"", "Doe", "john@x", "", "", "N1"},
		{"John", "", "john@x", "", "", "N1"},
		{"John", "Doe", "", "", "", "N1"},
		{"John", "Doe", "john@x", "", "", " "},
	} {
		_, err := customer.New(args[0], args[1], args[2], args[3], args[4], args[5])
		assert.ErrorIs(t, err, domain.ErrValidation, "%v", args)
	}
}

func TestUpdateCreditScoreClamps(t *testing.T) {
	t.Parallel()
	c := &customer.Customer{}

	tests := []struct {
		in, want float64
	}{
		{-50, 0},
		{0, 0},
		{650.5, 650.5},
		{1000, 1000},
		{1200, 1000},
		{math.Inf(1), 1000},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		c.UpdateCreditScore(tt.in)
		assert.InDelta(t, tt.want, c.CreditScore, 1e-9)
		assert.GreaterOrEqual(t, c.CreditScore, customer.MinCreditScore)
		assert.LessOrEqual(t, c.CreditScore, customer.MaxCreditScore)
	}
}

func TestStatusChanges(t *testing.T) {
	t.Parallel()
	c := &customer.Customer{Status: customer.StatusActive}
	c.Suspend()
	assert.Equal(t, customer.StatusSuspended, c.Status)
	assert.False(t, c.IsActive())
	c.Deactivate()
	assert.Equal(t, customer.StatusInactive, c.Status)
	c.Activate()
	assert.True(t, c.IsActive())

	st, err := customer.ParseStatus("suspended")
	require.NoError(t, err)
	assert.Equal(t, customer.StatusSuspended, st)
	_, err = customer.ParseStatus("banned")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReporting(t *testing.T) {
	t.Parallel()
	c := &customer.Customer{ID: 7, FirstName: "Awa", LastName: "Diallo", Email: "awa@x", Status: customer.StatusActive}
	assert.Equal(t, "Customer 7: Awa Diallo, Email: awa@x, Status: ACTIVE", c.Summary())
	assert.Contains(t, c.Details(), "Name: Awa Diallo")
}
