package account_test

import (
	"io"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newAccount(t *testing.T, typ account.Type, balance float64) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithCustomerID(1).
		WithNumber("WB0000000001").
		WithType(typ).
		WithBalance(balance).
		Build()
	require.NoError(t, err)
	return acc
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("applies savings policy", func(t *testing.T) {
		acc := newAccount(t, account.TypeSavings, 1000)
		assert.Equal(t, account.StatusActive, acc.Status)
		assert.InDelta(t, 2.5, acc.InterestRate, 1e-9)
		assert.InDelta(t, 100.0, acc.MinimumBalance, 1e-9)
		assert.InDelta(t, 5000.0, acc.DailyWithdrawalLimit, 1e-9)
		assert.InDelta(t, 50000.0, acc.MonthlyWithdrawalLimit, 1e-9)
		assert.False(t, acc.LastTransactionDate.Before(acc.OpeningDate))
	})

	t.Run("unknown type gets fallback row", func(t *testing.T) {
		acc := newAccount(t, "PREMIUM", 0)
		assert.InDelta(t, 1.0, acc.InterestRate, 1e-9)
		assert.InDelta(t, 5000.0, acc.TransactionLimit(), 1e-9)
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := account.New().WithNumber("WB1").WithType(account.TypeChecking).Build()
		assert.ErrorIs(t, err, account.ErrCustomerRequired)
	})

	t.Run("missing number", func(t *testing.T) {
		_, err := account.New().WithCustomerID(1).WithType(account.TypeChecking).Build()
		assert.ErrorIs(t, err, account.ErrNumberRequired)
	})

	t.Run("negative balance", func(t *testing.T) {
		_, err := account.New().WithCustomerID(1).WithNumber("WB1").
			WithType(account.TypeChecking).WithBalance(-1).Build()
		assert.ErrorIs(t, err, account.ErrNegativeBalance)
	})

	t.Run("non-finite balance", func(t *testing.T) {
		for _, balance := range []float64{math.NaN(), math.Inf(1)} {
			_, err := account.New().WithCustomerID(1).WithNumber("WB1").
				WithType(account.TypeChecking).WithBalance(balance).Build()
			assert.ErrorIs(t, err, account.ErrInvalidBalance)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := account.New().WithCustomerID(1).WithNumber("WB1").Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSetTypeReappliesDefaults(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, account.TypeSavings, 0)
	acc.SetType(account.TypeFixedDeposit)
	assert.InDelta(t, 8.0, acc.InterestRate, 1e-9)
	assert.InDelta(t, 1000.0, acc.MinimumBalance, 1e-9)
	assert.Zero(t, acc.DailyWithdrawalLimit)
	assert.Zero(t, acc.MonthlyWithdrawalLimit)
}

func TestDepositWithdraw(t *testing.T) {
	t.Parallel()

	acc := newAccount(t, account.TypeSavings, 1000)
	acc.Deposit(250)
	assert.InDelta(t, 1250.0, acc.Balance, 1e-9)

	acc.Deposit(-5)
	acc.Deposit(0)
	acc.Deposit(math.Inf(1))
	acc.Deposit(math.NaN())
	assert.InDelta(t, 1250.0, acc.Balance, 1e-9)
	assert.False(t, acc.Withdraw(math.NaN()))

	assert.False(t, acc.Withdraw(5000))
	assert.InDelta(t, 1250.0, acc.Balance, 1e-9)

	// The minimum balance is not a floor.
	assert.True(t, acc.Withdraw(1250))
	assert.Zero(t, acc.Balance)
	assert.False(t, acc.MeetsMinimumBalance())

	assert.False(t, acc.Withdraw(0))
}

func TestFrozenAccountIgnoresMovement(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, account.TypeChecking, 100)
	require.NoError(t, acc.Freeze())

	acc.Deposit(10)
	assert.False(t, acc.Withdraw(10))
	assert.InDelta(t, 100.0, acc.Balance, 1e-9)
	assert.Zero(t, acc.Interest())
}

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    account.Status
		to      account.Status
		wantErr bool
	}{
		{"freeze active", account.StatusActive, account.StatusFrozen, false},
		{"freeze frozen", account.StatusFrozen, account.StatusFrozen, true},
		{"unfreeze frozen", account.StatusFrozen, account.StatusActive, false},
		{"unfreeze active", account.StatusActive, account.StatusActive, true},
		{"close active", account.StatusActive, account.StatusClosed, false},
		{"close frozen", account.StatusFrozen, account.StatusClosed, false},
		{"close closed", account.StatusClosed, account.StatusClosed, true},
		{"reopen closed", account.StatusClosed, account.StatusActive, true},
		{"freeze closed", account.StatusClosed, account.StatusFrozen, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &account.Account{Number: "WB1", Type: account.TypeSavings, Status: tt.from}
			err := acc.TransitionTo(tt.to)
			if tt.wantErr {
				var invalid *domain.InvalidTransactionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.from, acc.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, acc.Status)
		})
	}
}

func TestInterest(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, account.TypeSavings, 1000)
	assert.InDelta(t, 25.0, acc.Interest(), 1e-9)
	acc.AddInterest()
	assert.InDelta(t, 1025.0, acc.Balance, 1e-9)

	empty := newAccount(t, account.TypeSavings, 0)
	empty.AddInterest()
	assert.Zero(t, empty.Balance)
}

func TestLastTransactionNeverBeforeOpening(t *testing.T) {
	t.Parallel()
	future := time.Now().Add(time.Hour)
	acc, err := account.New().WithCustomerID(1).WithNumber("WB1").
		WithType(account.TypeChecking).WithOpeningDate(future).Build()
	require.NoError(t, err)
	acc.Deposit(1)
	assert.Equal(t, future, acc.LastTransactionDate)
}

func TestParse(t *testing.T) {
	t.Parallel()
	typ, err := account.ParseType(" savings ")
	require.NoError(t, err)
	assert.Equal(t, account.TypeSavings, typ)

	_, err = account.ParseType("  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	st, err := account.ParseStatus("frozen")
	require.NoError(t, err)
	assert.Equal(t, account.StatusFrozen, st)

	_, err = account.ParseStatus("gone")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReporting(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, account.TypeSavings, 12.5)
	assert.True(t, acc.Valid())
	assert.Equal(t, "Account WB0000000001: SAVINGS, Balance: 12.50, Status: ACTIVE", acc.Summary())
	assert.Contains(t, acc.Details(), "Balance: 12.50")
}
