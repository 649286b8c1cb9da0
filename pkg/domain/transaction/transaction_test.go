package transaction_test

import (
	"testing"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	tx := transaction.New(1, transaction.TypeDeposit, 250, "", "TXN000000000001")
	assert.Equal(t, transaction.StatusPending, tx.Status)
	assert.Equal(t, transaction.DescDeposit, tx.Description)
	assert.Nil(t, tx.ToAccountID)
	assert.True(t, tx.Valid())

	tr := transaction.NewTransfer(1, 2, 300, "rent", "TXN000000000002")
	require.NotNil(t, tr.ToAccountID)
	assert.Equal(t, uint(2), *tr.ToAccountID)
	assert.Equal(t, "rent", tr.Description)
	assert.True(t, tr.Valid())
}

func TestValid(t *testing.T) {
	t.Parallel()
	to := uint(2)
	tests := []struct {
		name string
		tx   transaction.Transaction
		want bool
	}{
		{"zero amount", transaction.Transaction{AccountID: 1, Type: transaction.TypeDeposit, ReferenceNumber: "R"}, false},
		{"no reference", transaction.Transaction{AccountID: 1, Type: transaction.TypeDeposit, Amount: 1}, false},
		{"transfer without target", transaction.Transaction{AccountID: 1, Type: transaction.TypeTransfer, Amount: 1, ReferenceNumber: "R"}, false},
		{"deposit with target", transaction.Transaction{AccountID: 1, Type: transaction.TypeDeposit, Amount: 1, ReferenceNumber: "R", ToAccountID: &to}, false},
		{"transfer", transaction.Transaction{AccountID: 1, Type: transaction.TypeTransfer, Amount: 1, ReferenceNumber: "R", ToAccountID: &to}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.Valid())
		})
	}
}

func TestCompletedIsImmutable(t *testing.T) {
	t.Parallel()
	tx := transaction.New(1, transaction.TypeWithdrawal, 10, "", "R")
	require.NoError(t, tx.MarkCompleted(90))
	assert.InDelta(t, 90.0, tx.BalanceAfter, 1e-9)

	assert.ErrorIs(t, tx.MarkCompleted(10), domain.ErrImmutable)
	assert.ErrorIs(t, tx.MarkFailed(), domain.ErrImmutable)
	assert.ErrorIs(t, tx.MarkCancelled(), domain.ErrImmutable)
	assert.Equal(t, transaction.StatusCompleted, tx.Status)

	pending := transaction.New(1, transaction.TypeWithdrawal, 10, "", "R2")
	require.NoError(t, pending.MarkFailed())
	assert.Equal(t, transaction.StatusFailed, pending.Status)
}

func TestDirection(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ    transaction.Type
		credit bool
		amount string
	}{
		{transaction.TypeDeposit, true, "+12.50"},
		{transaction.TypeLoanDisbursement, true, "+12.50"},
		{transaction.TypeWithdrawal, false, "-12.50"},
		{transaction.TypeLoanRepayment, false, "-12.50"},
		{transaction.TypeTransfer, false, "-12.50"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			tx := transaction.Transaction{Type: tt.typ, Amount: 12.5}
			assert.Equal(t, tt.credit, tx.IsCredit())
			assert.Equal(t, !tt.credit, tx.IsDebit())
			assert.Equal(t, tt.amount, tx.FormattedAmount())
		})
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()
	typ, err := transaction.ParseType("loan_repayment")
	require.NoError(t, err)
	assert.Equal(t, transaction.TypeLoanRepayment, typ)

	_, err = transaction.ParseType("REFUND")
	var invalid *domain.InvalidTransactionError
	assert.ErrorAs(t, err, &invalid)
}
