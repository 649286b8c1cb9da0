package transaction_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	accountrepo "github.com/amirasaad/waribank/infra/repository/account"
	customerrepo "github.com/amirasaad/waribank/infra/repository/customer"
	transactionrepo "github.com/amirasaad/waribank/infra/repository/transaction"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/account"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
	repo "github.com/amirasaad/waribank/pkg/repository/transaction"
	"github.com/amirasaad/waribank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ledger   repo.Repository
	from, to uint
	seq      int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testutils.NewSQLiteDB(t)

	c, err := customer.New("Awa", "Diallo", "awa@example.com", "", "", "SN-1")
	require.NoError(t, err)
	require.NoError(t, customerrepo.New(db).Create(ctx, c))

	accounts := accountrepo.New(db)
	ids := make([]uint, 0, 2)
	for _, number := range []string{"WB0000000001", "WB0000000002"} {
		a, err := account.New().WithCustomerID(c.ID).WithNumber(number).WithType(account.TypeChecking).Build()
		require.NoError(t, err)
		require.NoError(t, accounts.Create(ctx, a))
		ids = append(ids, a.ID)
	}
	return &fixture{ledger: transactionrepo.New(db), from: ids[0], to: ids[1]}
}

func (f *fixture) record(t *testing.T, tx *transaction.Transaction) *transaction.Transaction {
	t.Helper()
	require.NoError(t, f.ledger.Create(context.Background(), tx))
	return tx
}

func (f *fixture) ref() string {
	f.seq++
	return fmt.Sprintf("TXN%012d", f.seq)
}

func (f *fixture) deposit(t *testing.T, amount float64, at time.Time) *transaction.Transaction {
	t.Helper()
	tx := transaction.New(f.from, transaction.TypeDeposit, amount, "", f.ref())
	tx.Date = at
	require.NoError(t, tx.MarkCompleted(amount))
	return f.record(t, tx)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	tx := f.deposit(t, 40, time.Now())
	require.NotZero(t, tx.ID)

	got, err := f.ledger.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.TypeDeposit, got.Type)
	assert.Equal(t, transaction.StatusCompleted, got.Status)
	assert.Equal(t, transaction.DescDeposit, got.Description)
	assert.Nil(t, got.ToAccountID)
	assert.InDelta(t, 40.0, got.BalanceAfter, 1e-9)

	byRef, err := f.ledger.GetByReference(ctx, tx.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, byRef.ID)
}

func TestCreateRejectsDuplicateReference(t *testing.T) {
	f := setup(t)
	tx := f.deposit(t, 10, time.Now())

	dup := transaction.New(f.from, transaction.TypeWithdrawal, 5, "", tx.ReferenceNumber)
	assert.ErrorIs(t, f.ledger.Create(context.Background(), dup), domain.ErrAlreadyExists)
}

func TestCreateRequiresExistingAccount(t *testing.T) {
	f := setup(t)
	tx := transaction.New(404, transaction.TypeDeposit, 5, "", f.ref())
	assert.Error(t, f.ledger.Create(context.Background(), tx))
}

func TestLookupMisses(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.ledger.Get(ctx, 8)
	var nf *domain.TransactionNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "transaction_id", nf.Field)

	_, err = f.ledger.GetByReference(ctx, "TXN000000000000")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "reference_number", nf.Field)
}

func TestListByAccountIncludesIncomingTransfers(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	base := time.Now().Add(-time.Hour)

	older := f.deposit(t, 100, base)
	transfer := transaction.NewTransfer(f.from, f.to, 30, "", f.ref())
	transfer.Date = base.Add(time.Minute)
	require.NoError(t, transfer.MarkCompleted(70))
	f.record(t, transfer)

	sent, err := f.ledger.ListByAccount(ctx, f.from)
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, transfer.ID, sent[0].ID, "newest first")
	assert.Equal(t, older.ID, sent[1].ID)

	received, err := f.ledger.ListByAccount(ctx, f.to)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].ToAccountID)
	assert.Equal(t, f.to, *received[0].ToAccountID)
}

func TestListOrdersByDateThenID(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	at := time.Now().Add(-time.Hour)

	a := f.deposit(t, 1, at)
	b := f.deposit(t, 2, at)
	c := f.deposit(t, 3, at.Add(time.Second))

	all, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})
}

func TestListByStatus(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.deposit(t, 10, time.Now())
	pending := f.record(t, transaction.New(f.from, transaction.TypeWithdrawal, 5, "", f.ref()))

	got, err := f.ledger.ListByStatus(ctx, transaction.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
}

func TestCompletedRowsAreImmutable(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	done := f.deposit(t, 10, time.Now())

	done.Description = "rewritten"
	assert.ErrorIs(t, f.ledger.Update(ctx, done), domain.ErrImmutable)
	assert.ErrorIs(t, f.ledger.Delete(ctx, done.ID), domain.ErrImmutable)

	got, err := f.ledger.Get(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.DescDeposit, got.Description)
}

func TestPendingRowsCanChange(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	pending := f.record(t, transaction.New(f.from, transaction.TypeWithdrawal, 5, "", f.ref()))

	require.NoError(t, pending.MarkFailed())
	require.NoError(t, f.ledger.Update(ctx, pending))
	got, err := f.ledger.Get(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusFailed, got.Status)

	require.NoError(t, f.ledger.Delete(ctx, pending.ID))
	assert.ErrorIs(t, f.ledger.Delete(ctx, pending.ID), domain.ErrNotFound)

	pending.ID = 999
	assert.ErrorIs(t, f.ledger.Update(ctx, pending), domain.ErrNotFound)
}
