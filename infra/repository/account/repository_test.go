package account_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	accountrepo "github.com/amirasaad/waribank/infra/repository/account"
	customerrepo "github.com/amirasaad/waribank/infra/repository/customer"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/account"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	repo "github.com/amirasaad/waribank/pkg/repository/account"
	"github.com/amirasaad/waribank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	accounts repo.Repository
	seq      int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutils.NewSQLiteDB(t)
	return &fixture{db: db, accounts: accountrepo.New(db)}
}

func (f *fixture) customer(t *testing.T) uint {
	t.Helper()
	f.seq++
	c, err := customer.New("Awa", "Diallo", fmt.Sprintf("c%d@example.com", f.seq), "", "", fmt.Sprintf("SN-%d", f.seq))
	require.NoError(t, err)
	require.NoError(t, customerrepo.New(f.db).Create(context.Background(), c))
	return c.ID
}

func (f *fixture) open(t *testing.T, customerID uint, typ account.Type, balance float64) *account.Account {
	t.Helper()
	f.seq++
	a, err := account.New().
		WithCustomerID(customerID).
		WithNumber(fmt.Sprintf("WB%010d", f.seq)).
		WithType(typ).
		WithBalance(balance).
		Build()
	require.NoError(t, err)
	require.NoError(t, f.accounts.Create(context.Background(), a))
	return a
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.open(t, f.customer(t), account.TypeSavings, 250)
	require.NotZero(t, a.ID)

	got, err := f.accounts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Number, got.Number)
	assert.Equal(t, account.TypeSavings, got.Type)
	assert.Equal(t, account.StatusActive, got.Status)
	assert.InDelta(t, 250.0, got.Balance, 1e-9)
	assert.InDelta(t, 2.5, got.InterestRate, 1e-9)
	assert.InDelta(t, 100.0, got.MinimumBalance, 1e-9)
	assert.InDelta(t, 5000.0, got.DailyWithdrawalLimit, 1e-9)

	byNumber, err := f.accounts.GetByNumber(ctx, a.Number)
	require.NoError(t, err)
	assert.Equal(t, a.ID, byNumber.ID)
}

func TestFixedDepositKeepsZeroLimits(t *testing.T) {
	f := setup(t)
	a := f.open(t, f.customer(t), account.TypeFixedDeposit, 0)

	got, err := f.accounts.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Balance)
	assert.Zero(t, got.DailyWithdrawalLimit)
	assert.Zero(t, got.MonthlyWithdrawalLimit)
	assert.InDelta(t, 1000.0, got.MinimumBalance, 1e-9)
}

func TestCreateRequiresExistingCustomer(t *testing.T) {
	f := setup(t)
	a, err := account.New().WithCustomerID(77).WithNumber("WB0000000077").WithType(account.TypeChecking).Build()
	require.NoError(t, err)
	assert.Error(t, f.accounts.Create(context.Background(), a))
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	f := setup(t)
	cid := f.customer(t)
	a := f.open(t, cid, account.TypeChecking, 0)

	dup, err := account.New().WithCustomerID(cid).WithNumber(a.Number).WithType(account.TypeChecking).Build()
	require.NoError(t, err)
	assert.ErrorIs(t, f.accounts.Create(context.Background(), dup), domain.ErrAlreadyExists)
}

func TestLookupMisses(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.accounts.Get(ctx, 3)
	var nf *domain.AccountNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "account_id", nf.Field)

	_, err = f.accounts.GetByNumber(ctx, "WB0000000000")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "account_number", nf.Field)
	assert.Equal(t, "WB0000000000", nf.Value)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	awa, moussa := f.customer(t), f.customer(t)
	a1 := f.open(t, awa, account.TypeSavings, 0)
	a2 := f.open(t, moussa, account.TypeChecking, 0)
	a3 := f.open(t, awa, account.TypeChecking, 0)
	require.NoError(t, f.accounts.UpdateStatus(ctx, a3.ID, account.StatusFrozen))

	all, err := f.accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{a1.ID, a2.ID, a3.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	owned, err := f.accounts.ListByCustomer(ctx, awa)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, a1.ID, owned[0].ID)
	assert.Equal(t, a3.ID, owned[1].ID)

	frozen, err := f.accounts.ListByStatus(ctx, account.StatusFrozen)
	require.NoError(t, err)
	require.Len(t, frozen, 1)
	assert.Equal(t, a3.ID, frozen[0].ID)

	none, err := f.accounts.ListByCustomer(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateBalance(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.open(t, f.customer(t), account.TypeSavings, 100)
	at := time.Now().Add(time.Minute).UTC().Truncate(time.Second)

	require.NoError(t, f.accounts.UpdateBalance(ctx, a.ID, 175.5, at))
	got, err := f.accounts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 175.5, got.Balance, 1e-9)
	assert.True(t, got.LastTransactionDate.Equal(at), "last transaction date %v", got.LastTransactionDate)

	assert.ErrorIs(t, f.accounts.UpdateBalance(ctx, 999, 1, at), domain.ErrNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := f.open(t, f.customer(t), account.TypeSavings, 100)

	a.SetType(account.TypeChecking)
	require.NoError(t, a.Freeze())
	require.NoError(t, f.accounts.Update(ctx, a))

	got, err := f.accounts.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, account.TypeChecking, got.Type)
	assert.Equal(t, account.StatusFrozen, got.Status)
	assert.InDelta(t, 0.5, got.InterestRate, 1e-9)
	assert.Zero(t, got.MinimumBalance)

	require.NoError(t, f.accounts.Delete(ctx, a.ID))
	assert.ErrorIs(t, f.accounts.Delete(ctx, a.ID), domain.ErrNotFound)
	assert.ErrorIs(t, f.accounts.Update(ctx, a), domain.ErrNotFound)
	assert.ErrorIs(t, f.accounts.UpdateStatus(ctx, a.ID, account.StatusClosed), domain.ErrNotFound)
}

func TestListQueriesAreOrdered(t *testing.T) {
	db, mock := testutils.NewMockDB(t)
	r := accountrepo.New(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE customer_id = \$1 ORDER BY account_id`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "customer_id", "account_number", "account_type", "balance", "status"}).
			AddRow(1, 7, "WB0000000001", "SAVINGS", 10.0, "ACTIVE"))

	got, err := r.ListByCustomer(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "WB0000000001", got[0].Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}
