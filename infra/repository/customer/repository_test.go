package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	customerrepo "github.com/amirasaad/waribank/infra/repository/customer"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	repo "github.com/amirasaad/waribank/pkg/repository/customer"
	"github.com/amirasaad/waribank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) repo.Repository {
	t.Helper()
	return customerrepo.New(testutils.NewSQLiteDB(t))
}

func create(t *testing.T, r repo.Repository, email, nationalID string) *customer.Customer {
	t.Helper()
	c, err := customer.New("Awa", "Diallo", email, "+221 77 000 00 00", "Dakar", nationalID)
	require.NoError(t, err)
	require.NoError(t, r.Create(context.Background(), c))
	return c
}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	c := create(t, r, "awa@example.com", "SN-1")
	require.NotZero(t, c.ID)

	byID, err := r.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Awa Diallo", byID.FullName())
	assert.Equal(t, customer.StatusActive, byID.Status)
	assert.Zero(t, byID.CreditScore)

	byEmail, err := r.GetByEmail(ctx, "awa@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byEmail.ID)

	byNationalID, err := r.GetByNationalID(ctx, "SN-1")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byNationalID.ID)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	r := setup(t)
	create(t, r, "awa@example.com", "SN-1")

	dupEmail, err := customer.New("Other", "Person", "awa@example.com", "", "", "SN-2")
	require.NoError(t, err)
	assert.ErrorIs(t, r.Create(context.Background(), dupEmail), domain.ErrAlreadyExists)

	dupNationalID, err := customer.New("Other", "Person", "other@example.com", "", "", "SN-1")
	require.NoError(t, err)
	assert.ErrorIs(t, r.Create(context.Background(), dupNationalID), domain.ErrAlreadyExists)
}

func TestLookupMisses(t *testing.T) {
	ctx := context.Background()
	r := setup(t)

	_, err := r.Get(ctx, 99)
	var nf *domain.CustomerNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customer_id", nf.Field)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "email", nf.Field)

	_, err = r.GetByNationalID(ctx, "XX")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "national_id", nf.Field)
}

func TestListAndListByStatus(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	first := create(t, r, "a@example.com", "SN-1")
	second := create(t, r, "b@example.com", "SN-2")
	require.NoError(t, r.UpdateStatus(ctx, second.ID, customer.StatusSuspended))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	suspended, err := r.ListByStatus(ctx, customer.StatusSuspended)
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Equal(t, second.ID, suspended[0].ID)

	inactive, err := r.ListByStatus(ctx, customer.StatusInactive)
	require.NoError(t, err)
	assert.Empty(t, inactive)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	c := create(t, r, "awa@example.com", "SN-1")

	c.Address = "Thiès"
	c.PhoneNumber = ""
	require.NoError(t, r.Update(ctx, c))

	got, err := r.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thiès", got.Address)
	assert.Empty(t, got.PhoneNumber)

	missing := *c
	missing.ID = 42
	assert.ErrorIs(t, r.Update(ctx, &missing), domain.ErrNotFound)
}

func TestUpdateCreditScoreClamps(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	c := create(t, r, "awa@example.com", "SN-1")

	require.NoError(t, r.UpdateCreditScore(ctx, c.ID, 1500))
	got, err := r.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, got.CreditScore, 1e-9)

	require.NoError(t, r.UpdateCreditScore(ctx, c.ID, -3))
	got, err = r.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CreditScore)

	assert.ErrorIs(t, r.UpdateCreditScore(ctx, 99, 10), domain.ErrNotFound)
	assert.ErrorIs(t, r.UpdateStatus(ctx, 99, customer.StatusActive), domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	c := create(t, r, "awa@example.com", "SN-1")

	require.NoError(t, r.Delete(ctx, c.ID))
	_, err := r.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestStoreFailuresPassThrough(t *testing.T) {
	db, mock := testutils.NewMockDB(t)
	r := customerrepo.New(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT \* FROM "customers"`).WillReturnError(boom)
	_, err := r.Get(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))
	_, err = r.GetByEmail(context.Background(), "a@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mock.ExpectExec(`UPDATE "customers" SET "status"`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, r.UpdateStatus(context.Background(), 5, customer.StatusInactive), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
