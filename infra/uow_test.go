package infra_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/amirasaad/waribank/infra"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	"github.com/amirasaad/waribank/pkg/repository"
	customerrepo "github.com/amirasaad/waribank/pkg/repository/customer"
	"github.com/amirasaad/waribank/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T, email, nationalID string) *customer.Customer {
	t.Helper()
	c, err := customer.New("Awa", "Diallo", email, "+221 77 000 00 00", "Dakar", nationalID)
	require.NoError(t, err)
	return c
}

func TestUoW_Repositories(t *testing.T) {
	db, _ := testutils.NewMockDB(t)
	uow := infra.NewUoW(db)

	customers, err := uow.CustomerRepository()
	require.NoError(t, err)
	assert.NotNil(t, customers)

	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	assert.NotNil(t, accounts)

	transactions, err := uow.TransactionRepository()
	require.NoError(t, err)
	assert.NotNil(t, transactions)

	loans, err := uow.LoanRepository()
	require.NoError(t, err)
	assert.NotNil(t, loans)

	repo, err := uow.GetRepository(reflect.TypeOf((*customerrepo.Repository)(nil)).Elem())
	require.NoError(t, err)
	assert.Implements(t, (*customerrepo.Repository)(nil), repo)

	_, err = uow.GetRepository(reflect.TypeOf(""))
	assert.ErrorContains(t, err, "unsupported repository type")
}

func TestUoW_DoCommits(t *testing.T) {
	ctx := context.Background()
	uow := infra.NewUoW(testutils.NewSQLiteDB(t))

	c := newCustomer(t, "awa@example.com", "SN-1")
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, c)
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	repo, err := uow.CustomerRepository()
	require.NoError(t, err)
	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", got.Email)
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	uow := infra.NewUoW(testutils.NewSQLiteDB(t))
	boom := errors.New("boom")

	c := newCustomer(t, "awa@example.com", "SN-1")
	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	repo, err := uow.CustomerRepository()
	require.NoError(t, err)
	_, err = repo.GetByEmail(ctx, "awa@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUoW_NestedDoRollsBackToSavepoint(t *testing.T) {
	ctx := context.Background()
	uow := infra.NewUoW(testutils.NewSQLiteDB(t))
	boom := errors.New("boom")

	outer := newCustomer(t, "outer@example.com", "SN-1")
	inner := newCustomer(t, "inner@example.com", "SN-2")
	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		repo, err := tx.CustomerRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, outer); err != nil {
			return err
		}
		nestedErr := tx.Do(ctx, func(nested repository.UnitOfWork) error {
			repo, err := nested.CustomerRepository()
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, inner); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, nestedErr, boom)
		return nil
	})
	require.NoError(t, err)

	repo, err := uow.CustomerRepository()
	require.NoError(t, err)
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "outer@example.com", all[0].Email)
}
