package repository

import (
	"context"
	"reflect"

	"github.com/amirasaad/waribank/pkg/repository/account"
	"github.com/amirasaad/waribank/pkg/repository/customer"
	"github.com/amirasaad/waribank/pkg/repository/loan"
	"github.com/amirasaad/waribank/pkg/repository/transaction"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories obtained from the UnitOfWork handed to Do share its database
// transaction, so every write inside fn commits or rolls back together.
// Example usage:
//
//	err := uow.Do(ctx, func(uow repository.UnitOfWork) error {
//		repo, err := uow.AccountRepository()
//		if err != nil {
//			return err
//		}
//		...
//	})
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current session.
	//   repoAny, err := uow.GetRepository(reflect.TypeOf((*account.Repository)(nil)).Elem())
	//   repo := repoAny.(account.Repository)
	GetRepository(repoType reflect.Type) (any, error)

	CustomerRepository() (customer.Repository, error)
	AccountRepository() (account.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	LoanRepository() (loan.Repository, error)
}
