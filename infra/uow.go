package infra

import (
	"context"
	"fmt"
	"reflect"

	accountrepo "github.com/amirasaad/waribank/infra/repository/account"
	customerrepo "github.com/amirasaad/waribank/infra/repository/customer"
	loanrepo "github.com/amirasaad/waribank/infra/repository/loan"
	transactionrepo "github.com/amirasaad/waribank/infra/repository/transaction"
	"github.com/amirasaad/waribank/pkg/repository"
	"github.com/amirasaad/waribank/pkg/repository/account"
	"github.com/amirasaad/waribank/pkg/repository/customer"
	"github.com/amirasaad/waribank/pkg/repository/loan"
	"github.com/amirasaad/waribank/pkg/repository/transaction"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories it hands out are bound to the active transaction, or to the
// plain handle outside of Do.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*customer.Repository)(nil)).Elem():    func(db *gorm.DB) any { return customerrepo.New(db) },
			reflect.TypeOf((*account.Repository)(nil)).Elem():     func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*transaction.Repository)(nil)).Elem(): func(db *gorm.DB) any { return transactionrepo.New(db) },
			reflect.TypeOf((*loan.Repository)(nil)).Elem():        func(db *gorm.DB) any { return loanrepo.New(db) },
		},
	}
}

// Do runs fn in a transaction. Calling Do on the UoW passed to fn nests a
// savepoint inside the outer transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.session().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository returns the repository registered for repoType, bound to
// the current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func getTyped[T any](u *UoW) (T, error) {
	var zero T
	repoType := reflect.TypeOf((*T)(nil)).Elem()
	repoAny, err := u.GetRepository(repoType)
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("repository registered for %v has wrong type %T", repoType, repoAny)
	}
	return repo, nil
}

func (u *UoW) CustomerRepository() (customer.Repository, error) {
	return getTyped[customer.Repository](u)
}

func (u *UoW) AccountRepository() (account.Repository, error) {
	return getTyped[account.Repository](u)
}

func (u *UoW) TransactionRepository() (transaction.Repository, error) {
	return getTyped[transaction.Repository](u)
}

func (u *UoW) LoanRepository() (loan.Repository, error) {
	return getTyped[loan.Repository](u)
}

var _ repository.UnitOfWork = (*UoW)(nil)
