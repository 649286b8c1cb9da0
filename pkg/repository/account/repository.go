package account

import (
	"context"
	"time"

	"github.com/amirasaad/waribank/pkg/domain/account"
)

// Repository defines data access for accounts. Lookups that miss return
// *domain.AccountNotFoundError.
type Repository interface {
	// Create inserts the account and assigns its ID.
	Create(ctx context.Context, a *account.Account) error

	Get(ctx context.Context, id uint) (*account.Account, error)
	GetByNumber(ctx context.Context, number string) (*account.Account, error)

	// List returns every account ordered by id.
	List(ctx context.Context) ([]*account.Account, error)
	// ListByCustomer returns the accounts of one customer ordered by id.
	ListByCustomer(ctx context.Context, customerID uint) ([]*account.Account, error)
	ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error)

	// Update rewrites the full row of an existing account.
	Update(ctx context.Context, a *account.Account) error
	UpdateBalance(ctx context.Context, id uint, balance float64, at time.Time) error
	UpdateStatus(ctx context.Context, id uint, status account.Status) error

	Delete(ctx context.Context, id uint) error
}
