package transaction

import (
	"context"

	"github.com/amirasaad/waribank/pkg/domain/transaction"
)

// Repository defines data access for the ledger. Lookups that miss return
// *domain.TransactionNotFoundError. COMPLETED entries are immutable: Update
// and Delete refuse them with domain.ErrImmutable.
type Repository interface {
	// Create inserts the entry and assigns its ID.
	Create(ctx context.Context, tx *transaction.Transaction) error

	Get(ctx context.Context, id uint) (*transaction.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error)

	// List returns every entry, newest first.
	List(ctx context.Context) ([]*transaction.Transaction, error)
	// ListByAccount returns entries where the account is origin or target, newest first.
	ListByAccount(ctx context.Context, accountID uint) ([]*transaction.Transaction, error)
	ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.Transaction, error)

	Update(ctx context.Context, tx *transaction.Transaction) error
	Delete(ctx context.Context, id uint) error
}
