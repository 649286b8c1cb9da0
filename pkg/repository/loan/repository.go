package loan

import (
	"context"

	"github.com/amirasaad/waribank/pkg/domain/loan"
)

// Repository defines data access for loans. Lookups that miss return
// *domain.LoanNotFoundError. Listings are ordered by application date,
// newest first.
type Repository interface {
	// Create inserts the loan and assigns its ID.
	Create(ctx context.Context, l *loan.Loan) error

	Get(ctx context.Context, id uint) (*loan.Loan, error)
	List(ctx context.Context) ([]*loan.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*loan.Loan, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*loan.Loan, error)
	ListByStatus(ctx context.Context, status loan.Status) ([]*loan.Loan, error)

	// Update rewrites the full row of an existing loan.
	Update(ctx context.Context, l *loan.Loan) error
	Delete(ctx context.Context, id uint) error
}
