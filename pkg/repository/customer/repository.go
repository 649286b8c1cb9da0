package customer

import (
	"context"

	"github.com/amirasaad/waribank/pkg/domain/customer"
)

// Repository defines data access for customers. Lookups that miss return
// *domain.CustomerNotFoundError.
type Repository interface {
	// Create inserts the customer and assigns its ID.
	Create(ctx context.Context, c *customer.Customer) error

	Get(ctx context.Context, id uint) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
	GetByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error)

	// List returns every customer ordered by id.
	List(ctx context.Context) ([]*customer.Customer, error)
	ListByStatus(ctx context.Context, status customer.Status) ([]*customer.Customer, error)

	// Update rewrites the full row of an existing customer.
	Update(ctx context.Context, c *customer.Customer) error
	UpdateStatus(ctx context.Context, id uint, status customer.Status) error
	// UpdateCreditScore stores the score clamped into [0, 1000].
	UpdateCreditScore(ctx context.Context, id uint, score float64) error

	Delete(ctx context.Context, id uint) error
}
