package customer

import (
	"context"

	infrarepo "github.com/amirasaad/waribank/infra/repository"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	repo "github.com/amirasaad/waribank/pkg/repository/customer"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a customer repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func notFound(field string, value any) error {
	return &domain.CustomerNotFoundError{Field: field, Value: value}
}

// Create implements customer.Repository.
func (r *repository) Create(ctx context.Context, c *customer.Customer) error {
	m := mapDomainToModel(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	c.ID = m.ID
	return nil
}

// Get implements customer.Repository.
func (r *repository) Get(ctx context.Context, id uint) (*customer.Customer, error) {
	return r.first(ctx, notFound("customer_id", id), "customer_id = ?", id)
}

// GetByEmail implements customer.Repository.
func (r *repository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.first(ctx, notFound("email", email), "email = ?", email)
}

// GetByNationalID implements customer.Repository.
func (r *repository) GetByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error) {
	return r.first(ctx, notFound("national_id", nationalID), "national_id = ?", nationalID)
}

func (r *repository) first(ctx context.Context, miss error, query string, args ...any) (*customer.Customer, error) {
	var m Customer
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, infrarepo.MapLookupError(err, miss)
	}
	return mapModelToDomain(&m), nil
}

// List implements customer.Repository.
func (r *repository) List(ctx context.Context) ([]*customer.Customer, error) {
	var ms []Customer
	if err := r.db.WithContext(ctx).Order("customer_id").Find(&ms).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(ms), nil
}

// ListByStatus implements customer.Repository.
func (r *repository) ListByStatus(ctx context.Context, status customer.Status) ([]*customer.Customer, error) {
	var ms []Customer
	if err := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("customer_id").Find(&ms).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(ms), nil
}

// Update implements customer.Repository.
func (r *repository) Update(ctx context.Context, c *customer.Customer) error {
	m := mapDomainToModel(c)
	res := r.db.WithContext(ctx).Model(&Customer{ID: c.ID}).Select("*").Omit("customer_id").Updates(m)
	return infrarepo.CheckAffected(res, notFound("customer_id", c.ID))
}

// UpdateStatus implements customer.Repository.
func (r *repository) UpdateStatus(ctx context.Context, id uint, status customer.Status) error {
	res := r.db.WithContext(ctx).Model(&Customer{}).Where("customer_id = ?", id).Update("status", string(status))
	return infrarepo.CheckAffected(res, notFound("customer_id", id))
}

// UpdateCreditScore implements customer.Repository.
func (r *repository) UpdateCreditScore(ctx context.Context, id uint, score float64) error {
	res := r.db.WithContext(ctx).Model(&Customer{}).Where("customer_id = ?", id).
		Update("credit_score", customer.ClampCreditScore(score))
	return infrarepo.CheckAffected(res, notFound("customer_id", id))
}

// Delete implements customer.Repository.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("customer_id = ?", id).Delete(&Customer{})
	return infrarepo.CheckAffected(res, notFound("customer_id", id))
}
