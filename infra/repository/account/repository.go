package account

import (
	"context"
	"time"

	infrarepo "github.com/amirasaad/waribank/infra/repository"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/account"
	repo "github.com/amirasaad/waribank/pkg/repository/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func notFound(field string, value any) error {
	return &domain.AccountNotFoundError{Field: field, Value: value}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, a *account.Account) error {
	m := mapDomainToModel(a)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	a.ID = m.ID
	return nil
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id uint) (*account.Account, error) {
	return r.first(ctx, notFound("account_id", id), "account_id = ?", id)
}

// GetByNumber implements account.Repository.
func (r *repository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	return r.first(ctx, notFound("account_number", number), "account_number = ?", number)
}

func (r *repository) first(ctx context.Context, miss error, query string, args ...any) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, infrarepo.MapLookupError(err, miss)
	}
	return mapModelToDomain(&m), nil
}

// List implements account.Repository.
func (r *repository) List(ctx context.Context) ([]*account.Account, error) {
	return r.find(ctx, nil)
}

// ListByCustomer implements account.Repository.
func (r *repository) ListByCustomer(ctx context.Context, customerID uint) ([]*account.Account, error) {
	return r.find(ctx, "customer_id = ?", customerID)
}

// ListByStatus implements account.Repository.
func (r *repository) ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error) {
	return r.find(ctx, "status = ?", string(status))
}

func (r *repository) find(ctx context.Context, query any, args ...any) ([]*account.Account, error) {
	q := r.db.WithContext(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	var ms []Account
	if err := q.Order("account_id").Find(&ms).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(ms), nil
}

// Update implements account.Repository.
func (r *repository) Update(ctx context.Context, a *account.Account) error {
	m := mapDomainToModel(a)
	res := r.db.WithContext(ctx).Model(&Account{ID: a.ID}).
		Select("*").Omit("account_id", clause.Associations).Updates(m)
	return infrarepo.CheckAffected(res, notFound("account_id", a.ID))
}

// UpdateBalance implements account.Repository.
func (r *repository) UpdateBalance(ctx context.Context, id uint, balance float64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("account_id = ?", id).
		Updates(map[string]any{"balance": balance, "last_transaction_date": at})
	return infrarepo.CheckAffected(res, notFound("account_id", id))
}

// UpdateStatus implements account.Repository.
func (r *repository) UpdateStatus(ctx context.Context, id uint, status account.Status) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("account_id = ?", id).Update("status", string(status))
	return infrarepo.CheckAffected(res, notFound("account_id", id))
}

// Delete implements account.Repository.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("account_id = ?", id).Delete(&Account{})
	return infrarepo.CheckAffected(res, notFound("account_id", id))
}
