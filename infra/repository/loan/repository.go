package loan

import (
	"context"

	infrarepo "github.com/amirasaad/waribank/infra/repository"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/loan"
	repo "github.com/amirasaad/waribank/pkg/repository/loan"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "application_date DESC, loan_id DESC"

type repository struct {
	db *gorm.DB
}

// New creates a loan repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements loan.Repository.
func (r *repository) Create(ctx context.Context, l *loan.Loan) error {
	m := mapDomainToModel(l)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	l.ID = m.ID
	return nil
}

// Get implements loan.Repository.
func (r *repository) Get(ctx context.Context, id uint) (*loan.Loan, error) {
	var m Loan
	if err := r.db.WithContext(ctx).Where("loan_id = ?", id).First(&m).Error; err != nil {
		return nil, infrarepo.MapLookupError(err, &domain.LoanNotFoundError{ID: id})
	}
	return mapModelToDomain(&m), nil
}

// List implements loan.Repository.
func (r *repository) List(ctx context.Context) ([]*loan.Loan, error) {
	return r.find(ctx, nil)
}

// ListByCustomer implements loan.Repository.
func (r *repository) ListByCustomer(ctx context.Context, customerID uint) ([]*loan.Loan, error) {
	return r.find(ctx, "customer_id = ?", customerID)
}

// ListByAccount implements loan.Repository.
func (r *repository) ListByAccount(ctx context.Context, accountID uint) ([]*loan.Loan, error) {
	return r.find(ctx, "account_id = ?", accountID)
}

// ListByStatus implements loan.Repository.
func (r *repository) ListByStatus(ctx context.Context, status loan.Status) ([]*loan.Loan, error) {
	return r.find(ctx, "status = ?", string(status))
}

func (r *repository) find(ctx context.Context, query any, args ...any) ([]*loan.Loan, error) {
	q := r.db.WithContext(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	var ms []Loan
	if err := q.Order(newestFirst).Find(&ms).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(ms), nil
}

// Update implements loan.Repository.
func (r *repository) Update(ctx context.Context, l *loan.Loan) error {
	m := mapDomainToModel(l)
	res := r.db.WithContext(ctx).Model(&Loan{ID: l.ID}).
		Select("*").Omit("loan_id", clause.Associations).Updates(m)
	return infrarepo.CheckAffected(res, &domain.LoanNotFoundError{ID: l.ID})
}

// Delete implements loan.Repository.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("loan_id = ?", id).Delete(&Loan{})
	return infrarepo.CheckAffected(res, &domain.LoanNotFoundError{ID: id})
}
