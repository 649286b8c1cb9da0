package transaction

import (
	"context"
	"errors"
	"fmt"

	infrarepo "github.com/amirasaad/waribank/infra/repository"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
	repo "github.com/amirasaad/waribank/pkg/repository/transaction"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "transaction_date DESC, transaction_id DESC"

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func notFound(field string, value any) error {
	return &domain.TransactionNotFoundError{Field: field, Value: value}
}

// Create implements transaction.Repository.
func (r *repository) Create(ctx context.Context, t *transaction.Transaction) error {
	m := mapDomainToModel(t)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	t.ID = m.ID
	return nil
}

// Get implements transaction.Repository.
func (r *repository) Get(ctx context.Context, id uint) (*transaction.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", id).First(&m).Error; err != nil {
		return nil, infrarepo.MapLookupError(err, notFound("transaction_id", id))
	}
	return mapModelToDomain(&m), nil
}

// GetByReference implements transaction.Repository.
func (r *repository) GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).Where("reference_number = ?", reference).First(&m).Error; err != nil {
		return nil, infrarepo.MapLookupError(err, notFound("reference_number", reference))
	}
	return mapModelToDomain(&m), nil
}

// List implements transaction.Repository.
func (r *repository) List(ctx context.Context) ([]*transaction.Transaction, error) {
	return r.find(ctx, nil)
}

// ListByAccount implements transaction.Repository.
func (r *repository) ListByAccount(ctx context.Context, accountID uint) ([]*transaction.Transaction, error) {
	return r.find(ctx, "account_id = ? OR to_account_id = ?", accountID, accountID)
}

// ListByStatus implements transaction.Repository.
func (r *repository) ListByStatus(ctx context.Context, status transaction.Status) ([]*transaction.Transaction, error) {
	return r.find(ctx, "status = ?", string(status))
}

func (r *repository) find(ctx context.Context, query any, args ...any) ([]*transaction.Transaction, error) {
	q := r.db.WithContext(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	var ms []Transaction
	if err := q.Order(newestFirst).Find(&ms).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelsToDomain(ms), nil
}

// Update implements transaction.Repository. Rows already COMPLETED are
// never rewritten.
func (r *repository) Update(ctx context.Context, t *transaction.Transaction) error {
	m := mapDomainToModel(t)
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("transaction_id = ? AND status <> ?", t.ID, string(transaction.StatusCompleted)).
		Select("*").Omit("transaction_id", clause.Associations).Updates(m)
	if err := res.Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	if res.RowsAffected == 0 {
		return r.explainMiss(ctx, t.ID)
	}
	return nil
}

// Delete implements transaction.Repository. COMPLETED rows are kept.
func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Where("transaction_id = ? AND status <> ?", id, string(transaction.StatusCompleted)).
		Delete(&Transaction{})
	if err := res.Error; err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	if res.RowsAffected == 0 {
		return r.explainMiss(ctx, id)
	}
	return nil
}

// explainMiss tells a missing row apart from a COMPLETED one.
func (r *repository) explainMiss(ctx context.Context, id uint) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsCompleted() {
		return fmt.Errorf("transaction %s: %w", existing.ReferenceNumber, domain.ErrImmutable)
	}
	return errors.New("transaction row changed concurrently")
}
