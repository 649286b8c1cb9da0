package transaction

import (
	"time"

	accountmodel "github.com/amirasaad/waribank/infra/repository/account"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
)

// Transaction represents a ledger row in the database.
type Transaction struct {
	ID              uint                  `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	AccountID       uint                  `gorm:"not null;index"`
	Account         *accountmodel.Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:RESTRICT"`
	Type            string                `gorm:"column:transaction_type;size:30;not null"`
	Amount          float64               `gorm:"not null"`
	Description     string                `gorm:"size:255"`
	Date            time.Time             `gorm:"column:transaction_date;not null;default:CURRENT_TIMESTAMP;index"`
	Status          string                `gorm:"size:20;not null;default:'PENDING';index"`
	ReferenceNumber string                `gorm:"size:30;not null;uniqueIndex"`
	ToAccountID     *uint                 `gorm:"index"`
	ToAccount       *accountmodel.Account `gorm:"foreignKey:ToAccountID;references:ID;constraint:OnDelete:RESTRICT"`
	BalanceAfter    float64               `gorm:"column:balance_after_transaction"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

func mapDomainToModel(t *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		Date:            t.Date,
		Status:          string(t.Status),
		ReferenceNumber: t.ReferenceNumber,
		ToAccountID:     t.ToAccountID,
		BalanceAfter:    t.BalanceAfter,
	}
}

func mapModelToDomain(m *Transaction) *transaction.Transaction {
	return &transaction.Transaction{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Type:            transaction.Type(m.Type),
		Amount:          m.Amount,
		Description:     m.Description,
		Date:            m.Date,
		Status:          transaction.Status(m.Status),
		ReferenceNumber: m.ReferenceNumber,
		ToAccountID:     m.ToAccountID,
		BalanceAfter:    m.BalanceAfter,
	}
}

func mapModelsToDomain(ms []Transaction) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToDomain(&ms[i]))
	}
	return out
}
