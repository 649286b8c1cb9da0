package account

import (
	"time"

	customermodel "github.com/amirasaad/waribank/infra/repository/customer"
	"github.com/amirasaad/waribank/pkg/domain/account"
)

// Account represents an account record in the database.
//
// The withdrawal limits carry no column default: FIXED_DEPOSIT stores a
// legitimate zero that gorm would otherwise replace.
type Account struct {
	ID                     uint                    `gorm:"column:account_id;primaryKey;autoIncrement"`
	CustomerID             uint                    `gorm:"not null;index"`
	Customer               *customermodel.Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:RESTRICT"`
	Number                 string                  `gorm:"column:account_number;size:20;not null;uniqueIndex"`
	Type                   string                  `gorm:"column:account_type;size:30;not null"`
	Balance                float64                 `gorm:"not null;default:0"`
	InterestRate           float64                 `gorm:"not null;default:0"`
	OpeningDate            time.Time               `gorm:"not null;default:CURRENT_TIMESTAMP"`
	LastTransactionDate    time.Time               `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Status                 string                  `gorm:"size:20;not null;default:'ACTIVE';index"`
	MinimumBalance         float64                 `gorm:"not null"`
	DailyWithdrawalLimit   float64                 `gorm:"not null"`
	MonthlyWithdrawalLimit float64                 `gorm:"not null"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

func mapDomainToModel(a *account.Account) *Account {
	return &Account{
		ID:                     a.ID,
		CustomerID:             a.CustomerID,
		Number:                 a.Number,
		Type:                   string(a.Type),
		Balance:                a.Balance,
		InterestRate:           a.InterestRate,
		OpeningDate:            a.OpeningDate,
		LastTransactionDate:    a.LastTransactionDate,
		Status:                 string(a.Status),
		MinimumBalance:         a.MinimumBalance,
		DailyWithdrawalLimit:   a.DailyWithdrawalLimit,
		MonthlyWithdrawalLimit: a.MonthlyWithdrawalLimit,
	}
}

func mapModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:                     m.ID,
		CustomerID:             m.CustomerID,
		Number:                 m.Number,
		Type:                   account.Type(m.Type),
		Balance:                m.Balance,
		InterestRate:           m.InterestRate,
		MinimumBalance:         m.MinimumBalance,
		DailyWithdrawalLimit:   m.DailyWithdrawalLimit,
		MonthlyWithdrawalLimit: m.MonthlyWithdrawalLimit,
		OpeningDate:            m.OpeningDate,
		LastTransactionDate:    m.LastTransactionDate,
		Status:                 account.Status(m.Status),
	}
}

func mapModelsToDomain(ms []Account) []*account.Account {
	out := make([]*account.Account, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToDomain(&ms[i]))
	}
	return out
}
