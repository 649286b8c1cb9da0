package loan

import (
	"time"

	accountmodel "github.com/amirasaad/waribank/infra/repository/account"
	customermodel "github.com/amirasaad/waribank/infra/repository/customer"
	"github.com/amirasaad/waribank/pkg/domain/loan"
)

// Loan represents a loan record in the database.
type Loan struct {
	ID               uint                    `gorm:"column:loan_id;primaryKey;autoIncrement"`
	CustomerID       uint                    `gorm:"not null;index"`
	Customer         *customermodel.Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:RESTRICT"`
	AccountID        uint                    `gorm:"not null;index"`
	Account          *accountmodel.Account   `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:RESTRICT"`
	Amount           float64                 `gorm:"column:loan_amount;not null"`
	InterestRate     float64                 `gorm:"not null"`
	TermInMonths     int                     `gorm:"not null"`
	Type             string                  `gorm:"column:loan_type;size:30;not null"`
	Purpose          string                  `gorm:"size:255"`
	ApplicationDate  time.Time               `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	ApprovalDate     *time.Time
	DisbursementDate *time.Time
	DueDate          *time.Time
	Status           string  `gorm:"size:20;not null;default:'PENDING';index"`
	MonthlyPayment   float64 `gorm:"not null;default:0"`
	RemainingBalance float64 `gorm:"not null;default:0"`
	ApprovedBy       *string `gorm:"size:100"`
	RejectionReason  *string `gorm:"size:255"`
}

// TableName specifies the table name for the Loan model.
func (Loan) TableName() string {
	return "loans"
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapDomainToModel(l *loan.Loan) *Loan {
	return &Loan{
		ID:               l.ID,
		CustomerID:       l.CustomerID,
		AccountID:        l.AccountID,
		Amount:           l.Amount,
		InterestRate:     l.InterestRate,
		TermInMonths:     l.TermInMonths,
		Type:             string(l.Type),
		Purpose:          l.Purpose,
		ApplicationDate:  l.ApplicationDate,
		ApprovalDate:     l.ApprovalDate,
		DisbursementDate: l.DisbursementDate,
		DueDate:          l.DueDate,
		Status:           string(l.Status),
		MonthlyPayment:   l.MonthlyPayment,
		RemainingBalance: l.RemainingBalance,
		ApprovedBy:       nullable(l.ApprovedBy),
		RejectionReason:  nullable(l.RejectionReason),
	}
}

func mapModelToDomain(m *Loan) *loan.Loan {
	return &loan.Loan{
		ID:               m.ID,
		CustomerID:       m.CustomerID,
		AccountID:        m.AccountID,
		Amount:           m.Amount,
		InterestRate:     m.InterestRate,
		TermInMonths:     m.TermInMonths,
		Type:             loan.Type(m.Type),
		Purpose:          m.Purpose,
		ApplicationDate:  m.ApplicationDate,
		ApprovalDate:     m.ApprovalDate,
		DisbursementDate: m.DisbursementDate,
		DueDate:          m.DueDate,
		Status:           loan.Status(m.Status),
		MonthlyPayment:   m.MonthlyPayment,
		RemainingBalance: m.RemainingBalance,
		ApprovedBy:       deref(m.ApprovedBy),
		RejectionReason:  deref(m.RejectionReason),
	}
}

func mapModelsToDomain(ms []Loan) []*loan.Loan {
	out := make([]*loan.Loan, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToDomain(&ms[i]))
	}
	return out
}
