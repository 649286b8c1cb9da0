package customer

import (
	"time"

	"github.com/amirasaad/waribank/pkg/domain/customer"
)

// Customer represents a customer record in the database.
type Customer struct {
	ID               uint      `gorm:"column:customer_id;primaryKey;autoIncrement"`
	FirstName        string    `gorm:"size:100;not null"`
	LastName         string    `gorm:"size:100;not null"`
	Email            string    `gorm:"size:255;not null;uniqueIndex"`
	PhoneNumber      string    `gorm:"size:50"`
	Address          string    `gorm:"size:255"`
	NationalID       string    `gorm:"size:50;not null;uniqueIndex"`
	RegistrationDate time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Status           string    `gorm:"size:20;not null;default:'ACTIVE'"`
	CreditScore      float64   `gorm:"not null;default:0"`
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string {
	return "customers"
}

func mapDomainToModel(c *customer.Customer) *Customer {
	return &Customer{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		Address:          c.Address,
		NationalID:       c.NationalID,
		RegistrationDate: c.RegistrationDate,
		Status:           string(c.Status),
		CreditScore:      customer.ClampCreditScore(c.CreditScore),
	}
}

func mapModelToDomain(m *Customer) *customer.Customer {
	return &customer.Customer{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		PhoneNumber:      m.PhoneNumber,
		Address:          m.Address,
		NationalID:       m.NationalID,
		RegistrationDate: m.RegistrationDate,
		Status:           customer.Status(m.Status),
		CreditScore:      m.CreditScore,
	}
}

func mapModelsToDomain(ms []Customer) []*customer.Customer {
	out := make([]*customer.Customer, 0, len(ms))
	for i := range ms {
		out = append(out, mapModelToDomain(&ms[i]))
	}
	return out
}
