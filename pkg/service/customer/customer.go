// Package customer provides business logic for registering and maintaining
// bank customers.
package customer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	"github.com/amirasaad/waribank/pkg/domain/events"
	"github.com/amirasaad/waribank/pkg/eventbus"
	"github.com/amirasaad/waribank/pkg/logging"
	"github.com/amirasaad/waribank/pkg/repository"
	"github.com/amirasaad/waribank/pkg/service"
)

// RegisterRequest carries the operator input for a new customer.
type RegisterRequest struct {
	FirstName   string `validate:"required,max=100"`
	LastName    string `validate:"required,max=100"`
	Email       string `validate:"required,mailbox,max=255"`
	PhoneNumber string `validate:"max=50"`
	Address     string `validate:"max=255"`
	NationalID  string `validate:"required,max=50"`
}

// UpdateRequest carries profile changes. Empty fields keep their value.
type UpdateRequest struct {
	FirstName   string `validate:"max=100"`
	LastName    string `validate:"max=100"`
	PhoneNumber string `validate:"max=50"`
	Address     string `validate:"max=255"`
}

// Service provides customer operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Emitter
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork, an event emitter and logger.
func New(uow repository.UnitOfWork, bus eventbus.Emitter, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "customer")}
}

// Register validates req and stores a new ACTIVE customer. A duplicate
// email or national id surfaces as a *domain.StoreError wrapping
// domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*customer.Customer, error) {
	req = RegisterRequest{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Address:     strings.TrimSpace(req.Address),
		NationalID:  strings.TrimSpace(req.NationalID),
	}
	if err := service.Validate(req); err != nil {
		return nil, err
	}
	c, err := customer.New(req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.Address, req.NationalID)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		return nil, service.Fail(s.logger, "register customer", err)
	}

	s.emit(ctx, events.CustomerRegistered{Meta: events.NewMeta(), CustomerID: c.ID, Email: c.Email})
	return c, nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id uint) (*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "get customer", err)
	}
	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, service.Fail(s.logger, "get customer", err)
	}
	return c, nil
}

// GetByEmail returns the customer registered with email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "search customer", err)
	}
	c, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, service.Fail(s.logger, "search customer", err)
	}
	return c, nil
}

// GetByNationalID returns the customer registered with nationalID.
func (s *Service) GetByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "search customer", err)
	}
	c, err := repo.GetByNationalID(ctx, strings.TrimSpace(nationalID))
	if err != nil {
		return nil, service.Fail(s.logger, "search customer", err)
	}
	return c, nil
}

// List returns every customer ordered by id.
func (s *Service) List(ctx context.Context) ([]*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list customers", err)
	}
	cs, err := repo.List(ctx)
	if err != nil {
		return nil, service.Fail(s.logger, "list customers", err)
	}
	return cs, nil
}

// ListByStatus returns the customers in status, ordered by id.
func (s *Service) ListByStatus(ctx context.Context, status customer.Status) ([]*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list customers", err)
	}
	cs, err := repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, service.Fail(s.logger, "list customers", err)
	}
	return cs, nil
}

// Update applies the non-empty fields of req to the customer's profile.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (c *customer.Customer, err error) {
	if err := service.Validate(req); err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if c, err = repo.Get(ctx, id); err != nil {
			return err
		}
		keepOr(&c.FirstName, req.FirstName)
		keepOr(&c.LastName, req.LastName)
		keepOr(&c.PhoneNumber, req.PhoneNumber)
		keepOr(&c.Address, req.Address)
		return repo.Update(ctx, c)
	})
	if err != nil {
		return nil, service.Fail(s.logger, "update customer", err)
	}
	logging.Success(s.logger, "Customer information updated", "customer_id", c.ID)
	return c, nil
}

func keepOr(field *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*field = v
	}
}

// UpdateStatus moves the customer to status.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status customer.Status) (c *customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if c, err = repo.Get(ctx, id); err != nil {
			return err
		}
		switch status {
		case customer.StatusActive:
			c.Activate()
		case customer.StatusSuspended:
			c.Suspend()
		case customer.StatusInactive:
			c.Deactivate()
		default:
			return &domain.InvalidTransactionError{Reason: "unknown customer status " + string(status)}
		}
		return repo.UpdateStatus(ctx, c.ID, c.Status)
	})
	if err != nil {
		return nil, service.Fail(s.logger, "update customer status", err)
	}
	logging.Success(s.logger, "Customer status updated", "customer_id", c.ID, "status", c.Status)
	return c, nil
}

// UpdateCreditScore stores score clamped into [0, 1000].
func (s *Service) UpdateCreditScore(ctx context.Context, id uint, score float64) (c *customer.Customer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if c, err = repo.Get(ctx, id); err != nil {
			return err
		}
		c.UpdateCreditScore(score)
		return repo.UpdateCreditScore(ctx, c.ID, c.CreditScore)
	})
	if err != nil {
		return nil, service.Fail(s.logger, "update credit score", err)
	}
	logging.Success(s.logger, "Credit score updated", "customer_id", c.ID, "credit_score", c.CreditScore)
	return c, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("event not delivered", "event", e.Type(), "error", err)
	}
}
