// Package account provides business logic for opening accounts and moving
// them through their ACTIVE, FROZEN and CLOSED states.
package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/account"
	"github.com/amirasaad/waribank/pkg/domain/events"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
	"github.com/amirasaad/waribank/pkg/eventbus"
	"github.com/amirasaad/waribank/pkg/repository"
	"github.com/amirasaad/waribank/pkg/service"
	"github.com/amirasaad/waribank/pkg/utils"
)

// Poster records a single-account ledger entry inside a caller's unit of
// work. It is implemented by the transaction service.
type Poster interface {
	Post(ctx context.Context, uow repository.UnitOfWork, accountID uint, t transaction.Type, amount float64, description string) (*transaction.Transaction, error)
	Completed(ctx context.Context, tx *transaction.Transaction)
}

// OpenRequest carries the operator input for a new account. Types missing
// from the policy table are accepted and priced with the fallback row.
type OpenRequest struct {
	CustomerID     uint         `validate:"required"`
	Type           account.Type `validate:"required,max=20"`
	InitialBalance float64
}

// Service provides account operations.
type Service struct {
	uow    repository.UnitOfWork
	ledger Poster
	bus    eventbus.Emitter
	logger *slog.Logger
}

// New creates a new Service. ledger posts interest credits.
func New(uow repository.UnitOfWork, ledger Poster, bus eventbus.Emitter, logger *slog.Logger) *Service {
	return &Service{uow: uow, ledger: ledger, bus: bus, logger: logger.With("service", "account")}
}

// Open creates an ACTIVE account for an existing customer under a fresh
// account number.
func (s *Service) Open(ctx context.Context, req OpenRequest) (a *account.Account, err error) {
	req.Type = account.Type(strings.ToUpper(strings.TrimSpace(string(req.Type))))
	if err := service.Validate(req); err != nil {
		return nil, err
	}
	switch {
	case !domain.IsFinite(req.InitialBalance):
		return nil, domain.NewInvalidTransaction("account opening", req.InitialBalance, "initial balance must be a finite number")
	case req.InitialBalance < 0:
		return nil, domain.NewInvalidTransaction("account opening", req.InitialBalance, "initial balance cannot be negative")
	}

	err = service.RetryOnCollision(func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			customers, err := uow.CustomerRepository()
			if err != nil {
				return err
			}
			if _, err := customers.Get(ctx, req.CustomerID); err != nil {
				return err
			}
			a, err = account.New().
				WithCustomerID(req.CustomerID).
				WithNumber(utils.NewAccountNumber()).
				WithType(req.Type).
				WithBalance(req.InitialBalance).
				Build()
			if err != nil {
				return err
			}
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			return accounts.Create(ctx, a)
		})
	})
	if err != nil {
		return nil, service.Fail(s.logger, "open account", err)
	}

	s.emit(ctx, events.AccountOpened{
		Meta:           events.NewMeta(),
		AccountID:      a.ID,
		CustomerID:     a.CustomerID,
		AccountNumber:  a.Number,
		AccountType:    string(a.Type),
		InitialBalance: a.Balance,
	})
	return a, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id uint) (*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "get account", err)
	}
	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, service.Fail(s.logger, "get account", err)
	}
	return a, nil
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "get account", err)
	}
	a, err := repo.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, service.Fail(s.logger, "get account", err)
	}
	return a, nil
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list accounts", err)
	}
	as, err := repo.List(ctx)
	if err != nil {
		return nil, service.Fail(s.logger, "list accounts", err)
	}
	return as, nil
}

// ListByCustomer returns the accounts of an existing customer ordered by id.
func (s *Service) ListByCustomer(ctx context.Context, customerID uint) ([]*account.Account, error) {
	customers, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list customer accounts", err)
	}
	if _, err := customers.Get(ctx, customerID); err != nil {
		return nil, service.Fail(s.logger, "list customer accounts", err)
	}
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list customer accounts", err)
	}
	as, err := repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, service.Fail(s.logger, "list customer accounts", err)
	}
	return as, nil
}

// ListByStatus returns the accounts currently in status.
func (s *Service) ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list accounts", err)
	}
	as, err := repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, service.Fail(s.logger, "list accounts", err)
	}
	return as, nil
}

// Freeze moves an ACTIVE account to FROZEN.
func (s *Service) Freeze(ctx context.Context, number string) (*account.Account, error) {
	return s.UpdateStatus(ctx, number, account.StatusFrozen)
}

// Unfreeze moves a FROZEN account back to ACTIVE.
func (s *Service) Unfreeze(ctx context.Context, number string) (*account.Account, error) {
	return s.UpdateStatus(ctx, number, account.StatusActive)
}

// Close moves an ACTIVE or FROZEN account to CLOSED. A remaining balance
// stays on the closed account; the caller confirms with the operator.
func (s *Service) Close(ctx context.Context, number string) (*account.Account, error) {
	return s.UpdateStatus(ctx, number, account.StatusClosed)
}

// UpdateStatus applies the transition leading to status.
func (s *Service) UpdateStatus(ctx context.Context, number string, status account.Status) (a *account.Account, err error) {
	var from account.Status
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if a, err = repo.GetByNumber(ctx, strings.TrimSpace(number)); err != nil {
			return err
		}
		from = a.Status
		if err := a.TransitionTo(status); err != nil {
			return err
		}
		return repo.UpdateStatus(ctx, a.ID, a.Status)
	})
	if err != nil {
		return nil, service.Fail(s.logger, "update account status", err)
	}

	s.emit(ctx, events.AccountStatusChanged{
		Meta:          events.NewMeta(),
		AccountID:     a.ID,
		AccountNumber: a.Number,
		From:          string(from),
		To:            string(a.Status),
	})
	return a, nil
}

// PostInterest credits one period of interest (balance × rate / 100) to an
// ACTIVE account as a DEPOSIT entry.
func (s *Service) PostInterest(ctx context.Context, number string) (tx *transaction.Transaction, err error) {
	err = service.RetryOnCollision(func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			a, err := repo.GetByNumber(ctx, strings.TrimSpace(number))
			if err != nil {
				return err
			}
			interest := a.Interest()
			if interest <= 0 {
				return domain.NewInvalidTransaction("interest posting", interest, "no interest due on account "+a.Number)
			}
			tx, err = s.ledger.Post(ctx, uow, a.ID, transaction.TypeDeposit, interest, transaction.DescInterest)
			return err
		})
	})
	if err != nil {
		return nil, service.Fail(s.logger, "post interest", err)
	}
	s.ledger.Completed(ctx, tx)
	return tx, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("event not delivered", "event", e.Type(), "error", err)
	}
}
