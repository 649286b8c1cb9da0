// Package loan provides the loan workflow: application, approval or
// rejection, disbursement to the linked account, repayment and default.
//
// Disbursement and debited repayments write the loan row and the ledger
// entry in one unit of work.
package loan

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/events"
	"github.com/amirasaad/waribank/pkg/domain/loan"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
	"github.com/amirasaad/waribank/pkg/eventbus"
	"github.com/amirasaad/waribank/pkg/repository"
	"github.com/amirasaad/waribank/pkg/service"
	"github.com/amirasaad/waribank/pkg/service/account"
)

// ApplyRequest carries a loan application.
type ApplyRequest struct {
	CustomerID    uint      `validate:"required"`
	AccountNumber string    `validate:"required,max=20"`
	Type          loan.Type `validate:"required,max=20"`
	Amount        float64
	TermInMonths  int
	Purpose       string `validate:"max=255"`
}

// Payment is the outcome of MakePayment. Transaction is nil unless the
// payment was debited from the linked account.
type Payment struct {
	Loan        *loan.Loan
	Applied     float64
	Transaction *transaction.Transaction
}

// Service provides loan operations.
type Service struct {
	uow    repository.UnitOfWork
	ledger account.Poster
	bus    eventbus.Emitter
	logger *slog.Logger
}

// New creates a new Service. ledger posts disbursements and repayments.
func New(uow repository.UnitOfWork, ledger account.Poster, bus eventbus.Emitter, logger *slog.Logger) *Service {
	return &Service{uow: uow, ledger: ledger, bus: bus, logger: logger.With("service", "loan")}
}

// Apply records a PENDING application priced at the policy rate of its
// type. The account must belong to the customer.
func (s *Service) Apply(ctx context.Context, req ApplyRequest) (l *loan.Loan, err error) {
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	req.Type = loan.Type(strings.ToUpper(strings.TrimSpace(string(req.Type))))
	if err := service.Validate(req); err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if _, err := customers.Get(ctx, req.CustomerID); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, req.AccountNumber)
		if err != nil {
			return err
		}
		if a.CustomerID != req.CustomerID {
			return domain.NewInvalidTransaction("loan", req.Amount, "account "+a.Number+" does not belong to the customer")
		}
		if l, err = loan.New(req.CustomerID, a.ID, req.Amount, req.TermInMonths, req.Type, req.Purpose); err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		return loans.Create(ctx, l)
	})
	if err != nil {
		return nil, service.Fail(s.logger, "apply for loan", err)
	}
	s.changed(ctx, l, "")
	return l, nil
}

// Approve moves a PENDING loan to APPROVED and fixes its monthly payment.
func (s *Service) Approve(ctx context.Context, id uint, approvedBy string) (*loan.Loan, error) {
	approvedBy = strings.TrimSpace(approvedBy)
	if approvedBy == "" {
		return nil, domain.NewInvalidTransaction("loan approval", 0, "approver is required")
	}
	return s.transition(ctx, id, "approve loan", func(l *loan.Loan) error {
		return l.Approve(approvedBy)
	})
}

// Reject moves a PENDING loan to REJECTED.
func (s *Service) Reject(ctx context.Context, id uint, reason string) (*loan.Loan, error) {
	return s.transition(ctx, id, "reject loan", func(l *loan.Loan) error {
		return l.Reject(strings.TrimSpace(reason))
	})
}

// MarkDefaulted moves an ACTIVE loan to DEFAULTED.
func (s *Service) MarkDefaulted(ctx context.Context, id uint) (*loan.Loan, error) {
	return s.transition(ctx, id, "mark loan defaulted", (*loan.Loan).MarkDefaulted)
}

func (s *Service) transition(ctx context.Context, id uint, op string, apply func(*loan.Loan) error) (l *loan.Loan, err error) {
	var from loan.Status
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if l, err = loans.Get(ctx, id); err != nil {
			return err
		}
		from = l.Status
		if err := apply(l); err != nil {
			return err
		}
		return loans.Update(ctx, l)
	})
	if err != nil {
		return nil, service.Fail(s.logger, op, err)
	}
	s.changed(ctx, l, from)
	return l, nil
}

// Disburse moves an APPROVED loan to ACTIVE and credits the amount to its
// ACTIVE account as a LOAN_DISBURSEMENT entry.
func (s *Service) Disburse(ctx context.Context, id uint) (l *loan.Loan, tx *transaction.Transaction, err error) {
	var from loan.Status
	err = service.RetryOnCollision(func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			loans, err := uow.LoanRepository()
			if err != nil {
				return err
			}
			if l, err = loans.Get(ctx, id); err != nil {
				return err
			}
			from = l.Status
			if err := l.Disburse(); err != nil {
				return err
			}
			if err := loans.Update(ctx, l); err != nil {
				return err
			}
			tx, err = s.ledger.Post(ctx, uow, l.AccountID, transaction.TypeLoanDisbursement, l.Amount, transaction.DescLoanDisbursement)
			return err
		})
	})
	if err != nil {
		return nil, nil, service.Fail(s.logger, "disburse loan", err)
	}
	s.changed(ctx, l, from)
	s.ledger.Completed(ctx, tx)
	return l, tx, nil
}

// MakePayment applies amount to an ACTIVE loan. Paying the remaining
// balance or more completes the loan. With debitAccount the applied amount
// is debited from the linked account as a LOAN_REPAYMENT entry, and an
// account that cannot cover it leaves the loan untouched.
func (s *Service) MakePayment(ctx context.Context, id uint, amount float64, debitAccount bool) (p *Payment, err error) {
	var from loan.Status
	err = service.RetryOnCollision(func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			loans, err := uow.LoanRepository()
			if err != nil {
				return err
			}
			l, err := loans.Get(ctx, id)
			if err != nil {
				return err
			}
			from = l.Status
			applied, err := l.MakePayment(amount)
			if err != nil {
				return err
			}
			p = &Payment{Loan: l, Applied: applied}
			if debitAccount {
				p.Transaction, err = s.ledger.Post(ctx, uow, l.AccountID, transaction.TypeLoanRepayment, applied, transaction.DescLoanRepayment)
				if err != nil {
					return err
				}
			}
			return loans.Update(ctx, l)
		})
	})
	if err != nil {
		return nil, service.Fail(s.logger, "make loan payment", err)
	}
	if p.Loan.Status != from {
		s.changed(ctx, p.Loan, from)
	}
	if p.Transaction != nil {
		s.ledger.Completed(ctx, p.Transaction)
	}
	return p, nil
}

// Get returns the loan with the given id.
func (s *Service) Get(ctx context.Context, id uint) (*loan.Loan, error) {
	loans, err := s.uow.LoanRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "get loan", err)
	}
	l, err := loans.Get(ctx, id)
	if err != nil {
		return nil, service.Fail(s.logger, "get loan", err)
	}
	return l, nil
}

// List returns every loan, newest application first.
func (s *Service) List(ctx context.Context) ([]*loan.Loan, error) {
	return s.list(func(r loanRepo) ([]*loan.Loan, error) { return r.List(ctx) })
}

// ListByCustomer returns the loans of one customer, newest application first.
func (s *Service) ListByCustomer(ctx context.Context, customerID uint) ([]*loan.Loan, error) {
	return s.list(func(r loanRepo) ([]*loan.Loan, error) { return r.ListByCustomer(ctx, customerID) })
}

// ListByAccount returns the loans paid out to one account.
func (s *Service) ListByAccount(ctx context.Context, accountID uint) ([]*loan.Loan, error) {
	return s.list(func(r loanRepo) ([]*loan.Loan, error) { return r.ListByAccount(ctx, accountID) })
}

// ListByStatus returns the loans currently in status.
func (s *Service) ListByStatus(ctx context.Context, status loan.Status) ([]*loan.Loan, error) {
	return s.list(func(r loanRepo) ([]*loan.Loan, error) { return r.ListByStatus(ctx, status) })
}

// Overdue returns the ACTIVE loans past their due date.
func (s *Service) Overdue(ctx context.Context) ([]*loan.Loan, error) {
	active, err := s.ListByStatus(ctx, loan.StatusActive)
	if err != nil {
		return nil, err
	}
	overdue := make([]*loan.Loan, 0, len(active))
	for _, l := range active {
		if l.IsOverdue() {
			overdue = append(overdue, l)
		}
	}
	return overdue, nil
}

type loanRepo interface {
	List(ctx context.Context) ([]*loan.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*loan.Loan, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*loan.Loan, error)
	ListByStatus(ctx context.Context, status loan.Status) ([]*loan.Loan, error)
}

func (s *Service) list(query func(loanRepo) ([]*loan.Loan, error)) ([]*loan.Loan, error) {
	loans, err := s.uow.LoanRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "list loans", err)
	}
	ls, err := query(loans)
	if err != nil {
		return nil, service.Fail(s.logger, "list loans", err)
	}
	return ls, nil
}

func (s *Service) changed(ctx context.Context, l *loan.Loan, from loan.Status) {
	e := events.LoanStatusChanged{
		Meta:       events.NewMeta(),
		LoanID:     l.ID,
		CustomerID: l.CustomerID,
		From:       string(from),
		To:         string(l.Status),
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("event not delivered", "event", e.Type(), "error", err)
	}
}
