// Package transaction provides the money movement operations of the bank:
// deposits, withdrawals, transfers and the loan ledger postings.
//
// Every operation validates before it writes, and the balance update and
// the ledger row are committed in one unit of work.
package transaction

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

// Request is a single-account money movement.
type Request struct {
	AccountNumber string `validate:"required,max=20"`
	Type          transaction.Type
	Amount        float64
	Description   string `validate:"max=255"`
}

// TransferRequest moves Amount from one account to another.
type TransferRequest struct {
	FromAccountNumber string `validate:"required,max=20"`
	ToAccountNumber   string `validate:"required,max=20"`
	Amount            float64
	Description       string `validate:"max=255"`
}

// Service provides transaction operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Emitter
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork, an event emitter and logger.
func New(uow repository.UnitOfWork, bus eventbus.Emitter, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger.With("service", "transaction")}
}

// Deposit credits amount to the account with the given number.
func (s *Service) Deposit(ctx context.Context, accountNumber string, amount float64, description string) (*transaction.Transaction, error) {
	return s.Process(ctx, Request{AccountNumber: accountNumber, Type: transaction.TypeDeposit, Amount: amount, Description: description})
}

// Withdraw debits amount from the account with the given number.
func (s *Service) Withdraw(ctx context.Context, accountNumber string, amount float64, description string) (*transaction.Transaction, error) {
	return s.Process(ctx, Request{AccountNumber: accountNumber, Type: transaction.TypeWithdrawal, Amount: amount, Description: description})
}

// Process applies a DEPOSIT, WITHDRAWAL, LOAN_DISBURSEMENT or
// LOAN_REPAYMENT to one account and records it as a COMPLETED ledger
// entry. TRANSFER goes through Transfer.
func (s *Service) Process(ctx context.Context, req Request) (tx *transaction.Transaction, err error) {
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	if err := service.Validate(req); err != nil {
		return nil, err
	}
	if !IsSingleAccount(req.Type) {
		return nil, domain.NewInvalidTransaction(string(req.Type), req.Amount, "unsupported transaction type")
	}

	logger := s.logger.With("account", req.AccountNumber, "type", req.Type, "amount", req.Amount)
	logger.Debug("Process started")
	err = service.RetryOnCollision(func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			a, err := accounts.GetByNumber(ctx, req.AccountNumber)
			if err != nil {
				return err
			}
			tx, err = s.apply(ctx, uow, a, req.Type, req.Amount, req.Description)
			return err
		})
	})
	if err != nil {
		logger.Debug("Process rejected", "error", err)
		return nil, service.Fail(logger, "process "+strings.ToLower(string(req.Type)), err)
	}
	s.Completed(ctx, tx)
	return tx, nil
}

// IsSingleAccount reports whether t moves money on one account only.
func IsSingleAccount(t transaction.Type) bool {
	switch t {
	case transaction.TypeDeposit, transaction.TypeWithdrawal,
		transaction.TypeLoanDisbursement, transaction.TypeLoanRepayment:
		return true
	}
	return false
}

// Post runs the single-account algorithm inside the caller's unit of work,
// so the posting commits or rolls back with the caller's other writes.
// The caller emits the completion event through Completed after commit.
func (s *Service) Post(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountID uint,
	t transaction.Type,
	amount float64,
	description string,
) (*transaction.Transaction, error) {
	if !IsSingleAccount(t) {
		return nil, domain.NewInvalidTransaction(string(t), amount, "unsupported transaction type")
	}
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	a, err := accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, uow, a, t, amount, description)
}

// apply validates, moves the balance and writes the ledger row.
func (s *Service) apply(
	ctx context.Context,
	uow repository.UnitOfWork,
	a *account.Account,
	t transaction.Type,
	amount float64,
	description string,
) (*transaction.Transaction, error) {
	if !domain.IsPositiveAmount(amount) {
		return nil, domain.NewInvalidTransaction(string(t), amount, "amount must be a positive number")
	}
	if !a.IsActive() {
		return nil, domain.NewInvalidTransaction(string(t), amount, "account is not active")
	}
	if t.Sign() < 0 && !a.HasSufficientBalance(amount) {
		return nil, &domain.InsufficientBalanceError{Requested: amount, Available: a.Balance}
	}
	if t.Sign() > 0 && !a.CanCredit(amount) {
		return nil, domain.NewInvalidTransaction(string(t), amount, "balance would overflow")
	}

	if t.Sign() > 0 {
		a.Deposit(amount)
	} else {
		a.Withdraw(amount)
	}

	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	if err := accounts.UpdateBalance(ctx, a.ID, a.Balance, a.LastTransactionDate); err != nil {
		return nil, err
	}
	return s.record(ctx, uow, transaction.New(a.ID, t, amount, description, utils.NewReferenceNumber()), a.Balance)
}

func (s *Service) record(ctx context.Context, uow repository.UnitOfWork, tx *transaction.Transaction, balanceAfter float64) (*transaction.Transaction, error) {
	if err := tx.MarkCompleted(balanceAfter); err != nil {
		return nil, err
	}
	ledger, err := uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	if err := ledger.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Transfer moves money between two distinct ACTIVE accounts and records a
// single TRANSFER entry carrying the sender's new balance.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (tx *transaction.Transaction, err error) {
	req.FromAccountNumber = strings.TrimSpace(req.FromAccountNumber)
	req.ToAccountNumber = strings.TrimSpace(req.ToAccountNumber)
	if err := service.Validate(req); err != nil {
		return nil, err
	}

	logger := s.logger.With("from", req.FromAccountNumber, "to", req.ToAccountNumber, "amount", req.Amount)
	logger.Debug("Transfer started")
	err = service.RetryOnCollision(func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			from, err := accounts.GetByNumber(ctx, req.FromAccountNumber)
			if err != nil {
				return err
			}
			to, err := accounts.GetByNumber(ctx, req.ToAccountNumber)
			if err != nil {
				return err
			}

			invalid := func(reason string) error {
				return domain.NewInvalidTransaction(string(transaction.TypeTransfer), req.Amount, reason)
			}
			switch {
			case from.ID == to.ID:
				return invalid("cannot transfer to the same account")
			case !from.IsActive() || !to.IsActive():
				return invalid("one or both accounts are not active")
			case !domain.IsPositiveAmount(req.Amount):
				return invalid("amount must be a positive number")
			case !from.HasSufficientBalance(req.Amount):
				return &domain.InsufficientBalanceError{Requested: req.Amount, Available: from.Balance}
			case !to.CanCredit(req.Amount):
				return invalid("balance would overflow")
			}

			from.Withdraw(req.Amount)
			to.Deposit(req.Amount)
			if err := accounts.UpdateBalance(ctx, from.ID, from.Balance, from.LastTransactionDate); err != nil {
				return err
			}
			if err := accounts.UpdateBalance(ctx, to.ID, to.Balance, to.LastTransactionDate); err != nil {
				return err
			}
			entry := transaction.NewTransfer(from.ID, to.ID, req.Amount, req.Description, utils.NewReferenceNumber())
			tx, err = s.record(ctx, uow, entry, from.Balance)
			return err
		})
	})
	if err != nil {
		logger.Debug("Transfer rejected", "error", err)
		return nil, service.Fail(logger, "transfer", err)
	}
	s.Completed(ctx, tx)
	return tx, nil
}

// History returns every entry the account originated or received, newest
// first.
func (s *Service) History(ctx context.Context, accountNumber string) ([]*transaction.Transaction, error) {
	a, err := s.Balance(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	ledger, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "transaction history", err)
	}
	txs, err := ledger.ListByAccount(ctx, a.ID)
	if err != nil {
		return nil, service.Fail(s.logger, "transaction history", err)
	}
	return txs, nil
}

// Balance returns the current state of the account, balance included.
func (s *Service) Balance(ctx context.Context, accountNumber string) (*account.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "account balance", err)
	}
	a, err := accounts.GetByNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		return nil, service.Fail(s.logger, "account balance", err)
	}
	return a, nil
}

// GetByReference returns the entry with the given reference number.
func (s *Service) GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error) {
	ledger, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "get transaction", err)
	}
	tx, err := ledger.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		return nil, service.Fail(s.logger, "get transaction", err)
	}
	return tx, nil
}

// Completed publishes the completion event of a committed entry.
func (s *Service) Completed(ctx context.Context, tx *transaction.Transaction) {
	e := events.TransactionCompleted{
		Meta:            events.NewMeta(),
		TransactionID:   tx.ID,
		ReferenceNumber: tx.ReferenceNumber,
		AccountID:       tx.AccountID,
		ToAccountID:     tx.ToAccountID,
		TransactionType: string(tx.Type),
		Amount:          tx.Amount,
		BalanceAfter:    tx.BalanceAfter,
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("event not delivered", "event", e.Type(), "error", err)
	}
}
