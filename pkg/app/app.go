package app

import (
	"io"
	"log/slog"

	"github.com/amirasaad/waribank/pkg/config"
	"github.com/amirasaad/waribank/pkg/eventbus"
	"github.com/amirasaad/waribank/pkg/repository"
	"github.com/amirasaad/waribank/pkg/service/account"
	"github.com/amirasaad/waribank/pkg/service/customer"
	"github.com/amirasaad/waribank/pkg/service/loan"
	"github.com/amirasaad/waribank/pkg/service/report"
	"github.com/amirasaad/waribank/pkg/service/transaction"
)

// Deps contains everything the services are built from.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Store    report.Store
	Logger   *slog.Logger
	// Closers are released by Close, last opened first.
	Closers []io.Closer
}

type App struct {
	Deps               *Deps
	Config             *config.App
	CustomerService    *customer.Service
	AccountService     *account.Service
	TransactionService *transaction.Service
	LoanService        *loan.Service
	ReportService      *report.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	app.CustomerService = customer.New(deps.Uow, deps.EventBus, deps.Logger)
	app.TransactionService = transaction.New(deps.Uow, deps.EventBus, deps.Logger)
	app.AccountService = account.New(deps.Uow, app.TransactionService, deps.EventBus, deps.Logger)
	app.LoanService = loan.New(deps.Uow, app.TransactionService, deps.EventBus, deps.Logger)
	app.ReportService = report.New(deps.Uow, deps.Store, cfg, deps.Logger)
	return app
}

// Close releases the store connection and the log file.
func (a *App) Close() error {
	var first error
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		if err := a.Deps.Closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
