// Package report provides the read-only analytics of the bank and the
// maintenance operations of the system settings menu.
//
// Money totals are summed in decimal.
package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/amirasaad/waribank/pkg/config"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/account"
	"github.com/amirasaad/waribank/pkg/domain/customer"
	"github.com/amirasaad/waribank/pkg/domain/loan"
	"github.com/amirasaad/waribank/pkg/domain/transaction"
	"github.com/amirasaad/waribank/pkg/logging"
	"github.com/amirasaad/waribank/pkg/repository"
	"github.com/amirasaad/waribank/pkg/service"
	"github.com/shopspring/decimal"
)

// Shown by SystemInfo.
const (
	AppName    = "WariBank CLI"
	AppVersion = "1.0.0"

	reportTitle = "WariBank Transaction Report"
	timeLayout  = "2006-01-02 15:04:05"
	fileStamp   = "20060102_150405"
)

var (
	// ErrNoLogFile is returned by ClearLogs when no log file is configured.
	ErrNoLogFile = errors.New("no log file is configured")
	// ErrNonFiniteAmount is returned by the statistics when a stored amount
	// is NaN or infinite and cannot be summed.
	ErrNonFiniteAmount = errors.New("stored amount is not a finite number")
)

// Store is the database as seen by the maintenance operations.
type Store interface {
	Ping(ctx context.Context) error
	Backup(ctx context.Context, path string) error
	Driver() string
	Where() string
}

// CustomerStats counts customers per status.
type CustomerStats struct {
	Total, Active, Suspended, Inactive int
	AverageCreditScore                 decimal.Decimal
}

// AccountStats counts accounts per status and type and sums their balances.
type AccountStats struct {
	Total, Active, Frozen, Closed int
	ByType                        map[account.Type]int
	TotalBalance                  decimal.Decimal
}

// TransactionStats counts ledger entries per status and type.
type TransactionStats struct {
	Total, Completed, Pending, Failed, Cancelled int
	ByType                                       map[transaction.Type]int
	TotalAmount                                  decimal.Decimal
}

// LoanStats counts loans per status and sums principal and what is still owed.
type LoanStats struct {
	Total, Pending, Approved, Rejected, Active, Completed, Defaulted int
	TotalAmount, TotalRemaining                                      decimal.Decimal
}

// DatabaseStatus is what the system settings menu shows about the store.
type DatabaseStatus struct {
	Connected bool
	Driver    string
	Location  string
	Error     string
}

// SystemInfo describes the running build.
type SystemInfo struct {
	Application string
	Version     string
	GoVersion   string
	OS          string
	CurrentTime time.Time
}

// Service provides reporting and maintenance operations.
type Service struct {
	uow    repository.UnitOfWork
	store  Store
	cfg    *config.App
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Service. Reports and backups are written under
// cfg.Report.Dir and ClearLogs truncates cfg.Log.File.
func New(uow repository.UnitOfWork, store Store, cfg *config.App, logger *slog.Logger) *Service {
	return &Service{uow: uow, store: store, cfg: cfg, logger: logger.With("service", "report"), now: time.Now}
}

// CustomerStats summarises the customer base. The average credit score is
// zero when there are no customers.
func (s *Service) CustomerStats(ctx context.Context) (*CustomerStats, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "customer statistics", err)
	}
	cs, err := repo.List(ctx)
	if err != nil {
		return nil, service.Fail(s.logger, "customer statistics", err)
	}

	stats := &CustomerStats{Total: len(cs)}
	var scores tally
	for _, c := range cs {
		switch c.Status {
		case customer.StatusActive:
			stats.Active++
		case customer.StatusSuspended:
			stats.Suspended++
		case customer.StatusInactive:
			stats.Inactive++
		}
		scores.add(c.CreditScore)
	}
	if err := scores.check(s.logger, "customer statistics"); err != nil {
		return nil, err
	}
	stats.AverageCreditScore = average(scores.sum, len(cs))
	return stats, nil
}

// AccountStats summarises every account. A stored balance that is NaN or
// infinite fails with ErrNonFiniteAmount.
func (s *Service) AccountStats(ctx context.Context) (*AccountStats, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "account statistics", err)
	}
	as, err := repo.List(ctx)
	if err != nil {
		return nil, service.Fail(s.logger, "account statistics", err)
	}

	stats := &AccountStats{Total: len(as), ByType: map[account.Type]int{}}
	var balances tally
	for _, a := range as {
		switch a.Status {
		case account.StatusActive:
			stats.Active++
		case account.StatusFrozen:
			stats.Frozen++
		case account.StatusClosed:
			stats.Closed++
		}
		stats.ByType[a.Type]++
		balances.add(a.Balance)
	}
	if err := balances.check(s.logger, "account statistics"); err != nil {
		return nil, err
	}
	stats.TotalBalance = balances.sum
	return stats, nil
}

// TransactionStats summarises the whole ledger.
func (s *Service) TransactionStats(ctx context.Context) (*TransactionStats, error) {
	txs, err := s.transactions(ctx, "transaction statistics")
	if err != nil {
		return nil, err
	}

	stats := &TransactionStats{Total: len(txs), ByType: map[transaction.Type]int{}}
	var amounts tally
	for _, tx := range txs {
		switch tx.Status {
		case transaction.StatusCompleted:
			stats.Completed++
		case transaction.StatusPending:
			stats.Pending++
		case transaction.StatusFailed:
			stats.Failed++
		case transaction.StatusCancelled:
			stats.Cancelled++
		}
		stats.ByType[tx.Type]++
		amounts.add(tx.Amount)
	}
	if err := amounts.check(s.logger, "transaction statistics"); err != nil {
		return nil, err
	}
	stats.TotalAmount = amounts.sum
	return stats, nil
}

// LoanStats summarises every loan. DISBURSED counts as active.
func (s *Service) LoanStats(ctx context.Context) (*LoanStats, error) {
	repo, err := s.uow.LoanRepository()
	if err != nil {
		return nil, service.Fail(s.logger, "loan statistics", err)
	}
	ls, err := repo.List(ctx)
	if err != nil {
		return nil, service.Fail(s.logger, "loan statistics", err)
	}

	stats := &LoanStats{Total: len(ls)}
	var amounts, remaining tally
	for _, l := range ls {
		switch l.Status {
		case loan.StatusPending:
			stats.Pending++
		case loan.StatusApproved:
			stats.Approved++
		case loan.StatusRejected:
			stats.Rejected++
		case loan.StatusActive, loan.StatusDisbursed:
			stats.Active++
		case loan.StatusCompleted:
			stats.Completed++
		case loan.StatusDefaulted:
			stats.Defaulted++
		}
		amounts.add(l.Amount)
		remaining.add(l.RemainingBalance)
	}
	if err := amounts.check(s.logger, "loan statistics"); err != nil {
		return nil, err
	}
	if err := remaining.check(s.logger, "loan statistics"); err != nil {
		return nil, err
	}
	stats.TotalAmount = amounts.sum
	stats.TotalRemaining = remaining.sum
	return stats, nil
}

// tally sums amounts in decimal. decimal.NewFromFloat panics on NaN and
// infinities, so those are counted instead.
type tally struct {
	sum       decimal.Decimal
	nonFinite int
}

func (t *tally) add(x float64) {
	if !domain.IsFinite(x) {
		t.nonFinite++
		return
	}
	t.sum = t.sum.Add(decimal.NewFromFloat(x))
}

func (t *tally) check(logger *slog.Logger, op string) error {
	if t.nonFinite == 0 {
		return nil
	}
	return service.Fail(logger, op, fmt.Errorf("%w: %d rows", ErrNonFiniteAmount, t.nonFinite))
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

func (s *Service) transactions(ctx context.Context, op string) ([]*transaction.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, service.Fail(s.logger, op, err)
	}
	txs, err := repo.List(ctx)
	if err != nil {
		return nil, service.Fail(s.logger, op, err)
	}
	return txs, nil
}

// ReportPath is the default location of a transaction report generated at t.
func (s *Service) ReportPath(t time.Time) string {
	return filepath.Join(s.cfg.Report.Dir, "transaction_report_"+t.Format(fileStamp)+".txt")
}

// WriteTransactionReport writes every transaction, newest first, to path
// and returns how many it wrote. An empty path uses ReportPath.
func (s *Service) WriteTransactionReport(ctx context.Context, path string) (string, int, error) {
	txs, err := s.transactions(ctx, "transaction report")
	if err != nil {
		return "", 0, err
	}
	now := s.now()
	if path == "" {
		path = s.ReportPath(now)
	}

	if err := writeReport(path, now, txs); err != nil {
		return "", 0, service.Fail(s.logger, "transaction report", err)
	}
	logging.Success(s.logger, "Transaction report generated", "path", path, "transactions", len(txs))
	return path, len(txs), nil
}

func writeReport(path string, now time.Time, txs []*transaction.Transaction) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, reportTitle)
	fmt.Fprintln(w, "Generated: "+now.Format(timeLayout))
	fmt.Fprintln(w, "==================================================")
	for _, tx := range txs {
		fmt.Fprintln(w, tx.Summary())
	}
	return w.Flush()
}

// DatabaseStatus pings the store. A failed ping is reported, not returned.
func (s *Service) DatabaseStatus(ctx context.Context) DatabaseStatus {
	status := DatabaseStatus{Driver: s.store.Driver(), Location: s.store.Where(), Connected: true}
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("Database ping failed", "error", err)
		status.Connected = false
		status.Error = err.Error()
	}
	return status
}

// SystemInfo reports the application version and the platform it runs on.
func (s *Service) SystemInfo() SystemInfo {
	return SystemInfo{
		Application: AppName,
		Version:     AppVersion,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS + "/" + runtime.GOARCH,
		CurrentTime: s.now(),
	}
}

// Backup copies the database to a timestamped file under the report
// directory and returns its path.
func (s *Service) Backup(ctx context.Context) (string, error) {
	path := filepath.Join(s.cfg.Report.Dir, "waribank_backup_"+s.now().Format(fileStamp)+".db")
	if err := s.store.Backup(ctx, path); err != nil {
		return "", service.Fail(s.logger, "backup database", err)
	}
	logging.Success(s.logger, "Database backed up", "path", path)
	return path, nil
}

// ClearLogs truncates the configured log file. A file that does not exist
// yet counts as cleared.
func (s *Service) ClearLogs() error {
	if s.cfg.Log == nil || s.cfg.Log.File == "" {
		return ErrNoLogFile
	}
	if err := os.Truncate(s.cfg.Log.File, 0); err != nil && !errors.Is(err, os.ErrNotExist) {
		return service.Fail(s.logger, "clear logs", err)
	}
	logging.Success(s.logger, "Log file cleared", "path", s.cfg.Log.File)
	return nil
}
