package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	accountmodel "github.com/amirasaad/waribank/infra/repository/account"
	customermodel "github.com/amirasaad/waribank/infra/repository/customer"
	loanmodel "github.com/amirasaad/waribank/infra/repository/loan"
	transactionmodel "github.com/amirasaad/waribank/infra/repository/transaction"
	"github.com/amirasaad/waribank/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite" // Sqlite driver based on CGO
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrBackupUnsupported is returned by Backup for non-sqlite stores.
var ErrBackupUnsupported = errors.New("backup is only supported for the sqlite store")

// NewDBConnection opens the configured store. sqlite is pinned to a single
// connection so in-memory databases live as long as the handle.
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	if cnf == nil {
		return nil, errors.New("database config is nil")
	}

	var dialector gorm.Dialector
	switch cnf.Driver {
	case config.DriverPostgres:
		if cnf.Url == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
		dialector = postgres.Open(cnf.Url)
	case config.DriverSQLite, "":
		if cnf.Path == "" {
			return nil, errors.New("DATABASE_PATH is not set")
		}
		dialector = sqlite.Open(SQLiteDSN(cnf.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cnf.Driver)
	}

	return Open(dialector, appEnv)
}

// Open opens a gorm handle on an arbitrary dialector with the settings every
// store shares.
func Open(dialector gorm.Dialector, appEnv string) (*gorm.DB, error) {
	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}
	return connection, nil
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// InitSchema creates the customers, accounts, transactions and loans tables.
// It only adds what is missing, so it is safe to run at every startup.
func InitSchema(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&customermodel.Customer{},
		&accountmodel.Account{},
		&transactionmodel.Transaction{},
		&loanmodel.Loan{},
	)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Ping checks that the store answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Backup writes a consistent copy of a sqlite store to path. The target
// must not exist.
func Backup(ctx context.Context, db *gorm.DB, path string) error {
	if db.Dialector.Name() != "sqlite" {
		return ErrBackupUnsupported
	}
	return db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error
}

// Store exposes the maintenance operations of an open database to the
// report service.
type Store struct {
	DB       *gorm.DB
	Location string
}

// NewStore wraps db. location is what operators see as "Database File".
func NewStore(db *gorm.DB, cnf *config.DB) *Store {
	location := cnf.Path
	if cnf.Driver == config.DriverPostgres {
		location = "postgres"
	}
	return &Store{DB: db, Location: location}
}

func (s *Store) Ping(ctx context.Context) error { return Ping(ctx, s.DB) }

func (s *Store) Backup(ctx context.Context, path string) error { return Backup(ctx, s.DB, path) }

// Driver is the dialect name, "sqlite" or "postgres".
func (s *Store) Driver() string { return s.DB.Dialector.Name() }

// Where reports the database file or the server kind.
func (s *Store) Where() string { return s.Location }
