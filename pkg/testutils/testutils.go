// Package testutils provides database fixtures shared by package tests.
package testutils

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/waribank/infra"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMockDB returns a gorm handle speaking the postgres dialect to sqlmock.
func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

// NewSQLiteDB returns a private in-memory sqlite store with the schema applied.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.Open(sqlite.Open(infra.SQLiteDSN("file::memory:")), "")
	require.NoError(t, err)
	require.NoError(t, infra.InitSchema(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ErrInjected is returned by inserts blocked with FailInserts.
var ErrInjected = errors.New("injected insert failure")

// FailInserts makes every insert into table fail with ErrInjected until the
// returned func is called.
func FailInserts(t *testing.T, db *gorm.DB, table string) (restore func()) {
	t.Helper()
	name := "testutils:fail_" + table
	enabled := true
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if enabled && tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	})
	require.NoError(t, err)
	return func() { enabled = false }
}
