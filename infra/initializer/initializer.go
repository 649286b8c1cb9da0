package initializer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/waribank/infra"
	infra_eventbus "github.com/amirasaad/waribank/infra/eventbus"
	"github.com/amirasaad/waribank/pkg/app"
	"github.com/amirasaad/waribank/pkg/config"
)

// InitializeDependencies initializes all the application dependencies:
// logger, database, schema, unit of work and event bus.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	return initialize(cfg, os.Stdout, os.Stderr)
}

func initialize(cfg *config.App, stdout, stderr io.Writer) (deps *app.Deps, err error) {
	logger, logFile, err := setupLogger(cfg.Log, stdout, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	deps = &app.Deps{Logger: logger, Closers: []io.Closer{logFile}}
	defer func() {
		if err != nil {
			_ = logFile.Close()
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := infra.InitSchema(context.Background(), db); err != nil {
		logger.Error("Failed to initialize schema", "error", err)
		_ = sqlDB.Close()
		return nil, err
	}
	deps.Closers = append(deps.Closers, sqlDB)
	deps.Store = infra.NewStore(db, cfg.DB)
	logger.Info("Database initialized", "driver", db.Dialector.Name(), "location", deps.Store.Where())

	// Initialize unit of work
	deps.Uow = infra.NewUoW(db)

	// Initialize event bus
	deps.EventBus = infra_eventbus.NewWithMemory(logger)

	return deps, nil
}
