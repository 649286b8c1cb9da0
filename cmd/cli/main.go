package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amirasaad/waribank/infra/initializer"
	"github.com/amirasaad/waribank/internal/cli"
	"github.com/amirasaad/waribank/pkg/app"
	"github.com/amirasaad/waribank/pkg/config"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps, cfg)
	defer func() {
		if err := a.Close(); err != nil {
			deps.Logger.Warn("Failed to release resources", "error", err)
		}
	}()

	deps.Logger.Info("Starting WariBank", "env", cfg.Env, "database", deps.Store.Where())
	cli.New(a, os.Stdin, os.Stdout).Run(context.Background())
	return nil
}
