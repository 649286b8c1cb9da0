// Package app wires the services of the bank together and registers the
// event handlers on the bus.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/waribank/pkg/domain/events"
	"github.com/amirasaad/waribank/pkg/eventbus"
	"github.com/amirasaad/waribank/pkg/logging"
)

// setupEventBus registers the audit handler for every event type.
func (a *App) setupEventBus() {
	audit := AuditHandler(a.Deps.Logger)
	for _, t := range events.AllTypes() {
		a.Deps.EventBus.Register(t, audit)
	}
}

// AuditHandler writes each committed event to the log at SUCCESS level.
func AuditHandler(logger *slog.Logger) eventbus.HandlerFunc {
	logger = logger.With("handler", "audit")
	return func(ctx context.Context, e events.Event) error {
		logging.Success(logger, e.Message(), "event", e.Type())
		return nil
	}
}
