package eventbus

import (
	"context"

	"github.com/amirasaad/waribank/pkg/domain/events"
)

// HandlerFunc handles a single domain event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, e events.Event) error
}

// Emitter is the publishing half of Bus, the part services depend on.
type Emitter interface {
	Emit(ctx context.Context, e events.Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Emit(context.Context, events.Event) error { return nil }
