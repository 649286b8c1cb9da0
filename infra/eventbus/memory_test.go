package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/waribank/infra/eventbus"
	"github.com/amirasaad/waribank/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus() *eventbus.MemoryEventBus {
	return eventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMemoryEventBus_DispatchesByType(t *testing.T) {
	bus := newBus()
	var got []events.Event
	bus.Register(events.EventTypeAccountOpened, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	opened := events.AccountOpened{Meta: events.NewMeta(), AccountNumber: "WB1"}
	require.NoError(t, bus.Emit(context.Background(), opened))
	require.NoError(t, bus.Emit(context.Background(), events.CustomerRegistered{Meta: events.NewMeta()}))

	require.Len(t, got, 1)
	assert.Equal(t, opened, got[0])
	assert.Len(t, bus.Published(), 2)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_HandlerFailuresAreContained(t *testing.T) {
	bus := newBus()
	calls := 0
	bus.Register(events.EventTypeLoanStatusChanged, func(context.Context, events.Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Register(events.EventTypeLoanStatusChanged, func(context.Context, events.Event) error {
		calls++
		panic("handler panic")
	})
	bus.Register(events.EventTypeLoanStatusChanged, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	assert.NoError(t, bus.Emit(context.Background(), events.LoanStatusChanged{LoanID: 1, To: "PENDING"}))
	assert.Equal(t, 3, calls)
}

func TestMemoryEventBus_DepthLimit(t *testing.T) {
	bus := newBus()
	var errs []error
	bus.Register(events.EventTypeTransactionCompleted, func(ctx context.Context, e events.Event) error {
		if err := bus.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	require.NoError(t, bus.Emit(context.Background(), events.TransactionCompleted{}))
	assert.Len(t, errs, 1)
	assert.Len(t, bus.Published(), eventbus.MaxEventDepth)
}
