package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/events"
)

func TestStartDeliversEventsUntilCancelled(t *testing.T) {
	dispatcher := events.NewAsyncDispatcher(zap.NewNop(), 8)
	handled := make(chan string, 1)
	dispatcher.Subscribe(events.EventLeaveApproved, func(ctx context.Context, e events.Event) error {
		handled <- e.ID
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := Start(ctx, Dependencies{Events: dispatcher, EventWorkers: 2, Logger: zap.NewNop()})

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "evt-1", Type: events.EventLeaveApproved}))
	select {
	case id := <-handled:
		assert.Equal(t, "evt-1", id)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
