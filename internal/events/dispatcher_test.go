package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcherRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var order []string
	d.Subscribe(EventLeaveApproved, func(ctx context.Context, e Event) error {
		order = append(order, "first")
		return errors.New("mail provider down")
	})
	d.Subscribe(EventLeaveApproved, func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	})
	d.Subscribe(EventLeaveRejected, func(ctx context.Context, e Event) error {
		order = append(order, "other")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLeaveApproved}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAsyncDispatcherReturnsBeforeHandlersFinish(t *testing.T) {
	d := NewAsyncDispatcher(nil, 4)
	release := make(chan struct{})
	handled := make(chan Event, 1)
	d.Subscribe(EventPayslipReady, func(ctx context.Context, e Event) error {
		<-release
		assert.NoError(t, ctx.Err())
		handled <- e
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := d.Run(ctx, 1)

	reqCtx, endRequest := context.WithCancel(context.Background())
	published := make(chan error, 1)
	go func() { published <- d.Publish(reqCtx, Event{ID: "evt-1", Type: EventPayslipReady}) }()
	select {
	case err := <-published:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish waited for the handler")
	}
	endRequest()

	close(release)
	select {
	case e := <-handled:
		assert.Equal(t, "evt-1", e.ID)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}

	cancel()
	<-done
}

func TestAsyncDispatcherDrainsOnShutdown(t *testing.T) {
	d := NewAsyncDispatcher(nil, 4)
	handled := make(chan string, 4)
	d.Subscribe(EventOfferAccepted, func(ctx context.Context, e Event) error {
		handled <- e.ID
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{ID: "a", Type: EventOfferAccepted}))
	require.NoError(t, d.Publish(context.Background(), Event{ID: "b", Type: EventOfferAccepted}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	<-d.Run(ctx, 2)

	assert.Len(t, handled, 2)
}

func TestAsyncDispatcherGivesUpWhenQueueStaysFull(t *testing.T) {
	d := NewAsyncDispatcher(nil, 1)
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLeaveApproved}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Publish(ctx, Event{Type: EventLeaveApproved}), ErrQueueFull)
}
