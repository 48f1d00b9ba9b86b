package events

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrQueueFull is returned when an event cannot be queued before the publisher's context ends.
var ErrQueueFull = errors.New("event queue full")

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// AsyncDispatcher queues published events and runs their handlers on background workers,
// so slow handlers such as e-mail delivery stay out of the request path.
// Handlers still run in subscription order for a given event.
type AsyncDispatcher struct {
	inner  Dispatcher
	queue  chan queuedEvent
	logger *zap.Logger
}

// NewAsyncDispatcher creates a dispatcher holding up to buffer pending events.
// Nothing is delivered until Run is called.
func NewAsyncDispatcher(logger *zap.Logger, buffer int) *AsyncDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 256
	}
	return &AsyncDispatcher{
		inner:  NewInMemoryDispatcher(logger),
		queue:  make(chan queuedEvent, buffer),
		logger: logger,
	}
}

// Publish queues the event. Handlers see ctx without its cancellation, since the
// request that published the event usually ends first.
func (d *AsyncDispatcher) Publish(ctx context.Context, event Event) error {
	select {
	case d.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	case <-ctx.Done():
		d.logger.Warn("event dropped",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
		return ErrQueueFull
	}
}

// Subscribe registers a handler for the given event type.
func (d *AsyncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.inner.Subscribe(eventType, handler)
}

// Run delivers queued events on workers goroutines until ctx ends, then drains what is
// still queued. The returned channel closes once every worker has stopped.
func (d *AsyncDispatcher) Run(ctx context.Context, workers int) <-chan struct{} {
	if workers <= 0 {
		workers = 1
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job := <-d.queue:
					_ = d.inner.Publish(job.ctx, job.event)
				case <-ctx.Done():
					d.drain()
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

func (d *AsyncDispatcher) drain() {
	for {
		select {
		case job := <-d.queue:
			_ = d.inner.Publish(job.ctx, job.event)
		default:
			return
		}
	}
}
