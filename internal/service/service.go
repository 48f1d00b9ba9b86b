// Package service holds the HR workflows built on top of the record repositories.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/events"
)

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func (c Clock) today() string {
	return domain.Today(c.now())
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, clock Clock, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = clock.now()
	}
	_ = dispatcher.Publish(ctx, event)
}
