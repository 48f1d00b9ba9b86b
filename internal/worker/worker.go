// Package worker wires the background jobs of the API process.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/events"
	"github.com/spec-kit/hris-service/internal/service"
)

// Dependencies bundles what the background jobs need.
type Dependencies struct {
	Notifications *service.NotificationService
	// Events, when set, delivers published events off the request path.
	Events          *events.AsyncDispatcher
	EventWorkers    int
	Backend         ModeSource
	MonitorInterval time.Duration
	Logger          *zap.Logger
}

// Start registers the notification handlers, starts event delivery and launches the
// backend monitor. The returned channel closes once every job has stopped after ctx ends.
func Start(ctx context.Context, deps Dependencies) <-chan struct{} {
	if deps.Notifications != nil {
		deps.Notifications.RegisterHandlers()
	}
	jobs := []<-chan struct{}{
		StartBackendMonitor(ctx, deps.Backend, deps.MonitorInterval, deps.Logger),
	}
	if deps.Events != nil {
		jobs = append(jobs, deps.Events.Run(ctx, deps.EventWorkers))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, job := range jobs {
			<-job
		}
	}()
	return done
}
