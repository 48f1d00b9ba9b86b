package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/repository"
)

// ModeSource reports the store currently serving repositories.
type ModeSource interface {
	Mode(ctx context.Context) repository.Mode
}

// StartBackendMonitor asks the resolver for its mode every interval until ctx ends.
// Asking is what lets an unreachable live store be re-probed while the service is idle.
// A non-positive interval disables the monitor.
func StartBackendMonitor(ctx context.Context, source ModeSource, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if source == nil || interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := source.Mode(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			mode := source.Mode(ctx)
			if mode != last {
				logger.Info("data backend changed", zap.String("from", string(last)), zap.String("to", string(mode)))
				last = mode
			}
		}
	}()
	return done
}
