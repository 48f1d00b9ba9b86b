package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/hris-service/internal/repository"
)

type countingSource struct {
	calls int32
}

func (s *countingSource) Mode(ctx context.Context) repository.Mode {
	if atomic.AddInt32(&s.calls, 1) > 2 {
		return repository.ModeLive
	}
	return repository.ModeMemory
}

func TestBackendMonitorPollsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &countingSource{}

	done := StartBackendMonitor(ctx, source, 5*time.Millisecond, nil)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&source.calls) >= 4 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestBackendMonitorDisabled(t *testing.T) {
	source := &countingSource{}
	done := StartBackendMonitor(context.Background(), source, 0, nil)

	_, open := <-done
	assert.False(t, open)
	assert.Zero(t, atomic.LoadInt32(&source.calls))
}
