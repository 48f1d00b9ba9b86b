package realtime

import (
	"context"
	"sync"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/repository"
)

// Watch delivers the full result set of q right away and again after every change.
// The returned func stops further deliveries. A read already running completes
// but its result is dropped. The stop func must not be called from fn.
func Watch[T domain.Document](ctx context.Context, feed Feed, collection string, provider repository.Provider[T], q repository.Query, fn func([]T, error)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	signal := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}
	unsubscribe, err := feed.Subscribe(ctx, collection, q.CompanyID, signal)
	if err != nil {
		cancel()
		return nil, err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
			}
			records, err := provider(ctx).List(context.WithoutCancel(ctx), q)
			if ctx.Err() != nil {
				return
			}
			fn(records, err)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			unsubscribe()
			wg.Wait()
		})
	}, nil
}
