package realtime

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/repository"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
	var zero T
	return zero
}

func TestWatchDeliversFullResultSets(t *testing.T) {
	ctx := context.Background()
	feed := NewLocalFeed()
	resolver := repository.NewResolver(repository.ResolverConfig{}, nil, nil, repository.WithChangeNotifier(feed))
	provider := repository.For(resolver, repository.LeaveRequests)

	_, err := provider(ctx).Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Ann"})
	require.NoError(t, err)

	deliveries := make(chan []*domain.LeaveRequest, 8)
	stop, err := Watch(ctx, feed, repository.LeaveRequests.Collection, provider, repository.Query{CompanyID: "acme"},
		func(records []*domain.LeaveRequest, err error) {
			assert.NoError(t, err)
			deliveries <- records
		})
	require.NoError(t, err)

	assert.Len(t, receive(t, deliveries), 1)

	_, err = provider(ctx).Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Bob"})
	require.NoError(t, err)
	got := receive(t, deliveries)
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].EmployeeName)

	stop()
	_, err = provider(ctx).Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Cid"})
	require.NoError(t, err)
	select {
	case <-deliveries:
		t.Fatal("delivery after stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatchIgnoresOtherTenants(t *testing.T) {
	ctx := context.Background()
	feed := NewLocalFeed()
	resolver := repository.NewResolver(repository.ResolverConfig{}, nil, nil, repository.WithChangeNotifier(feed))
	provider := repository.For(resolver, repository.Employees)

	deliveries := make(chan int, 8)
	stop, err := Watch(ctx, feed, repository.Employees.Collection, provider, repository.Query{CompanyID: "acme"},
		func(records []*domain.Employee, err error) { deliveries <- len(records) })
	require.NoError(t, err)
	defer stop()

	assert.Equal(t, 0, receive(t, deliveries))

	_, err = provider(ctx).Create(ctx, &domain.Employee{Meta: domain.Meta{CompanyID: "globex"}, FirstName: "Eve"})
	require.NoError(t, err)
	select {
	case n := <-deliveries:
		t.Fatalf("unexpected delivery of %d records", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalFeedCancelIsIdempotent(t *testing.T) {
	feed := NewLocalFeed()
	calls := 0
	cancel, err := feed.Subscribe(context.Background(), "offers", "acme", func() { calls++ })
	require.NoError(t, err)

	require.NoError(t, feed.Notify(context.Background(), "offers", "acme"))
	cancel()
	cancel()
	require.NoError(t, feed.Notify(context.Background(), "offers", "acme"))
	assert.Equal(t, 1, calls)
}

func TestRedisFeedRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	feed := NewRedisFeed(client, nil)

	got := make(chan struct{}, 1)
	cancel, err := feed.Subscribe(context.Background(), "leave_requests", "acme", func() { got <- struct{}{} })
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, feed.Notify(context.Background(), "leave_requests", "acme"))
	receive(t, got)
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "hris:changes:leave_requests:acme", Channel("leave_requests", "acme"))
}
