package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/domain"
)

var liveConfig = ResolverConfig{Enabled: true, Preferred: "live", ProbeTimeout: time.Second}

func countingConnector(calls *int32, backend func() (Backend, error)) Connector {
	return func(ctx context.Context) (Backend, error) {
		atomic.AddInt32(calls, 1)
		return backend()
	}
}

func TestResolverDisabledNeverConnects(t *testing.T) {
	var calls int32
	r := NewResolver(ResolverConfig{Enabled: false}, countingConnector(&calls, func() (Backend, error) {
		return nil, errors.New("should not be called")
	}), nil)

	repo := For(r, LeaveRequests)(context.Background())
	assert.Equal(t, ModeMemory, repo.Backend())
	assert.Equal(t, ModeMemory, r.Mode(context.Background()))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestResolverPreferredMockNeverConnects(t *testing.T) {
	var calls int32
	cfg := liveConfig
	cfg.Preferred = PreferMock
	r := NewResolver(cfg, countingConnector(&calls, func() (Backend, error) {
		return nil, errors.New("should not be called")
	}), nil)

	assert.Equal(t, ModeMemory, For(r, Employees)(context.Background()).Backend())
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestResolverFallsBackWhenConnectFails(t *testing.T) {
	var calls int32
	r := NewResolver(liveConfig, countingConnector(&calls, func() (Backend, error) {
		return nil, errors.New("dial tcp: connection refused")
	}), nil)

	assert.Equal(t, ModeMemory, For(r, LeaveRequests)(context.Background()).Backend())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResolverFallsBackWhenConnectPanics(t *testing.T) {
	r := NewResolver(liveConfig, func(ctx context.Context) (Backend, error) {
		panic("driver exploded")
	}, nil)

	assert.Equal(t, ModeMemory, For(r, LeaveRequests)(context.Background()).Backend())
}

func TestResolverFallsBackWhenPingFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("timeout"))
	mock.ExpectClose()

	r := NewResolver(liveConfig, func(ctx context.Context) (Backend, error) { return mock, nil }, nil)

	assert.Equal(t, ModeMemory, For(r, LeaveRequests)(context.Background()).Backend())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolverUsesLiveWhenReachable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	mock.ExpectPing()

	r := NewResolver(liveConfig, func(ctx context.Context) (Backend, error) { return mock, nil }, nil)

	first := For(r, LeaveRequests)(context.Background())
	second := For(r, LeaveRequests)(context.Background())
	assert.Equal(t, ModeLive, first.Backend())
	assert.Same(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolverSharesOneConnectionAttempt(t *testing.T) {
	var calls int32
	r := NewResolver(liveConfig, countingConnector(&calls, func() (Backend, error) {
		time.Sleep(10 * time.Millisecond)
		return nil, errors.New("unreachable")
	}), nil)
	provider := For(r, LeaveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			provider(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResolverKeepsFallbackData(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(ResolverConfig{}, nil, nil)

	created, err := For(r, LeaveRequests)(ctx).Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}, EmployeeName: "Jane"})
	require.NoError(t, err)

	got, err := For(r, LeaveRequests)(ctx).Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.EmployeeName)

	r.Reconfigure(ResolverConfig{Preferred: PreferMock})
	got, err = For(r, LeaveRequests)(ctx).Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.EmployeeName)
}

func TestResolverReprobesUnreachableBackend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	mock.ExpectPing()

	var calls int32
	connect := func(ctx context.Context) (Backend, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("unreachable")
		}
		return mock, nil
	}
	cfg := liveConfig
	cfg.ReprobeInterval = 30 * time.Second
	r := NewResolver(cfg, connect, nil, WithClock(clock))
	provider := For(r, Employees)

	assert.Equal(t, ModeMemory, provider(ctx).Backend())
	now = now.Add(10 * time.Second)
	assert.Equal(t, ModeMemory, provider(ctx).Backend())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	now = now.Add(30 * time.Second)
	assert.Equal(t, ModeLive, provider(ctx).Backend())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolverReconfigureDropsLiveAdapters(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()

	r := NewResolver(liveConfig, func(ctx context.Context) (Backend, error) { return mock, nil }, nil)
	assert.Equal(t, ModeLive, For(r, Offers)(ctx).Backend())

	r.Reconfigure(ResolverConfig{Enabled: false})
	assert.Equal(t, ModeMemory, For(r, Offers)(ctx).Backend())
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(ctx context.Context, collection, companyID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, collection+"/"+companyID)
	return nil
}

func TestResolverNotifiesAfterWrites(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	r := NewResolver(ResolverConfig{}, nil, nil, WithChangeNotifier(notifier))
	repo := For(r, LeaveRequests)(ctx)

	created, err := repo.Create(ctx, &domain.LeaveRequest{Meta: domain.Meta{CompanyID: "acme"}})
	require.NoError(t, err)
	_, err = repo.Update(ctx, created.ID, Patch{"reason": "flu"})
	require.NoError(t, err)
	require.True(t, repo.Delete(ctx, created.ID))
	require.False(t, repo.Delete(ctx, created.ID))
	_, err = repo.Update(ctx, created.ID, Patch{"reason": "flu"})
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"leave_requests/acme", "leave_requests/acme", "leave_requests/acme"}, notifier.calls)
}

func TestResolverReprobeDoesNotBlockOtherCallers(t *testing.T) {
	ctx := context.Background()
	var nowMu sync.Mutex
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		nowMu.Lock()
		defer nowMu.Unlock()
		return now
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	connect := func(ctx context.Context) (Backend, error) {
		if atomic.AddInt32(&calls, 1) == 2 {
			close(entered)
			<-release
		}
		return nil, errors.New("unreachable")
	}
	cfg := liveConfig
	cfg.ReprobeInterval = 30 * time.Second
	r := NewResolver(cfg, connect, nil, WithClock(clock))
	provider := For(r, Employees)

	require.Equal(t, ModeMemory, provider(ctx).Backend())
	nowMu.Lock()
	now = now.Add(time.Minute)
	nowMu.Unlock()

	reprobed := make(chan struct{})
	go func() {
		defer close(reprobed)
		provider(ctx)
	}()
	<-entered

	served := make(chan Mode, 1)
	go func() { served <- For(r, LeaveRequests)(ctx).Backend() }()
	select {
	case mode := <-served:
		assert.Equal(t, ModeMemory, mode)
	case <-time.After(time.Second):
		t.Fatal("resolution blocked behind a running re-probe")
	}
	assert.Equal(t, ModeMemory, r.Mode(ctx))

	close(release)
	<-reprobed
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
