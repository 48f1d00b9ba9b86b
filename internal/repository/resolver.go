package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/observability"
)

// PreferMock selects the in-memory store regardless of credentials.
const PreferMock = "mock"

// Backend is a live database handle the resolver can probe.
type Backend interface {
	Queryer
	Ping(ctx context.Context) error
	Close()
}

// Connector opens the live backend.
type Connector func(ctx context.Context) (Backend, error)

// ChangeNotifier is told about every successful write.
type ChangeNotifier interface {
	Notify(ctx context.Context, collection, companyID string) error
}

// ResolverConfig drives the live or memory decision.
type ResolverConfig struct {
	// Enabled is true when credentials are present and not placeholders.
	Enabled   bool
	Preferred string
	// ProbeTimeout bounds connect plus ping.
	ProbeTimeout time.Duration
	// ReprobeInterval is how long an unreachable verdict is kept. Zero keeps it forever.
	ReprobeInterval time.Duration
}

type fallbackReason string

const (
	reasonNone        fallbackReason = ""
	reasonConfig      fallbackReason = "configuration"
	reasonUnreachable fallbackReason = "unreachable"
)

// Resolver decides which adapter serves each collection and memoizes the adapters.
// Memory adapters live as long as the resolver, so fallback data survives re-resolution.
type Resolver struct {
	connect  Connector
	logger   *zap.Logger
	metrics  *observability.Metrics
	notifier ChangeNotifier
	now      func() time.Time

	mu        sync.Mutex
	cfg       ResolverConfig
	decided   bool
	backend   Backend
	reason    fallbackReason
	decidedAt time.Time
	// reprobing is set while a re-probe runs outside mu.
	reprobing bool
	// generation changes on every reset, so a re-probe finishing late is discarded.
	generation int
	live       map[string]any
	memory     map[string]any
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithChangeNotifier publishes a change after every successful write.
func WithChangeNotifier(n ChangeNotifier) ResolverOption {
	return func(r *Resolver) { r.notifier = n }
}

// WithMetrics records store operations and the backend mode.
func WithMetrics(m *observability.Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

// WithClock overrides the clock used for re-probe decisions.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver builds a resolver. Nothing is contacted until the first repository is requested.
func NewResolver(cfg ResolverConfig, connect Connector, logger *zap.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		cfg:     cfg,
		connect: connect,
		logger:  logger,
		now:     time.Now,
		live:    map[string]any{},
		memory:  map[string]any{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// For returns the provider for one collection.
func For[T domain.Document](r *Resolver, def Definition[T]) Provider[T] {
	return func(ctx context.Context) Repository[T] {
		return resolve(ctx, r, def)
	}
}

func resolve[T domain.Document](ctx context.Context, r *Resolver, def Definition[T]) Repository[T] {
	r.decide(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend != nil {
		if cached, ok := r.live[def.Collection].(Repository[T]); ok {
			return cached
		}
		repo := notifying(NewPostgresRepository(def, r.backend, r.logger, r.metrics), def.Collection, r.notifier, r.logger)
		r.live[def.Collection] = repo
		return repo
	}

	if cached, ok := r.memory[def.Collection].(Repository[T]); ok {
		return cached
	}
	repo := notifying(NewMemoryRepository(def, r.logger, r.metrics), def.Collection, r.notifier, r.logger)
	r.memory[def.Collection] = repo
	return repo
}

// decide settles the live or memory verdict. The first decision is taken under r.mu, so
// concurrent callers wait for one attempt and share its outcome. A re-probe of an
// unreachable store runs outside the lock: the caller that starts it waits for the result
// while every other caller keeps the in-memory store.
func (r *Resolver) decide(ctx context.Context) {
	r.mu.Lock()
	if !r.decided {
		r.decideLocked(ctx)
		r.mu.Unlock()
		return
	}
	if r.reprobing || !r.shouldReprobe() {
		r.mu.Unlock()
		return
	}
	r.reprobing = true
	generation := r.generation
	timeout := r.cfg.ProbeTimeout
	r.mu.Unlock()

	backend, err := r.probe(ctx, timeout)

	r.mu.Lock()
	defer r.mu.Unlock()
	if generation != r.generation {
		if backend != nil {
			backend.Close()
		}
		return
	}
	r.reprobing = false
	r.record(backend, err)
}

func (r *Resolver) decideLocked(ctx context.Context) {
	switch {
	case !r.cfg.Enabled:
		r.settle(nil, reasonConfig)
		r.logger.Info("live store not configured; using in-memory store")
		return
	case r.cfg.Preferred == PreferMock:
		r.settle(nil, reasonConfig)
		r.logger.Info("in-memory store preferred by configuration")
		return
	}
	backend, err := r.probe(ctx, r.cfg.ProbeTimeout)
	r.record(backend, err)
}

// record settles the outcome of a probe. Callers hold r.mu.
func (r *Resolver) record(backend Backend, err error) {
	if err != nil {
		r.settle(nil, reasonUnreachable)
		r.logger.Warn("live store unreachable; falling back to in-memory store", zap.Error(err))
		return
	}
	r.settle(backend, reasonNone)
	r.logger.Info("live store connected")
}

func (r *Resolver) shouldReprobe() bool {
	return r.reason == reasonUnreachable &&
		r.cfg.ReprobeInterval > 0 &&
		r.now().Sub(r.decidedAt) >= r.cfg.ReprobeInterval
}

func (r *Resolver) settle(backend Backend, reason fallbackReason) {
	r.decided = true
	r.backend = backend
	r.reason = reason
	r.decidedAt = r.now()
	r.metrics.SetBackendMode(string(r.modeLocked()))
}

// probe connects and pings within the probe timeout. Panics count as failures.
func (r *Resolver) probe(ctx context.Context, timeout time.Duration) (backend Backend, err error) {
	if r.connect == nil {
		return nil, errors.New("no connector")
	}
	defer func() {
		if rec := recover(); rec != nil {
			backend, err = nil, fmt.Errorf("connect panicked: %v", rec)
		}
	}()

	// Resolution outlives the request that triggered it.
	probeCtx := context.WithoutCancel(ctx)
	if timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(probeCtx, timeout)
		defer cancel()
	}

	backend, err = r.connect(probeCtx)
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, errors.New("connector returned no backend")
	}
	if err := backend.Ping(probeCtx); err != nil {
		backend.Close()
		return nil, err
	}
	return backend, nil
}

// Mode reports which adapter currently serves repositories, deciding first if needed.
func (r *Resolver) Mode(ctx context.Context) Mode {
	r.decide(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.modeLocked()
}

func (r *Resolver) modeLocked() Mode {
	if r.backend != nil {
		return ModeLive
	}
	return ModeMemory
}

// Ping checks the live backend when one is in use.
func (r *Resolver) Ping(ctx context.Context) error {
	r.mu.Lock()
	backend := r.backend
	r.mu.Unlock()
	if backend == nil {
		return errors.New("live store not in use")
	}
	return backend.Ping(ctx)
}

// Reconfigure drops the verdict, the connection and every live adapter.
// The next resolution decides again under cfg.
func (r *Resolver) Reconfigure(cfg ResolverConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
	r.resetLocked()
	r.logger.Info("store configuration changed", zap.Bool("enabled", cfg.Enabled), zap.String("preferred", cfg.Preferred))
}

// Close releases the live connection.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

func (r *Resolver) resetLocked() {
	if r.backend != nil {
		r.backend.Close()
	}
	r.backend = nil
	r.decided = false
	r.reason = reasonNone
	r.reprobing = false
	r.generation++
	r.live = map[string]any{}
}
