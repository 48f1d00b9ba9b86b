package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/observability"
)

// memoryRepository keeps records in process memory, in insertion order.
// Stored records are copies, so callers never share state with the store.
type memoryRepository[T domain.Document] struct {
	def     Definition[T]
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time

	mu      sync.RWMutex
	records []T
	lastID  int64
}

// NewMemoryRepository builds an in-memory repository loaded with the definition's seed records.
func NewMemoryRepository[T domain.Document](def Definition[T], logger *zap.Logger, metrics *observability.Metrics) Repository[T] {
	return newMemoryRepository(def, logger, metrics, time.Now)
}

func newMemoryRepository[T domain.Document](def Definition[T], logger *zap.Logger, metrics *observability.Metrics, now func() time.Time) *memoryRepository[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &memoryRepository[T]{
		def:     def,
		logger:  logger.With(zap.String("collection", def.Collection), zap.String("backend", string(ModeMemory))),
		metrics: metrics,
		now:     now,
	}
	if def.Seed != nil {
		for _, record := range def.Seed() {
			r.insert(record)
		}
	}
	return r
}

func (r *memoryRepository[T]) Backend() Mode {
	return ModeMemory
}

func (r *memoryRepository[T]) List(ctx context.Context, q Query) ([]T, error) {
	if err := r.def.checkScope(q.CompanyID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.records))
	for i := range r.records {
		idx := len(r.records) - 1 - i
		if r.def.Ascending {
			idx = i
		}
		record := r.records[idx]
		ok, err := r.matches(record, q)
		if err != nil {
			r.observe("list", err)
			return nil, err
		}
		if !ok {
			continue
		}
		copied, err := clone(r.def, record)
		if err != nil {
			r.observe("list", err)
			return nil, err
		}
		out = append(out, copied)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	r.logger.Debug("listed records", zap.Int("count", len(out)))
	r.observe("list", nil)
	return out, nil
}

func (r *memoryRepository[T]) matches(record T, q Query) (bool, error) {
	if r.def.TenantScoped && record.Metadata().CompanyID != q.CompanyID {
		return false, nil
	}
	if len(q.Where) == 0 {
		return true, nil
	}
	fields, err := toMap(record)
	if err != nil {
		return false, err
	}
	for k, want := range q.Where {
		if fieldText(fields[k]) != want {
			return false, nil
		}
	}
	return true, nil
}

func (r *memoryRepository[T]) Get(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		var zero T
		r.logger.Debug("record not found", zap.String("id", id))
		r.observe("get", ErrNotFound)
		return zero, ErrNotFound
	}
	record, err := clone(r.def, r.records[idx])
	r.observe("get", err)
	return record, err
}

func (r *memoryRepository[T]) Create(ctx context.Context, record T) (T, error) {
	if err := r.def.checkScope(record.Metadata().CompanyID); err != nil {
		return record, err
	}
	copied, err := clone(r.def, record)
	if err != nil {
		r.observe("create", err)
		return record, err
	}
	r.def.prepare(copied)
	if err := checkRecord(r.def, copied); err != nil {
		r.observe("create", err)
		return record, err
	}

	r.mu.Lock()
	stored := r.insert(copied)
	r.mu.Unlock()

	r.logger.Info("record created", zap.String("id", stored.Metadata().ID))
	r.observe("create", nil)
	return clone(r.def, stored)
}

// insert assigns meta fields and appends. Callers hold the write lock or own r exclusively.
func (r *memoryRepository[T]) insert(record T) T {
	now := r.now().UTC()
	meta := record.Metadata()
	meta.ID = r.nextID(now)
	meta.CreatedAt = now
	meta.UpdatedAt = now
	r.records = append(r.records, record)
	return record
}

// nextID derives the id from the clock and bumps it when two records share a millisecond.
func (r *memoryRepository[T]) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

func (r *memoryRepository[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	var zero T
	patch = patch.withoutMeta()
	if err := checkPatch(r.def, patch); err != nil {
		r.observe("update", err)
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		r.logger.Warn("update of missing record", zap.String("id", id))
		r.observe("update", ErrNotFound)
		return zero, ErrNotFound
	}

	current := r.records[idx]
	merged, err := applyPatch(r.def.New, current, patch)
	if err != nil {
		r.observe("update", err)
		return zero, err
	}
	meta := *current.Metadata()
	meta.UpdatedAt = r.now().UTC()
	*merged.Metadata() = meta
	r.records[idx] = merged

	r.logger.Info("record updated", zap.String("id", id), zap.Int("fields", len(patch)))
	r.observe("update", nil)
	return clone(r.def, merged)
}

func (r *memoryRepository[T]) Delete(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		r.logger.Warn("delete of missing record", zap.String("id", id))
		r.observe("delete", ErrNotFound)
		return false
	}
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	r.logger.Info("record deleted", zap.String("id", id))
	r.observe("delete", nil)
	return true
}

func (r *memoryRepository[T]) indexOf(id string) int {
	for i, record := range r.records {
		if record.Metadata().ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryRepository[T]) observe(op string, err error) {
	r.metrics.RecordStoreOp(r.def.Collection, op, string(ModeMemory), err)
}
