package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/observability"
)

// Queryer is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const recordColumns = "id, company_id, data, created_at, updated_at"

// postgresRepository stores each collection as a table of JSONB documents.
// Every operation is a single statement and nothing is retried.
type postgresRepository[T domain.Document] struct {
	def     Definition[T]
	db      Queryer
	table   string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewPostgresRepository builds the live adapter for a collection.
func NewPostgresRepository[T domain.Document](def Definition[T], db Queryer, logger *zap.Logger, metrics *observability.Metrics) Repository[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepository[T]{
		def:     def,
		db:      db,
		table:   pgx.Identifier{def.Collection}.Sanitize(),
		logger:  logger.With(zap.String("collection", def.Collection), zap.String("backend", string(ModeLive))),
		metrics: metrics,
	}
}

func (r *postgresRepository[T]) Backend() Mode {
	return ModeLive
}

func (r *postgresRepository[T]) List(ctx context.Context, q Query) ([]T, error) {
	if err := r.def.checkScope(q.CompanyID); err != nil {
		return nil, err
	}
	query, args := r.listQuery(q)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.fail("list", err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		record, err := r.scan(rows)
		if err != nil {
			return nil, r.fail("list", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list", err)
	}

	r.logger.Debug("listed records", zap.Int("count", len(out)))
	r.observe("list", nil)
	return out, nil
}

func (r *postgresRepository[T]) listQuery(q Query) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if r.def.TenantScoped {
		args = append(args, q.CompanyID)
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}

	keys := make([]string, 0, len(q.Where))
	for k := range q.Where {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, q.Where[k])
		conds = append(conds, fmt.Sprintf("data->>$%d = $%d", len(args)-1, len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + recordColumns + " FROM " + r.table)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	if r.def.Ascending {
		sb.WriteString(" ORDER BY created_at ASC, id ASC")
	} else {
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return sb.String(), args
}

func (r *postgresRepository[T]) Get(ctx context.Context, id string) (T, error) {
	query := "SELECT " + recordColumns + " FROM " + r.table + " WHERE id = $1"
	record, err := r.scan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		var zero T
		return zero, r.fail("get", err)
	}
	r.logger.Debug("fetched record", zap.String("id", id))
	r.observe("get", nil)
	return record, nil
}

func (r *postgresRepository[T]) Create(ctx context.Context, record T) (T, error) {
	companyID := record.Metadata().CompanyID
	if err := r.def.checkScope(companyID); err != nil {
		return record, err
	}
	prepared, err := clone(r.def, record)
	if err != nil {
		return record, r.fail("create", err)
	}
	r.def.prepare(prepared)
	if err := checkRecord(r.def, prepared); err != nil {
		return record, r.fail("create", err)
	}
	data, err := encodeData(prepared)
	if err != nil {
		return record, r.fail("create", err)
	}

	query := "INSERT INTO " + r.table + " (company_id, data) VALUES ($1, $2) RETURNING " + recordColumns
	created, err := r.scan(r.db.QueryRow(ctx, query, companyID, data))
	if err != nil {
		return record, r.fail("create", err)
	}
	r.logger.Info("record created", zap.String("id", created.Metadata().ID))
	r.observe("create", nil)
	return created, nil
}

func (r *postgresRepository[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	var zero T
	patch = patch.withoutMeta()
	if err := checkPatch(r.def, patch); err != nil {
		return zero, r.fail("update", err)
	}
	set, clear := patch.split()
	data, err := json.Marshal(set)
	if err != nil {
		return zero, r.fail("update", err)
	}
	if clear == nil {
		clear = []string{}
	}

	query := "UPDATE " + r.table + " SET data = (data || $2::jsonb) - $3::text[], updated_at = now() WHERE id = $1 RETURNING " + recordColumns
	updated, err := r.scan(r.db.QueryRow(ctx, query, id, data, clear))
	if err != nil {
		return zero, r.fail("update", err)
	}
	r.logger.Info("record updated", zap.String("id", id), zap.Int("fields", len(patch)))
	r.observe("update", nil)
	return updated, nil
}

func (r *postgresRepository[T]) Delete(ctx context.Context, id string) bool {
	tag, err := r.db.Exec(ctx, "DELETE FROM "+r.table+" WHERE id = $1", id)
	if err != nil {
		_ = r.fail("delete", err)
		return false
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("delete of missing record", zap.String("id", id))
		r.observe("delete", ErrNotFound)
		return false
	}
	r.logger.Info("record deleted", zap.String("id", id))
	r.observe("delete", nil)
	return true
}

func (r *postgresRepository[T]) scan(row pgx.Row) (T, error) {
	var (
		meta domain.Meta
		data []byte
	)
	if err := row.Scan(&meta.ID, &meta.CompanyID, &data, &meta.CreatedAt, &meta.UpdatedAt); err != nil {
		var zero T
		return zero, err
	}
	meta.CreatedAt = meta.CreatedAt.In(time.UTC)
	meta.UpdatedAt = meta.UpdatedAt.In(time.UTC)
	return decodeData(r.def, data, meta)
}

// fail logs and counts a failed operation and returns the translated error.
func (r *postgresRepository[T]) fail(op string, err error) error {
	err = translatePgError(err)
	if errors.Is(err, ErrNotFound) {
		r.logger.Debug(op + " found no record")
	} else {
		r.logger.Error(op+" failed", zap.Error(err))
	}
	r.observe(op, err)
	return err
}

func (r *postgresRepository[T]) observe(op string, err error) {
	r.metrics.RecordStoreOp(r.def.Collection, op, string(ModeLive), err)
}
