package service

import (
	"context"
	"fmt"
	"maps"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/repository"
)

// ListOptions narrows a listing.
type ListOptions struct {
	Where map[string]string
	Limit int
}

// Records is tenant-aware CRUD over one collection. For tenant scoped collections every
// call is confined to the caller's company; a record owned by another company is reported
// as not found.
type Records[T domain.Document] struct {
	def      repository.Definition[T]
	provider repository.Provider[T]
}

// NewRecords builds the CRUD service for a collection.
func NewRecords[T domain.Document](def repository.Definition[T], provider repository.Provider[T]) *Records[T] {
	return &Records[T]{def: def, provider: provider}
}

// Collection returns the collection name the records are stored in.
func (r *Records[T]) Collection() string {
	return r.def.Collection
}

// Provider exposes the repository provider, for watchers.
func (r *Records[T]) Provider() repository.Provider[T] {
	return r.provider
}

// Query builds the repository query for a company.
func (r *Records[T]) Query(companyID string, opts ListOptions) repository.Query {
	q := repository.Query{Where: opts.Where, Limit: opts.Limit}
	if r.def.TenantScoped {
		q.CompanyID = companyID
	}
	return q
}

func (r *Records[T]) List(ctx context.Context, companyID string, opts ListOptions) ([]T, error) {
	return r.provider(ctx).List(ctx, r.Query(companyID, opts))
}

func (r *Records[T]) Get(ctx context.Context, companyID, id string) (T, error) {
	record, err := r.provider(ctx).Get(ctx, id)
	if err != nil {
		return record, err
	}
	if err := r.checkOwner(companyID, id, record); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Create stores record under the caller's company.
func (r *Records[T]) Create(ctx context.Context, companyID string, record T) (T, error) {
	if r.def.TenantScoped {
		if companyID == "" {
			var zero T
			return zero, repository.ErrTenantRequired
		}
		record.Metadata().CompanyID = companyID
	}
	return r.provider(ctx).Create(ctx, record)
}

// Update merges patch into the record after checking it belongs to the caller.
// Derived fields are recomputed from the stored record before the write.
func (r *Records[T]) Update(ctx context.Context, companyID, id string, patch repository.Patch) (T, error) {
	var zero T
	current, err := r.Get(ctx, companyID, id)
	if err != nil {
		return zero, err
	}
	if r.def.Derive != nil {
		patch = maps.Clone(patch)
		if err := r.def.Derive(current, patch); err != nil {
			return zero, err
		}
	}
	return r.provider(ctx).Update(ctx, id, patch)
}

// Delete removes the record after checking it belongs to the caller.
func (r *Records[T]) Delete(ctx context.Context, companyID, id string) error {
	if _, err := r.Get(ctx, companyID, id); err != nil {
		return err
	}
	if !r.provider(ctx).Delete(ctx, id) {
		return fmt.Errorf("delete %s %s: %w", r.def.Collection, id, repository.ErrNotFound)
	}
	return nil
}

func (r *Records[T]) checkOwner(companyID, id string, record T) error {
	if !r.def.TenantScoped {
		return nil
	}
	if companyID == "" {
		return repository.ErrTenantRequired
	}
	if record.Metadata().CompanyID != companyID {
		return fmt.Errorf("%s %s: %w", r.def.Collection, id, repository.ErrNotFound)
	}
	return nil
}
