package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/hris-service/internal/domain"
)

// Mode names the adapter a repository is backed by.
type Mode string

const (
	ModeLive   Mode = "live"
	ModeMemory Mode = "memory"
)

// Query narrows a List call. CompanyID is mandatory for tenant scoped collections.
type Query struct {
	CompanyID string
	Where     map[string]string
	Limit     int
}

// Repository is the CRUD contract every entity collection is served through.
type Repository[T domain.Document] interface {
	List(ctx context.Context, q Query) ([]T, error)
	// Get returns ErrNotFound when no record has the id.
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	// Update merges the patch into the stored record and returns the result.
	Update(ctx context.Context, id string, patch Patch) (T, error)
	// Delete reports whether a record was removed. Failures are logged, never returned.
	Delete(ctx context.Context, id string) bool
	Backend() Mode
}

// Definition describes how one entity is stored.
type Definition[T domain.Document] struct {
	Collection   string
	TenantScoped bool
	// Ascending lists oldest first. Collections default to newest first.
	Ascending bool
	New       func() T
	// Prepare fills defaults on a record about to be created.
	Prepare func(T)
	// Seed returns records loaded into a fresh in-memory collection.
	Seed func() []T
	// Statuses is the closed set of values the status field may take. Empty allows any.
	Statuses []string
	// Derive adds computed fields to a patch about to be merged into current.
	Derive func(current T, patch Patch) error
}

func (d Definition[T]) checkScope(companyID string) error {
	if d.TenantScoped && companyID == "" {
		return ErrTenantRequired
	}
	return nil
}

// checkStatus rejects a status outside the definition's enumeration. A missing key passes.
func (d Definition[T]) checkStatus(fields map[string]any) error {
	if len(d.Statuses) == 0 {
		return nil
	}
	v, ok := fields["status"]
	if !ok {
		return nil
	}
	if v == nil {
		return fmt.Errorf("%w: status cannot be cleared", ErrInvalidField)
	}
	status := fieldText(v)
	for _, allowed := range d.Statuses {
		if status == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: status %q", ErrInvalidField, status)
}

func (d Definition[T]) prepare(record T) {
	if d.Prepare != nil {
		d.Prepare(record)
	}
}

// Provider hands out the repository currently serving a collection.
type Provider[T domain.Document] func(ctx context.Context) Repository[T]

// Static returns a provider that always yields repo.
func Static[T domain.Document](repo Repository[T]) Provider[T] {
	return func(context.Context) Repository[T] {
		return repo
	}
}
