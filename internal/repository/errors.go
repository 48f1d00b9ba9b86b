package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by Get and Update when the id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrTenantRequired is returned when a tenant scoped collection is used without a company id.
	ErrTenantRequired = errors.New("company id required")
	// ErrInvalidField is returned when a patch or record cannot be decoded into the entity shape.
	ErrInvalidField = errors.New("invalid field")
)

const (
	pgInvalidTextRepresentation = "22P02"
	pgUndefinedTable            = "42P01"
)

func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return fmt.Errorf("%w: %s", ErrInvalidField, pgErr.Message)
		case pgUndefinedTable:
			return fmt.Errorf("collection missing, run migrations: %w", err)
		}
	}
	return err
}
