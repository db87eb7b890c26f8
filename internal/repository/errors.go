package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Store-agnostic error taxonomy surfaced by every mutation method.
// Read methods signal absence with a nil result instead.
var (
	// ErrNotFound indicates the targeted row does not exist for an
	// update or delete.
	ErrNotFound = errors.New("row not found")
	// ErrConflict indicates a uniqueness constraint violation, e.g. a
	// duplicate id on create or a duplicate email on update.
	ErrConflict = errors.New("uniqueness conflict")
)

// PersistenceError is the catch-all for storage failures that are neither
// a conflict nor a missing row. It always carries the original cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// classify maps a driver error to the taxonomy. Unique violations become
// ErrConflict; anything unrecognized falls through to PersistenceError.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return &PersistenceError{Op: op, Err: err}
}
