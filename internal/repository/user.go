package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/releaf/releaf/internal/model"
)

// CreateUser inserts a new user. A duplicate id or email surfaces as
// ErrConflict; the unique constraint on email is the only place email
// uniqueness is enforced.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
	)

	if err != nil {
		return classify("create user", err)
	}

	return nil
}

// UpdateUser persists a user's mutable fields, including the soft-delete
// timestamp. Returns ErrNotFound if no row matches, ErrConflict if the
// email is taken by a different row.
func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, deleted_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.DeletedAt,
	)

	if err != nil {
		return classify("update user", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user: %w", ErrNotFound)
	}

	return nil
}

// DeleteUser removes a user row outright. Application-level deletion is
// the soft kind (UpdateUser with DeletedAt set); this exists for the
// store contract and for cleanup tooling.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classify("delete user", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user: %w", ErrNotFound)
	}

	return nil
}

// FindUserByID retrieves a user by id, deleted or not.
// Returns (nil, nil) when no row exists.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "find user by id", Err: err}
	}

	return user, nil
}

// FindUserByEmail retrieves a user by email address.
// Returns (nil, nil) when no row exists.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "find user by email", Err: err}
	}

	return user, nil
}

// CountUsers returns the number of user rows, deleted ones included.
// Backs the health endpoint.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, &PersistenceError{Op: "count users", Err: err}
	}
	return count, nil
}

// scanUser scans a single row into a User model.
func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
