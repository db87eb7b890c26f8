package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/releaf/releaf/internal/model"
)

// CreateMemo inserts a new memo. The store assigns created_at/updated_at.
// A duplicate id surfaces as ErrConflict.
func (r *Repository) CreateMemo(ctx context.Context, memo *model.Memo) error {
	query := `
		INSERT INTO memos (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		memo.ID,
		memo.UserID,
		memo.Title,
		memo.Content,
	)

	if err != nil {
		return classify("create memo", err)
	}

	return nil
}

// UpdateMemo updates a memo's title and content.
// Returns ErrNotFound if no row matches the id.
func (r *Repository) UpdateMemo(ctx context.Context, memo *model.Memo) error {
	query := `
		UPDATE memos
		SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		memo.ID,
		memo.Title,
		memo.Content,
	)

	if err != nil {
		return classify("update memo", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update memo: %w", ErrNotFound)
	}

	return nil
}

// DeleteMemo removes a memo row.
// Returns ErrNotFound if no row matches the id.
func (r *Repository) DeleteMemo(ctx context.Context, id string) error {
	query := `DELETE FROM memos WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classify("delete memo", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete memo: %w", ErrNotFound)
	}

	return nil
}

// FindMemoByID retrieves a memo by its id.
// Returns (nil, nil) when no row exists; absence is not an error for reads.
func (r *Repository) FindMemoByID(ctx context.Context, id string) (*model.Memo, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM memos
		WHERE id = $1
	`

	memo, err := scanMemo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "find memo by id", Err: err}
	}

	return memo, nil
}

// FindMemosByUserID retrieves a user's memos, newest first.
// limit <= 0 means no limit.
func (r *Repository) FindMemosByUserID(ctx context.Context, userID string, limit, offset int) ([]*model.Memo, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM memos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	args := []any{userID}

	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "find memos by user id", Err: err}
	}
	defer rows.Close()

	var memos []*model.Memo
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			return nil, &PersistenceError{Op: "scan memo", Err: err}
		}
		memos = append(memos, memo)
	}

	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "iterate memos", Err: err}
	}

	return memos, nil
}

// scanMemo scans a single row into a Memo model.
func scanMemo(row pgx.Row) (*model.Memo, error) {
	var memo model.Memo
	err := row.Scan(
		&memo.ID,
		&memo.UserID,
		&memo.Title,
		&memo.Content,
		&memo.CreatedAt,
		&memo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &memo, nil
}
