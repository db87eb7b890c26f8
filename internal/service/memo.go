// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/releaf/releaf/internal/metrics"
	"github.com/releaf/releaf/internal/model"
)

// Memo service errors.
var (
	ErrMemoNotFound = errors.New("memo not found")
	ErrMemoNotOwned = errors.New("memo not owned by user")
)

// MemoRepository is the persistence contract consumed by the memo use
// cases. Find methods report absence as (nil, nil).
type MemoRepository interface {
	CreateMemo(ctx context.Context, memo *model.Memo) error
	UpdateMemo(ctx context.Context, memo *model.Memo) error
	DeleteMemo(ctx context.Context, id string) error
	FindMemoByID(ctx context.Context, id string) (*model.Memo, error)
	FindMemosByUserID(ctx context.Context, userID string, limit, offset int) ([]*model.Memo, error)
}

// MemoService handles memo business logic.
type MemoService struct {
	repo    MemoRepository
	metrics metrics.Recorder
}

// NewMemoService creates a new MemoService.
func NewMemoService(repo MemoRepository, recorder metrics.Recorder) *MemoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MemoService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateMemoInput defines input for creating a memo.
type CreateMemoInput struct {
	UserID  string
	Title   string
	Content string
}

// CreateMemo constructs a memo with a fresh id and persists it.
// Title validation happens in the entity, before any repository call.
// A conflict on the generated id is unexpected and propagates unchanged.
func (s *MemoService) CreateMemo(ctx context.Context, input CreateMemoInput) (*model.Memo, error) {
	memo, err := model.NewMemo(ulid.Make().String(), input.UserID, input.Title, input.Content)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateMemo(ctx, memo); err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}

	s.metrics.IncMemoCreated()

	return memo, nil
}

// UpdateMemoInput defines input for updating a memo.
type UpdateMemoInput struct {
	MemoID  string
	UserID  string
	Title   string
	Content string
}

// UpdateMemo replaces a memo's title and content.
// The existence check runs before the ownership check: an absent memo is
// never reported as not owned. A not-found surfacing from the repository
// after these checks (lost race) propagates unchanged.
func (s *MemoService) UpdateMemo(ctx context.Context, input UpdateMemoInput) (*model.Memo, error) {
	memo, err := s.repo.FindMemoByID(ctx, input.MemoID)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, ErrMemoNotFound
	}
	if !memo.OwnedBy(input.UserID) {
		return nil, ErrMemoNotOwned
	}

	updated, err := memo.Update(input.Title, input.Content)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMemo(ctx, updated); err != nil {
		return nil, err
	}

	s.metrics.IncMemoUpdated()

	return updated, nil
}

// DeleteMemo removes a memo after the same existence and ownership
// checks as UpdateMemo.
func (s *MemoService) DeleteMemo(ctx context.Context, userID, memoID string) error {
	memo, err := s.repo.FindMemoByID(ctx, memoID)
	if err != nil {
		return err
	}
	if memo == nil {
		return ErrMemoNotFound
	}
	if !memo.OwnedBy(userID) {
		return ErrMemoNotOwned
	}

	if err := s.repo.DeleteMemo(ctx, memoID); err != nil {
		return err
	}

	s.metrics.IncMemoDeleted()

	return nil
}

// GetMemo returns a single memo after existence and ownership checks.
func (s *MemoService) GetMemo(ctx context.Context, userID, memoID string) (*model.Memo, error) {
	memo, err := s.repo.FindMemoByID(ctx, memoID)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, ErrMemoNotFound
	}
	if !memo.OwnedBy(userID) {
		return nil, ErrMemoNotOwned
	}

	return memo, nil
}

// ListMemosInput defines input for listing a user's memos.
type ListMemosInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListMemos returns the user's memos, newest first.
func (s *MemoService) ListMemos(ctx context.Context, input ListMemosInput) ([]*model.Memo, error) {
	if input.Limit <= 0 || input.Limit > 100 {
		input.Limit = 20
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	return s.repo.FindMemosByUserID(ctx, input.UserID, input.Limit, input.Offset)
}
