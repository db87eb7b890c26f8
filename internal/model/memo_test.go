package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewMemo(t *testing.T) {
	t.Parallel()

	memo, err := NewMemo("memo-1", "user-1", "Test Title", "Test Content")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}

	if memo.ID != "memo-1" {
		t.Errorf("ID = %s, want memo-1", memo.ID)
	}
	if memo.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", memo.UserID)
	}
	if memo.Title != "Test Title" {
		t.Errorf("Title = %s, want Test Title", memo.Title)
	}
	if memo.Content != "Test Content" {
		t.Errorf("Content = %s, want Test Content", memo.Content)
	}
	if memo.CreatedAt != nil || memo.UpdatedAt != nil {
		t.Errorf("timestamps should be nil before persistence")
	}
}

func TestNewMemo_TitleRequired(t *testing.T) {
	t.Parallel()

	titles := []string{"", " ", "   ", "\t", "\n", " \t \n "}
	for _, title := range titles {
		if _, err := NewMemo("memo-1", "user-1", title, "content"); !errors.Is(err, ErrTitleRequired) {
			t.Errorf("NewMemo(title=%q) error = %v, want ErrTitleRequired", title, err)
		}
	}
}

func TestNewMemo_TitleWithSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	memo, err := NewMemo("memo-1", "user-1", "  x  ", "")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}
	// The title is kept as given; only the non-empty check trims.
	if memo.Title != "  x  " {
		t.Errorf("Title = %q, want %q", memo.Title, "  x  ")
	}
}

func TestNewMemo_EmptyContentAllowed(t *testing.T) {
	t.Parallel()

	if _, err := NewMemo("memo-1", "user-1", "title", ""); err != nil {
		t.Fatalf("empty content should be allowed, got %v", err)
	}
}

func TestMemo_Update(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)
	memo := &Memo{
		ID:        "memo-1",
		UserID:    "user-1",
		Title:     "old",
		Content:   "old content",
		CreatedAt: &created,
		UpdatedAt: &updated,
	}

	next, err := memo.Update("new", "new content")
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if next.ID != memo.ID || next.UserID != memo.UserID {
		t.Errorf("identity changed: got %s/%s", next.ID, next.UserID)
	}
	if next.Title != "new" || next.Content != "new content" {
		t.Errorf("Title/Content = %s/%s, want new/new content", next.Title, next.Content)
	}
	if next.CreatedAt != memo.CreatedAt || next.UpdatedAt != memo.UpdatedAt {
		t.Errorf("timestamps should carry over unchanged")
	}

	// Original value untouched.
	if memo.Title != "old" {
		t.Errorf("original mutated: Title = %s", memo.Title)
	}
}

func TestMemo_Update_TitleRequired(t *testing.T) {
	t.Parallel()

	memo, err := NewMemo("memo-1", "user-1", "title", "content")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}

	if _, err := memo.Update("  \t ", "content"); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("update with blank title: error = %v, want ErrTitleRequired", err)
	}
}

func TestMemo_OwnedBy(t *testing.T) {
	t.Parallel()

	memo, err := NewMemo("memo-789", "owner-123", "title", "")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}

	if !memo.OwnedBy("owner-123") {
		t.Errorf("expected memo to be owned by owner-123")
	}
	if memo.OwnedBy("other-user-456") {
		t.Errorf("expected memo not to be owned by other-user-456")
	}
}
