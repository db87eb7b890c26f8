// Package model contains domain entities and their validation rules.
package model

import (
	"errors"
	"strings"
	"time"
)

// ErrTitleRequired is returned when a memo title is empty or whitespace.
var ErrTitleRequired = errors.New("memo title must not be empty")

// Memo represents a note owned by a single user. Values are treated as
// immutable: mutations return a fresh copy. Timestamps are nil until the
// store assigns them.
type Memo struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewMemo constructs a memo that has not been persisted yet.
// The title must contain at least one non-whitespace character; it is
// stored as given, the trim only feeds the check. Content may be empty.
func NewMemo(id, userID, title, content string) (*Memo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	return &Memo{
		ID:      id,
		UserID:  userID,
		Title:   title,
		Content: content,
	}, nil
}

// Update returns a copy with a new title and content. Identity and
// timestamps carry over unchanged; the store refreshes UpdatedAt on
// persist.
func (m *Memo) Update(title, content string) (*Memo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	c := *m
	c.Title = title
	c.Content = content
	return &c, nil
}

// OwnedBy reports whether the memo belongs to the given user.
func (m *Memo) OwnedBy(userID string) bool {
	return m.UserID == userID
}
