// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/releaf/releaf/internal/model"
)

// CreateMemoRequest represents the request body for creating a memo.
type CreateMemoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// UpdateMemoRequest represents the request body for updating a memo.
type UpdateMemoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// MemoResponse represents a memo in API responses.
type MemoResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// MemoListResponse represents a page of memos.
type MemoListResponse struct {
	Data []MemoResponse `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToMemoResponse converts a Memo model to MemoResponse DTO.
func ToMemoResponse(memo *model.Memo) *MemoResponse {
	return &MemoResponse{
		ID:        memo.ID,
		UserID:    memo.UserID,
		Title:     memo.Title,
		Content:   memo.Content,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}
}

// ToMemoListResponse converts a slice of Memo models to MemoListResponse.
func ToMemoListResponse(memos []*model.Memo) *MemoListResponse {
	responses := make([]MemoResponse, len(memos))
	for i, memo := range memos {
		responses[i] = *ToMemoResponse(memo)
	}
	return &MemoListResponse{Data: responses}
}
