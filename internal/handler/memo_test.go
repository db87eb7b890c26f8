package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/releaf/releaf/internal/auth"
	"github.com/releaf/releaf/internal/handler/dto"
	"github.com/releaf/releaf/internal/model"
	"github.com/releaf/releaf/internal/service"
)

// memoStore is an in-memory memo repository for handler tests.
type memoStore struct {
	mu    sync.Mutex
	memos map[string]*model.Memo
}

func newMemoStore() *memoStore {
	return &memoStore{memos: make(map[string]*model.Memo)}
}

func (s *memoStore) CreateMemo(ctx context.Context, memo *model.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos[memo.ID] = memo
	return nil
}

func (s *memoStore) UpdateMemo(ctx context.Context, memo *model.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos[memo.ID] = memo
	return nil
}

func (s *memoStore) DeleteMemo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memos, id)
	return nil
}

func (s *memoStore) FindMemoByID(ctx context.Context, id string) (*model.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memos[id], nil
}

func (s *memoStore) FindMemosByUserID(ctx context.Context, userID string, limit, offset int) ([]*model.Memo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Memo
	for _, m := range s.memos {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoTestHandler(store *memoStore) *MemoHandler {
	return NewMemoHandler(service.NewMemoService(store, nil), testLogger())
}

// doMemoRequest runs a request through a chi router so URL params resolve.
func doMemoRequest(h *MemoHandler, method, target, userID string, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/memos", h.Create)
	r.Get("/memos", h.List)
	r.Get("/memos/{id}", h.Get)
	r.Put("/memos/{id}", h.Update)
	r.Delete("/memos/{id}", h.Delete)

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMemoHandler_Create(t *testing.T) {
	h := newMemoTestHandler(newMemoStore())

	rec := doMemoRequest(h, http.MethodPost, "/memos", "user-1", `{"title":"groceries","content":"milk"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.MemoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID == "" {
		t.Error("expected a generated memo id")
	}
	if resp.UserID != "user-1" {
		t.Errorf("expected user_id user-1, got %s", resp.UserID)
	}
	if resp.Title != "groceries" {
		t.Errorf("expected title 'groceries', got %s", resp.Title)
	}
}

func TestMemoHandler_Create_BlankTitle(t *testing.T) {
	h := newMemoTestHandler(newMemoStore())

	rec := doMemoRequest(h, http.MethodPost, "/memos", "user-1", `{"title":"   "}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "TITLE_REQUIRED" {
		t.Errorf("expected code TITLE_REQUIRED, got %s", resp.Code)
	}
}

func TestMemoHandler_Create_InvalidJSON(t *testing.T) {
	h := newMemoTestHandler(newMemoStore())

	rec := doMemoRequest(h, http.MethodPost, "/memos", "user-1", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestMemoHandler_Get_NotFound(t *testing.T) {
	h := newMemoTestHandler(newMemoStore())

	rec := doMemoRequest(h, http.MethodGet, "/memos/missing", "user-1", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestMemoHandler_Update_NotOwned(t *testing.T) {
	store := newMemoStore()
	memo, err := model.NewMemo("memo-1", "owner", "title", "")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}
	store.memos[memo.ID] = memo

	h := newMemoTestHandler(store)
	rec := doMemoRequest(h, http.MethodPut, "/memos/memo-1", "intruder", `{"title":"stolen"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "MEMO_NOT_OWNED" {
		t.Errorf("expected code MEMO_NOT_OWNED, got %s", resp.Code)
	}
}

func TestMemoHandler_Update(t *testing.T) {
	store := newMemoStore()
	memo, err := model.NewMemo("memo-1", "user-1", "before", "old")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}
	store.memos[memo.ID] = memo

	h := newMemoTestHandler(store)
	rec := doMemoRequest(h, http.MethodPut, "/memos/memo-1", "user-1", `{"title":"after","content":"new"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.MemoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Title != "after" || resp.Content != "new" {
		t.Errorf("unexpected memo after update: %+v", resp)
	}
}

func TestMemoHandler_Delete(t *testing.T) {
	store := newMemoStore()
	memo, err := model.NewMemo("memo-1", "user-1", "doomed", "")
	if err != nil {
		t.Fatalf("new memo: %v", err)
	}
	store.memos[memo.ID] = memo

	h := newMemoTestHandler(store)
	rec := doMemoRequest(h, http.MethodDelete, "/memos/memo-1", "user-1", "")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if _, ok := store.memos["memo-1"]; ok {
		t.Error("expected memo to be removed from store")
	}
}

func TestMemoHandler_List_OnlyOwn(t *testing.T) {
	store := newMemoStore()
	for _, seed := range []struct{ id, user, title string }{
		{"memo-1", "user-1", "mine"},
		{"memo-2", "user-2", "theirs"},
		{"memo-3", "user-1", "also mine"},
	} {
		memo, err := model.NewMemo(seed.id, seed.user, seed.title, "")
		if err != nil {
			t.Fatalf("new memo: %v", err)
		}
		store.memos[memo.ID] = memo
	}

	h := newMemoTestHandler(store)
	rec := doMemoRequest(h, http.MethodGet, "/memos", "user-1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.MemoListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 memos, got %d", len(resp.Data))
	}
	for _, m := range resp.Data {
		if m.UserID != "user-1" {
			t.Errorf("listed memo belongs to %s", m.UserID)
		}
		if strings.Contains(m.Title, "theirs") {
			t.Errorf("another user's memo leaked into the list: %+v", m)
		}
	}
}
