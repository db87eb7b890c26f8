package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/releaf/releaf/internal/auth"
	"github.com/releaf/releaf/internal/handler/dto"
	"github.com/releaf/releaf/internal/model"
	"github.com/releaf/releaf/internal/repository"
	"github.com/releaf/releaf/internal/service"
)

// MemoHandler handles HTTP requests for memo operations.
// All routes require an authenticated user in the request context.
type MemoHandler struct {
	svc    *service.MemoService
	logger *slog.Logger
}

// NewMemoHandler creates a new MemoHandler.
func NewMemoHandler(svc *service.MemoService, logger *slog.Logger) *MemoHandler {
	return &MemoHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/memos.
func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserIDFromContext(r.Context())

	var req dto.CreateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateMemoInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}

	memo, err := h.svc.CreateMemo(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("memo_created",
		"memo_id", memo.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusCreated, dto.ToMemoResponse(memo))
}

// Get handles GET /api/v1/memos/{id}.
func (h *MemoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Memo ID is required")
		return
	}

	memo, err := h.svc.GetMemo(r.Context(), userID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMemoResponse(memo))
}

// List handles GET /api/v1/memos.
func (h *MemoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserIDFromContext(r.Context())
	query := r.URL.Query()

	input := service.ListMemosInput{UserID: userID}
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			input.Limit = parsed
		}
	}
	if o := query.Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil {
			input.Offset = parsed
		}
	}

	memos, err := h.svc.ListMemos(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMemoListResponse(memos))
}

// Update handles PUT /api/v1/memos/{id}.
func (h *MemoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Memo ID is required")
		return
	}

	var req dto.UpdateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateMemoInput{
		MemoID:  id,
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	}

	memo, err := h.svc.UpdateMemo(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("memo_updated",
		"memo_id", memo.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusOK, dto.ToMemoResponse(memo))
}

// Delete handles DELETE /api/v1/memos/{id}.
func (h *MemoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustUserIDFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Memo ID is required")
		return
	}

	if err := h.svc.DeleteMemo(r.Context(), userID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("memo_deleted", "memo_id", id, "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps memo service errors to HTTP responses.
// Repository sentinels cover races lost after the service's own checks.
func (h *MemoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMemoNotFound), errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "MEMO_NOT_FOUND", "Memo not found")
	case errors.Is(err, service.ErrMemoNotOwned):
		writeError(w, http.StatusForbidden, "MEMO_NOT_OWNED", "Memo belongs to another user")
	case errors.Is(err, model.ErrTitleRequired):
		writeError(w, http.StatusUnprocessableEntity, "TITLE_REQUIRED", "Memo title must not be empty")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "Memo conflicts with an existing record")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
