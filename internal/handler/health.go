package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// serviceName identifies this service in health responses.
const serviceName = "releaf-api"

// Pinger checks connectivity to a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UserCounter reports the total number of user rows.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db    Pinger
	cache Pinger
	users UserCounter
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for any dependency that is not configured.
func NewHealthHandler(db, cache Pinger, users UserCounter) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
		users: users,
	}
}

// HealthResponse represents the application health response.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	UserCount int64  `json:"userCount"`
}

// ProbeResponse represents a liveness or readiness probe response.
type ProbeResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports service status with the current user count. The count
// includes soft-deleted accounts.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var count int64
	if h.users != nil {
		n, err := h.users.Count(ctx)
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, ProbeResponse{Status: "unhealthy"})
			return
		}
		count = n
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		UserCount: count,
	})
}

// Healthz is a liveness probe endpoint. No dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint. It checks all dependencies and
// returns 200 only if all are healthy.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			checks["postgres"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	} else {
		checks["postgres"] = "not configured"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "not configured"
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ProbeResponse{
		Status: status,
		Checks: checks,
	})
}
