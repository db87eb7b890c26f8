package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/releaf/releaf/internal/auth"
	"github.com/releaf/releaf/internal/handler/dto"
	"github.com/releaf/releaf/internal/service"
)

// LoginRateLimiter tracks failed login attempts per client.
type LoginRateLimiter interface {
	IncrLoginAttempts(ctx context.Context, key string) (int64, error)
	ResetLoginAttempts(ctx context.Context, key string) error
}

// AuthHandler handles credential checks and token issuance.
type AuthHandler struct {
	users       *service.UserService
	limiter     LoginRateLimiter
	logger      *slog.Logger
	secret      []byte
	tokenTTL    time.Duration
	maxAttempts int64
}

// AuthHandlerConfig configures an AuthHandler.
type AuthHandlerConfig struct {
	Users    *service.UserService
	Limiter  LoginRateLimiter // nil disables rate limiting
	Logger   *slog.Logger
	Secret   []byte
	TokenTTL time.Duration
	// MaxAttempts is the failed-login ceiling per client per window.
	// Zero or negative disables the check.
	MaxAttempts int64
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		users:       cfg.Users,
		limiter:     cfg.Limiter,
		logger:      cfg.Logger,
		secret:      cfg.Secret,
		tokenTTL:    cfg.TokenTTL,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Login handles POST /api/v1/auth/login.
// Bad email and bad password produce identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required")
		return
	}

	clientKey := clientIP(r)

	user, err := h.users.GetActiveByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.rejectLogin(w, r, clientKey)
			return
		}
		h.logger.Error("login_lookup_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		h.logger.Error("login_verify_failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}
	if !ok {
		h.rejectLogin(w, r, clientKey)
		return
	}

	token, err := auth.IssueToken(h.secret, user.ID, h.tokenTTL)
	if err != nil {
		h.logger.Error("token_issue_failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	if h.limiter != nil {
		if err := h.limiter.ResetLoginAttempts(r.Context(), clientKey); err != nil {
			h.logger.Warn("reset_login_attempts_failed", "error", err)
		}
	}

	h.logger.Info("login_succeeded", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}

// rejectLogin records the failed attempt and answers 401, or 429 once
// the client has exhausted its attempts.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, clientKey string) {
	if h.limiter != nil && h.maxAttempts > 0 {
		count, err := h.limiter.IncrLoginAttempts(r.Context(), clientKey)
		if err != nil {
			h.logger.Warn("incr_login_attempts_failed", "error", err)
		} else if count > h.maxAttempts {
			h.logger.Warn("login_rate_limited", "client", clientKey, "attempts", count)
			writeError(w, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many failed login attempts")
			return
		}
	}

	writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
}

// clientIP extracts the client address for rate limiting, preferring
// X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
