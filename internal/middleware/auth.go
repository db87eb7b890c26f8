package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/releaf/releaf/internal/auth"
	"github.com/releaf/releaf/internal/cache"
	"github.com/releaf/releaf/internal/metrics"
	"github.com/releaf/releaf/internal/model"
)

// UserFinder loads a user by id for the auth middleware.
// Absence is reported as (nil, nil).
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Secret  []byte
	Users   UserFinder
	Cache   *cache.Cache
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates requests via a JWT
// bearer token. The token's subject must reference an account that
// still exists and has not been soft-deleted; a short-lived cached
// snapshot avoids one repository round-trip per request.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			userID, err := auth.ParseToken(cfg.Secret, token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Check the snapshot cache before touching the database.
			if cfg.Cache != nil {
				snap, _ := cfg.Cache.GetUserSnapshot(r.Context(), userID)
				if snap != nil {
					recorder.IncAuthCacheHit()
					if snap.Deleted {
						writeAuthError(w)
						return
					}
					ctx := auth.ContextWithUserID(r.Context(), userID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				recorder.IncAuthCacheMiss()
			}

			user, err := cfg.Users.FindUserByID(r.Context(), userID)
			if err != nil {
				cfg.Logger.Error("database error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}
			if user == nil || user.IsDeleted() {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "unknown_or_deleted_user"),
					slog.String("user_id", userID),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			if cfg.Cache != nil {
				_ = cfg.Cache.SetUserSnapshot(r.Context(), &cache.UserSnapshot{
					UserID:  userID,
					Deleted: false,
				})
			}

			ctx := auth.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// writeAuthError writes a uniform 401 response. The body never says
// why authentication failed.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="releaf"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","code":"UNAUTHORIZED"}`))
}
