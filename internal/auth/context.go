package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userIDContextKey is the context key for the authenticated user id.
const userIDContextKey contextKey = "user_id"

// ContextWithUserID adds the authenticated user id to the context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext retrieves the authenticated user id from the context.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(userIDContextKey).(string)
	if !ok {
		return ""
	}
	return id
}

// MustUserIDFromContext retrieves the authenticated user id from the
// context. Panics if not present (use only when auth middleware has run).
func MustUserIDFromContext(ctx context.Context) string {
	id := UserIDFromContext(ctx)
	if id == "" {
		panic("user id not found - ensure auth middleware is applied")
	}
	return id
}
