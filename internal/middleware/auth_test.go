package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/releaf/releaf/internal/auth"
	"github.com/releaf/releaf/internal/model"
)

var testSecret = []byte("middleware-test-secret")

// fakeUserFinder serves users from a map; absence is (nil, nil).
type fakeUserFinder struct {
	users map[string]*model.User
}

func (f *fakeUserFinder) FindUserByID(_ context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func newAuthHandler(t *testing.T, users *fakeUserFinder) http.Handler {
	t.Helper()

	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Secret: testSecret,
		Users:  users,
	}

	return Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(auth.MustUserIDFromContext(r.Context())))
	}))
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	users := &fakeUserFinder{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "a@example.com"},
	}}
	handler := newAuthHandler(t, users)

	token, err := auth.IssueToken(testSecret, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "user-1" {
		t.Errorf("user id in context = %q, want user-1", rec.Body.String())
	}
}

func TestAuth_MissingToken(t *testing.T) {
	t.Parallel()

	handler := newAuthHandler(t, &fakeUserFinder{users: map[string]*model.User{}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("missing WWW-Authenticate header on 401")
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	handler := newAuthHandler(t, &fakeUserFinder{users: map[string]*model.User{}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_UnknownUser(t *testing.T) {
	t.Parallel()

	handler := newAuthHandler(t, &fakeUserFinder{users: map[string]*model.User{}})

	token, err := auth.IssueToken(testSecret, "ghost", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	users := &fakeUserFinder{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "a@example.com", DeletedAt: &now},
	}}
	handler := newAuthHandler(t, users)

	token, err := auth.IssueToken(testSecret, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	users := &fakeUserFinder{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "a@example.com"},
	}}
	handler := newAuthHandler(t, users)

	token, err := auth.IssueToken(testSecret, "user-1", -time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
