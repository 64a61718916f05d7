package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/middleware"
)

type verifierFunc func(token string) (string, error)

func (f verifierFunc) Verify(token string) (string, error) { return f(token) }

type loaderFunc func(ctx context.Context, username string) (domain.User, error)

func (f loaderFunc) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return f(ctx, username)
}

func authMiddleware(t *testing.T) func(http.Handler) http.Handler {
	t.Helper()
	verifier := verifierFunc(func(token string) (string, error) {
		if token == "valid-token" {
			return "alice", nil
		}
		return "", domain.ErrAuthentication
	})
	loader := loaderFunc(func(_ context.Context, username string) (domain.User, error) {
		if username == "alice" {
			return domain.User{ID: uuid.New(), Username: "alice"}, nil
		}
		return domain.User{}, domain.ErrNotFound
	})
	return middleware.NewAuthenticator(verifier, loader)
}

func TestAuthenticator_ValidToken_InjectsUser(t *testing.T) {
	var gotUser domain.User
	var found bool
	h := authMiddleware(t)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, found = middleware.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/trips/user", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, found)
	assert.Equal(t, "alice", gotUser.Username)
}

func TestAuthenticator_MissingHeader_Returns401(t *testing.T) {
	h := authMiddleware(t)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/trips/user", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAuthenticator_InvalidToken_Returns401(t *testing.T) {
	h := authMiddleware(t)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/trips/user", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_NonBearerScheme_Returns401(t *testing.T) {
	h := authMiddleware(t)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a bearer token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/trips/user", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserFrom_EmptyContext(t *testing.T) {
	_, ok := middleware.UserFrom(context.Background())
	assert.False(t, ok)
}
