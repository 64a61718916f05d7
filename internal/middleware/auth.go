package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// TokenVerifier resolves a bearer token to a username.
// Implemented by auth.Verifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLoader resolves a username to its account record.
// Implemented by repo.UserRepo.
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

type contextKey struct{}

var userKey contextKey

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer ..." header, resolves it to a user, and stores the
// user in the request context for UserFrom. Requests without a valid token
// for an existing user are rejected with 401 before reaching the handler.
func NewAuthenticator(verifier TokenVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := stripBearer(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			username, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

// UserFrom returns the authenticated user stored by NewAuthenticator.
func UserFrom(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

func stripBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
