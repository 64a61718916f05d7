// Package auth implements token issuance/verification and password hashing.
// The signing key is process-wide immutable configuration: it is read once at
// startup and handed to NewVerifier, never re-read per request.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// DefaultTokenTTL matches the original login behavior: tokens are valid for
// 24 hours from issuance.
const DefaultTokenTTL = 24 * time.Hour

// Verifier issues and verifies HMAC-signed bearer tokens.
// The zero value is not usable; construct with NewVerifier.
type Verifier struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewVerifier builds a Verifier around the given shared secret.
// A ttl of zero falls back to DefaultTokenTTL. Negative values are kept
// as-is so tests can mint already-expired tokens.
func NewVerifier(secret string, ttl time.Duration) *Verifier {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Verifier{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a signed token whose subject is the given username.
func (v *Verifier) Issue(username string) (string, error) {
	now := v.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("auth.Verifier.Issue: %w", err)
	}
	return token, nil
}

// Verify validates a bearer token and returns the username it was issued to.
// Expired, malformed, unsigned, or wrongly-signed tokens all fail with
// domain.ErrAuthentication; callers never see jwt library errors.
func (v *Verifier) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("auth.Verifier.Verify: %v: %w", err, domain.ErrAuthentication)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("auth.Verifier.Verify: token has no subject: %w", domain.ErrAuthentication)
	}
	return claims.Subject, nil
}
