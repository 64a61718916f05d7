package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth.HashPassword: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch fails with domain.ErrAuthentication so the service layer does
// not leak whether the user exists or the password was wrong.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("auth.CheckPassword: %w", domain.ErrAuthentication)
	}
	return nil
}
