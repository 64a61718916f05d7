package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adendl/traveljournalai/backend/internal/auth"
	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/repo"
)

// TokenIssuer mints a signed bearer token for a username.
// Implemented by auth.Verifier.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// UserService implements registration and login.
type UserService struct {
	users  repo.UserRepo
	issuer TokenIssuer
}

// NewUserService constructs a UserService.
func NewUserService(users repo.UserRepo, issuer TokenIssuer) *UserService {
	return &UserService{users: users, issuer: issuer}
}

// Register creates a new account with a bcrypt-hashed password.
// Returns domain.ErrValidation for missing fields and domain.ErrConflict when
// the username or email is already taken.
func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateRegistration(username, email, password); err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns a signed bearer token.
// Unknown usernames and wrong passwords both fail with
// domain.ErrAuthentication, so callers cannot probe for accounts.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.UserService.Login: %w", domain.ErrAuthentication)
		}
		return "", fmt.Errorf("service.UserService.Login: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", fmt.Errorf("service.UserService.Login: %w", err)
	}

	token, err := s.issuer.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return token, nil
}

func validateRegistration(username, email, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case email == "" || !strings.Contains(email, "@"):
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	case len(password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}
