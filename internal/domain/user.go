package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns trips and journal entries.
// Username and Email are unique. PasswordHash is a bcrypt hash and is never
// serialized to callers.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
