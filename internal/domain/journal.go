package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a dated note pinned to a coordinate, owned by one user.
// AISummary is generated once at creation time and never updated.
// ShareableLink is a random token assigned only when the entry is public;
// anyone holding the link can read the entry without authenticating.
type JournalEntry struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	AISummary     string    `json:"aiSummary,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	ShareableLink string    `json:"shareableLink,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
