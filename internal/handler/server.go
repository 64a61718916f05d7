// Package handler implements the HTTP handlers for the travel journal API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, user.go, trip.go, journal.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/service"
)

// UserServicer defines the account operations the user handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type UserServicer interface {
	Register(ctx context.Context, username, email, password string) (domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// TripServicer defines the trip operations the trip handler depends on.
type TripServicer interface {
	CreateTrip(ctx context.Context, token, fromCity, toCity string,
		roundtrip bool, days int, interests []string, distanceKm float64) (*domain.Trip, error)
	ListTripsForUser(ctx context.Context, user domain.User) ([]domain.Trip, error)
	DeleteTrip(ctx context.Context, token string, tripID uuid.UUID) error
}

// JournalServicer defines the journal operations the journal handler depends on.
type JournalServicer interface {
	CreateEntry(ctx context.Context, user domain.User, in service.CreateEntryInput) (domain.JournalEntry, error)
	ListForUser(ctx context.Context, user domain.User) ([]domain.JournalEntry, error)
	ListPublic(ctx context.Context, page domain.PaginationParams) ([]domain.JournalEntry, error)
	ListNear(ctx context.Context, lat, lng, radiusKm float64) ([]domain.JournalEntry, error)
	GetShared(ctx context.Context, link string) (domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, user domain.User, entryID uuid.UUID) error
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	users   UserServicer
	trips   TripServicer
	journal JournalServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(users UserServicer, trips TripServicer, journal JournalServicer) *Server {
	return &Server{users: users, trips: trips, journal: journal}
}

// Routes mounts every endpoint on a chi router. requireAuth is applied to the
// routes that need an authenticated user in the request context; trip create
// and delete instead forward the raw bearer token to the service, which owns
// verification for the generation pipeline.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.Register)
		r.Post("/users/login", s.Login)

		r.Post("/trips/create", s.CreateTrip)
		r.Delete("/trips/{tripId}", s.DeleteTrip)

		r.Get("/journal/public", s.ListPublicEntries)
		r.Get("/journal/near", s.ListEntriesNear)
		r.Get("/journal/shared/{link}", s.GetSharedEntry)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/trips/user", s.ListTrips)
			r.Post("/journal", s.CreateEntry)
			r.Get("/journal", s.ListEntries)
			r.Delete("/journal/{entryId}", s.DeleteEntry)
		})
	})

	return r
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
// Returns "" when the header is missing or not a bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
