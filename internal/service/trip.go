// Package service contains the business logic for the travel journal API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// external-API calls. No SQL lives here — services depend on repo interfaces,
// not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/itinerary"
	"github.com/adendl/traveljournalai/backend/internal/repo"
)

// TokenVerifier resolves a bearer token to a username.
// Implemented by auth.Verifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PlanGenerator produces the raw completion-API envelope for a prompt.
// Implemented by itinerary.Client; tests inject a stub.
type PlanGenerator interface {
	Generate(ctx context.Context, prompt string, days int) (string, error)
}

// TripService orchestrates trip creation: identity verification, shell
// persistence, itinerary generation, plan persistence, and the detach pass
// that makes the returned graph serialization-safe.
type TripService struct {
	trips     repo.TripRepo
	users     repo.UserRepo
	verifier  TokenVerifier
	generator PlanGenerator
}

// NewTripService constructs a TripService with its collaborators.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, verifier TokenVerifier, generator PlanGenerator) *TripService {
	return &TripService{trips: trips, users: users, verifier: verifier, generator: generator}
}

// CreateTrip runs the full generation pipeline:
//
//	verify token → persist shell (status pending) → build prompt →
//	call completion API → parse → persist plan + flip status (one tx) →
//	detach back-references → return.
//
// The shell write is deliberately separate from the plan write: generation
// takes minutes and may fail, and the caller gets a durable trip id either
// way. A generation or parse failure marks the shell failed (best effort)
// and propagates unchanged — nothing here retries.
func (s *TripService) CreateTrip(ctx context.Context, token, fromCity, toCity string,
	roundtrip bool, days int, interests []string, distanceKm float64) (*domain.Trip, error) {

	user, err := s.resolveUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	if err := validateTrip(fromCity, toCity, days); err != nil {
		return nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}
	if interests == nil {
		interests = []string{}
	}

	trip, err := s.trips.Create(ctx, domain.Trip{
		UserID:     user.ID,
		FromCity:   fromCity,
		ToCity:     toCity,
		Roundtrip:  roundtrip,
		Days:       days,
		Interests:  interests,
		DistanceKm: distanceKm,
		Status:     domain.TripStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	prompt := itinerary.BuildPrompt(itinerary.PlanRequest{
		FromCity:   fromCity,
		ToCity:     toCity,
		Roundtrip:  roundtrip,
		Days:       days,
		Interests:  interests,
		DistanceKm: distanceKm,
	})

	raw, err := s.generator.Generate(ctx, prompt, days)
	if err != nil {
		s.markFailed(ctx, trip.ID)
		return nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	plan, err := itinerary.Parse(raw)
	if err != nil {
		s.markFailed(ctx, trip.ID)
		return nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	plan.Trip = &trip
	if err := s.trips.SavePlan(ctx, plan); err != nil {
		s.markFailed(ctx, trip.ID)
		return nil, fmt.Errorf("service.TripService.CreateTrip: %w", err)
	}

	trip.Status = domain.TripStatusComplete
	trip.TripPlans = []*domain.TripPlan{plan}
	trip.Detach()
	return &trip, nil
}

// ListTripsForUser returns the user's trips, newest first, with all plan
// graphs detached for safe serialization. Always returns a non-nil slice.
func (s *TripService) ListTripsForUser(ctx context.Context, user domain.User) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListTripsForUser: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	for i := range trips {
		trips[i].Detach()
	}
	return trips, nil
}

// DeleteTrip removes a trip owned by the token's user; plans cascade.
// Fails with domain.ErrAuthentication for a bad token, domain.ErrNotFound
// for an unknown trip, and domain.ErrAuthorization when the resolved user
// does not own the trip (the trip stays persisted in that case).
func (s *TripService) DeleteTrip(ctx context.Context, token string, tripID uuid.UUID) error {
	user, err := s.resolveUser(ctx, token)
	if err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	if trip.UserID != user.ID {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", domain.ErrAuthorization)
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.DeleteTrip: %w", err)
	}
	return nil
}

// resolveUser verifies the token and loads its user. An unknown username
// maps to ErrAuthentication — the token does not identify anyone.
func (s *TripService) resolveUser(ctx context.Context, token string) (domain.User, error) {
	username, err := s.verifier.Verify(token)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("unknown user %q: %w", username, domain.ErrAuthentication)
		}
		return domain.User{}, err
	}
	return user, nil
}

// markFailed flags the shell so a failed generation is never a silent orphan.
// Best effort: the original error is the one worth surfacing.
func (s *TripService) markFailed(ctx context.Context, tripID uuid.UUID) {
	if err := s.trips.SetStatus(ctx, tripID, domain.TripStatusFailed); err != nil {
		slog.WarnContext(ctx, "failed to mark trip shell as failed", "trip_id", tripID, "error", err)
	}
}

func validateTrip(fromCity, toCity string, days int) error {
	switch {
	case strings.TrimSpace(fromCity) == "":
		return fmt.Errorf("%w: fromCity is required", domain.ErrValidation)
	case strings.TrimSpace(toCity) == "":
		return fmt.Errorf("%w: toCity is required", domain.ErrValidation)
	case days < 1:
		return fmt.Errorf("%w: days must be at least 1", domain.ErrValidation)
	}
	return nil
}
