// Package domain contains the core data types for the travel journal API.
// This package has zero dependencies on other internal packages and is
// imported by every layer above it (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus records where a trip is in its generation lifecycle.
// A trip is persisted as a shell (Pending) before the itinerary is generated,
// because generation may take minutes and may fail. A failed generation marks
// the shell Failed rather than silently orphaning it.
type TripStatus string

const (
	TripStatusPending  TripStatus = "pending"
	TripStatusComplete TripStatus = "complete"
	TripStatusFailed   TripStatus = "failed"
)

// Trip is the top-level aggregate: a planned journey between two cities,
// owned by exactly one user. A trip exclusively owns its TripPlans.
//
// Interests preserve insertion order and may contain duplicates.
type Trip struct {
	ID         uuid.UUID   `json:"tripId"`
	UserID     uuid.UUID   `json:"userId"`
	FromCity   string      `json:"fromCity"`
	ToCity     string      `json:"toCity"`
	Roundtrip  bool        `json:"roundtrip"`
	Days       int         `json:"days"`
	Interests  []string    `json:"interests"`
	DistanceKm float64     `json:"distanceKm"`
	Status     TripStatus  `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	TripPlans  []*TripPlan `json:"tripPlans"`
}

// TripPlan is a generated itinerary for a trip, made of ordered day plans.
// Trip is a back-reference for navigation during construction only — it is
// NOT an ownership edge, and it must be nilled by Detach before the graph is
// handed to anything that serializes it (encoding/json refuses cycles).
type TripPlan struct {
	ID   uuid.UUID  `json:"id"`
	Trip *Trip      `json:"trip,omitempty"`
	Days []*DayPlan `json:"days"`
}

// DayPlan is one day of an itinerary. DayNumber is 1-based and unique within
// its TripPlan. TripPlan is a navigation-only back-reference (see TripPlan).
type DayPlan struct {
	ID               uuid.UUID          `json:"id"`
	TripPlan         *TripPlan          `json:"tripPlan,omitempty"`
	DayNumber        int                `json:"dayNumber"`
	StartLocation    Location           `json:"startLocation"`
	FinishLocation   Location           `json:"finishLocation"`
	DistanceKm       float64            `json:"distanceKm"`
	Introduction     string             `json:"introduction"`
	PlacesOfInterest []*PlaceOfInterest `json:"placesOfInterest"`
}

// Location is a named coordinate. It is a value object embedded in DayPlan,
// never persisted on its own.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceOfInterest is a sight or activity suggested for a day.
// DayPlan is a navigation-only back-reference (see TripPlan).
type PlaceOfInterest struct {
	ID          uuid.UUID `json:"id"`
	DayPlan     *DayPlan  `json:"dayPlan,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}

// Detach nils every back-reference reachable from the plan
// (TripPlan→Trip, DayPlan→TripPlan, PlaceOfInterest→DayPlan), making the
// graph a strict tree. The ownership edges already convey the hierarchy
// downward, so nothing is lost. Call this before returning a plan to any
// caller that will serialize it. Safe to call repeatedly and on nil.
func (p *TripPlan) Detach() {
	if p == nil {
		return
	}
	p.Trip = nil
	for _, day := range p.Days {
		if day == nil {
			continue
		}
		day.TripPlan = nil
		for _, poi := range day.PlacesOfInterest {
			if poi != nil {
				poi.DayPlan = nil
			}
		}
	}
}

// Detach breaks back-reference cycles in all plans owned by the trip.
func (t *Trip) Detach() {
	for _, plan := range t.TripPlans {
		plan.Detach()
	}
}
