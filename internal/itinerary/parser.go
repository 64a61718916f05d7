package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// envelope mirrors the outer JSON object returned by the completion API.
// The generated itinerary is carried as a JSON-encoded string inside
// choices[0].message.content.
type envelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Raw itinerary types use pointer fields so that an absent required field is
// distinguishable from a zero value and fails the whole parse.
type rawItinerary struct {
	Days []rawDay `json:"days"`
}

type rawDay struct {
	Day              *int         `json:"day"`
	StartLocation    *rawLocation `json:"startLocation"`
	FinishLocation   *rawLocation `json:"finishLocation"`
	DistanceKm       *float64     `json:"distanceKm"`
	Introduction     *string      `json:"introduction"`
	PlacesOfInterest *[]rawPlace  `json:"placesOfInterest"`
}

type rawLocation struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type rawPlace struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Content extracts the generated payload string from a raw envelope.
// Fails with domain.ErrMalformedItinerary when the envelope is not valid
// JSON or carries no choices.
func Content(raw string) (string, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return "", fmt.Errorf("itinerary.Content: decode envelope: %v: %w", err, domain.ErrMalformedItinerary)
	}
	if len(env.Choices) == 0 {
		return "", fmt.Errorf("itinerary.Content: envelope has no choices: %w", domain.ErrMalformedItinerary)
	}
	content := env.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("itinerary.Content: empty message content: %w", domain.ErrMalformedItinerary)
	}
	return content, nil
}

// Parse validates the raw envelope text and converts it into a TripPlan graph
// with back-references wired (DayPlan→TripPlan, PlaceOfInterest→DayPlan).
// The Trip back-reference is the orchestrator's to set, since only it holds
// the owning trip.
//
// Parsing is all-or-nothing: a missing or mistyped required field anywhere in
// the payload fails with domain.ErrMalformedItinerary and no partial plan is
// returned. Day indices are read as-is; the orchestrator relies on insertion
// order, so no uniqueness or sequentiality check happens here.
func Parse(raw string) (*domain.TripPlan, error) {
	content, err := Content(raw)
	if err != nil {
		return nil, err
	}

	var it rawItinerary
	if err := json.Unmarshal([]byte(content), &it); err != nil {
		return nil, fmt.Errorf("itinerary.Parse: decode itinerary: %v: %w", err, domain.ErrMalformedItinerary)
	}

	plan := &domain.TripPlan{Days: make([]*domain.DayPlan, 0, len(it.Days))}
	for i, rd := range it.Days {
		day, err := buildDay(rd)
		if err != nil {
			return nil, fmt.Errorf("itinerary.Parse: days[%d]: %w", i, err)
		}
		day.TripPlan = plan
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

func buildDay(rd rawDay) (*domain.DayPlan, error) {
	switch {
	case rd.Day == nil:
		return nil, fmt.Errorf("missing day: %w", domain.ErrMalformedItinerary)
	case rd.DistanceKm == nil:
		return nil, fmt.Errorf("missing distanceKm: %w", domain.ErrMalformedItinerary)
	case rd.Introduction == nil:
		return nil, fmt.Errorf("missing introduction: %w", domain.ErrMalformedItinerary)
	case rd.PlacesOfInterest == nil:
		return nil, fmt.Errorf("missing placesOfInterest: %w", domain.ErrMalformedItinerary)
	}

	start, err := buildLocation("startLocation", rd.StartLocation)
	if err != nil {
		return nil, err
	}
	finish, err := buildLocation("finishLocation", rd.FinishLocation)
	if err != nil {
		return nil, err
	}

	day := &domain.DayPlan{
		DayNumber:        *rd.Day,
		StartLocation:    start,
		FinishLocation:   finish,
		DistanceKm:       *rd.DistanceKm,
		Introduction:     *rd.Introduction,
		PlacesOfInterest: make([]*domain.PlaceOfInterest, 0, len(*rd.PlacesOfInterest)),
	}

	for i, rp := range *rd.PlacesOfInterest {
		if rp.Name == nil || rp.Description == nil || rp.Latitude == nil || rp.Longitude == nil {
			return nil, fmt.Errorf("placesOfInterest[%d]: missing required field: %w", i, domain.ErrMalformedItinerary)
		}
		day.PlacesOfInterest = append(day.PlacesOfInterest, &domain.PlaceOfInterest{
			DayPlan:     day,
			Name:        *rp.Name,
			Description: *rp.Description,
			Latitude:    *rp.Latitude,
			Longitude:   *rp.Longitude,
		})
	}
	return day, nil
}

func buildLocation(field string, rl *rawLocation) (domain.Location, error) {
	if rl == nil {
		return domain.Location{}, fmt.Errorf("missing %s: %w", field, domain.ErrMalformedItinerary)
	}
	if rl.Name == nil || rl.Latitude == nil || rl.Longitude == nil {
		return domain.Location{}, fmt.Errorf("%s: missing required field: %w", field, domain.ErrMalformedItinerary)
	}
	return domain.Location{Name: *rl.Name, Latitude: *rl.Latitude, Longitude: *rl.Longitude}, nil
}
