package itinerary_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/itinerary"
)

// envelopeWith wraps an inner itinerary document in the completion API
// envelope, JSON-encoding it into choices[0].message.content the way the
// real API does.
func envelopeWith(t *testing.T, inner any) string {
	t.Helper()
	content, err := json.Marshal(inner)
	require.NoError(t, err)
	env := map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": string(content)}},
		},
	}
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	return string(raw)
}

// dayDoc returns a fully populated day document for splicing into fixtures.
func dayDoc(day int, pois int) map[string]any {
	places := make([]any, 0, pois)
	for i := 0; i < pois; i++ {
		places = append(places, map[string]any{
			"name":        fmt.Sprintf("Sight %d-%d", day, i+1),
			"description": "worth a look",
			"latitude":    -37.8 - float64(i),
			"longitude":   144.9 + float64(i),
		})
	}
	return map[string]any{
		"day":            day,
		"startLocation":  map[string]any{"name": "Sydney", "latitude": -33.8688, "longitude": 151.2093},
		"finishLocation": map[string]any{"name": "Melbourne", "latitude": -37.8136, "longitude": 144.9631},
		"distanceKm":     800.0,
		"introduction":   "Welcome to Melbourne.",
		"placesOfInterest": places,
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// 3 days with 2, 0, and 3 places of interest respectively.
	poisPerDay := []int{2, 0, 3}
	days := make([]any, 0, len(poisPerDay))
	for i, pois := range poisPerDay {
		days = append(days, dayDoc(i+1, pois))
	}
	raw := envelopeWith(t, map[string]any{"days": days})

	plan, err := itinerary.Parse(raw)

	require.NoError(t, err)
	require.Len(t, plan.Days, len(poisPerDay))
	for i, day := range plan.Days {
		assert.Equal(t, i+1, day.DayNumber, "days must come back in input order")
		assert.Len(t, day.PlacesOfInterest, poisPerDay[i])
		assert.Equal(t, "Sydney", day.StartLocation.Name)
		assert.Equal(t, -33.8688, day.StartLocation.Latitude)
		assert.Equal(t, "Melbourne", day.FinishLocation.Name)
		assert.Equal(t, 800.0, day.DistanceKm)
		assert.Equal(t, "Welcome to Melbourne.", day.Introduction)

		// Back-references are wired for construction; orchestrator detaches later.
		assert.Same(t, plan, day.TripPlan)
		for _, poi := range day.PlacesOfInterest {
			assert.Same(t, day, poi.DayPlan)
		}
	}
}

func TestParse_PlaceFieldsSurvive(t *testing.T) {
	raw := envelopeWith(t, map[string]any{"days": []any{dayDoc(1, 1)}})

	plan, err := itinerary.Parse(raw)

	require.NoError(t, err)
	poi := plan.Days[0].PlacesOfInterest[0]
	assert.Equal(t, "Sight 1-1", poi.Name)
	assert.Equal(t, "worth a look", poi.Description)
	assert.Equal(t, -37.8, poi.Latitude)
	assert.Equal(t, 144.9, poi.Longitude)
}

func TestParse_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(day map[string]any)
	}{
		{"no day index", func(d map[string]any) { delete(d, "day") }},
		{"no startLocation", func(d map[string]any) { delete(d, "startLocation") }},
		{"no finishLocation", func(d map[string]any) { delete(d, "finishLocation") }},
		{"no distanceKm", func(d map[string]any) { delete(d, "distanceKm") }},
		{"no introduction", func(d map[string]any) { delete(d, "introduction") }},
		{"no placesOfInterest", func(d map[string]any) { delete(d, "placesOfInterest") }},
		{"startLocation missing latitude", func(d map[string]any) {
			delete(d["startLocation"].(map[string]any), "latitude")
		}},
		{"poi missing description", func(d map[string]any) {
			poi := d["placesOfInterest"].([]any)[0].(map[string]any)
			delete(poi, "description")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := dayDoc(1, 1)
			tc.mutate(day)
			raw := envelopeWith(t, map[string]any{"days": []any{day}})

			plan, err := itinerary.Parse(raw)

			assert.ErrorIs(t, err, domain.ErrMalformedItinerary)
			assert.Nil(t, plan, "no partial plan on failure")
		})
	}
}

func TestParse_WrongFieldType(t *testing.T) {
	day := dayDoc(1, 1)
	day["distanceKm"] = "eight hundred" // string where a float is required

	raw := envelopeWith(t, map[string]any{"days": []any{day}})

	_, err := itinerary.Parse(raw)

	assert.ErrorIs(t, err, domain.ErrMalformedItinerary)
}

func TestParse_NoChoices(t *testing.T) {
	_, err := itinerary.Parse(`{"choices":[]}`)

	assert.ErrorIs(t, err, domain.ErrMalformedItinerary)
}

func TestParse_EnvelopeNotJSON(t *testing.T) {
	_, err := itinerary.Parse(`<html>gateway timeout</html>`)

	assert.ErrorIs(t, err, domain.ErrMalformedItinerary)
}

func TestParse_InnerContentNotJSON(t *testing.T) {
	env := map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": "sorry, I can't do that"}},
		},
	}
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = itinerary.Parse(string(raw))

	assert.ErrorIs(t, err, domain.ErrMalformedItinerary)
}
