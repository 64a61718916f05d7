package itinerary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adendl/traveljournalai/backend/internal/itinerary"
)

func TestBuildPrompt_EmbedsAllInputsVerbatim(t *testing.T) {
	prompt := itinerary.BuildPrompt(itinerary.PlanRequest{
		FromCity:   "Sydney",
		ToCity:     "Melbourne",
		Roundtrip:  true,
		Days:       5,
		Interests:  []string{"Beaches", "Food"},
		DistanceKm: 800.0,
	})

	assert.Contains(t, prompt, "Sydney")
	assert.Contains(t, prompt, "Melbourne")
	assert.Contains(t, prompt, "5-day")
	assert.Contains(t, prompt, "round trip")
	assert.Contains(t, prompt, "800 km")
	assert.Contains(t, prompt, "Beaches")
	assert.Contains(t, prompt, "Food")
}

func TestBuildPrompt_ContainsJSONShapeTemplate(t *testing.T) {
	prompt := itinerary.BuildPrompt(itinerary.PlanRequest{
		FromCity: "Oslo", ToCity: "Bergen", Days: 2,
	})

	// The literal shape contract the parser depends on.
	assert.Contains(t, prompt, `"days":[{"day":`)
	assert.Contains(t, prompt, `"startLocation":{"name":`)
	assert.Contains(t, prompt, `"finishLocation":`)
	assert.Contains(t, prompt, `"placesOfInterest":[{"name":`)
	assert.Contains(t, prompt, `"introduction"`)
	assert.Contains(t, prompt, `"distanceKm"`)
}

func TestBuildPrompt_EmptyInterests(t *testing.T) {
	prompt := itinerary.BuildPrompt(itinerary.PlanRequest{
		FromCity: "Oslo", ToCity: "Bergen", Days: 1, Interests: nil,
	})

	// No interests renders as an empty joined string, never a failure.
	assert.Contains(t, prompt, "interested in: .")
}

func TestBuildPrompt_OneWay(t *testing.T) {
	prompt := itinerary.BuildPrompt(itinerary.PlanRequest{
		FromCity: "Oslo", ToCity: "Bergen", Days: 3, Roundtrip: false,
	})

	assert.Contains(t, prompt, "one-way trip")
	assert.NotContains(t, prompt, "round trip")
}
