// Package itinerary implements the AI trip-plan generation pipeline:
// prompt construction, the external chat-completion call, and parsing of the
// structured response into the domain plan graph.
package itinerary

import (
	"fmt"
	"strings"
)

// PlanRequest carries the trip parameters the prompt is rendered from.
type PlanRequest struct {
	FromCity   string
	ToCity     string
	Roundtrip  bool
	Days       int
	Interests  []string
	DistanceKm float64
}

// jsonShape is the literal example of the response shape the model is asked
// to produce. The parser in this package is the other half of this contract.
const jsonShape = `{"days":[{"day":1,"startLocation":{"name":"CityA","latitude":0.0,"longitude":0.0},"finishLocation":{"name":"CityB","latitude":0.0,"longitude":0.0},"distanceKm":0.0,"introduction":"...","placesOfInterest":[{"name":"...","description":"...","latitude":0.0,"longitude":0.0}]}]}`

// BuildPrompt renders the user prompt for the completion API. It is a pure
// function of its input and never fails: every field is embedded verbatim and
// an empty interests list simply renders as an empty joined string.
func BuildPrompt(req PlanRequest) string {
	tripKind := "one-way trip"
	if req.Roundtrip {
		tripKind = "round trip"
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"Create a %d-day %s travel itinerary from %s to %s covering a total distance of about %g km. ",
		req.Days, tripKind, req.FromCity, req.ToCity, req.DistanceKm)
	fmt.Fprintf(&b, "The traveller is interested in: %s. ", strings.Join(req.Interests, ", "))
	b.WriteString("For each day provide the start and finish locations with their names and coordinates (latitude and longitude), ")
	b.WriteString("the distance travelled that day in kilometres, a descriptive introduction for the day, ")
	b.WriteString("and a list of places of interest, each with a name, a description, and coordinates. ")
	b.WriteString("Respond with a single JSON object exactly matching this shape: ")
	b.WriteString(jsonShape)
	return b.String()
}
