package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adendl/traveljournalai/backend/internal/middleware"
)

type createTripRequest struct {
	FromCity   string   `json:"fromCity"`
	ToCity     string   `json:"toCity"`
	Roundtrip  bool     `json:"roundtrip"`
	Days       int      `json:"days"`
	Interests  []string `json:"interests"`
	DistanceKm float64  `json:"distanceKm"`
}

// CreateTrip handles POST /api/trips/create. This call is synchronous with
// itinerary generation and can run for minutes; the raw bearer token goes to
// the service, which verifies it before any work starts.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.CreateTrip(r.Context(), bearerToken(r),
		req.FromCity, req.ToCity, req.Roundtrip, req.Days, req.Interests, req.DistanceKm)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /api/trips/user. Requires the auth middleware.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	trips, err := s.trips.ListTripsForUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

// DeleteTrip handles DELETE /api/trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeBadRequest(w, "tripId must be a uuid")
		return
	}

	if err := s.trips.DeleteTrip(r.Context(), bearerToken(r), tripID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
