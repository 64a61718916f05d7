package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adendl/traveljournalai/backend/internal/domain"
	"github.com/adendl/traveljournalai/backend/internal/middleware"
	"github.com/adendl/traveljournalai/backend/internal/service"
)

type createEntryRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PhotoURL  string  `json:"photoUrl"`
	IsPublic  bool    `json:"isPublic"`
}

// CreateEntry handles POST /api/journal. Requires the auth middleware.
func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	entry, err := s.journal.CreateEntry(r.Context(), user, service.CreateEntryInput{
		Title:     req.Title,
		Content:   req.Content,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PhotoURL:  req.PhotoURL,
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /api/journal. Requires the auth middleware.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	entries, err := s.journal.ListForUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ListPublicEntries handles GET /api/journal/public.
// Supports ?page= and ?limit= query parameters.
func (s *Server) ListPublicEntries(w http.ResponseWriter, r *http.Request) {
	page := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	entries, err := s.journal.ListPublic(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ListEntriesNear handles GET /api/journal/near?lat=&lng=&radiusKm=.
func (s *Server) ListEntriesNear(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	radius, errRadius := strconv.ParseFloat(r.URL.Query().Get("radiusKm"), 64)
	if errLat != nil || errLng != nil || errRadius != nil {
		writeBadRequest(w, "lat, lng and radiusKm must be numbers")
		return
	}

	entries, err := s.journal.ListNear(r.Context(), lat, lng, radius)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetSharedEntry handles GET /api/journal/shared/{link}.
func (s *Server) GetSharedEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.journal.GetShared(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/journal/{entryId}. Requires the auth middleware.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		writeBadRequest(w, "entryId must be a uuid")
		return
	}

	if err := s.journal.DeleteEntry(r.Context(), user, entryID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error: errorDetail{Code: "unauthorized", Message: "authentication required"},
	})
}

// queryInt parses an optional integer query parameter; nil means unset.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
