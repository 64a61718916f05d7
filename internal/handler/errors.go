package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// errorResponse is the JSON envelope for every error the API returns.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error onto an HTTP status and writes the error
// envelope. Handlers never map errors themselves — the sentinel wrapped by
// the service decides the status, and anything unrecognized is a 500 with
// the detail kept out of the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrAuthorization):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedItinerary):
		status, code = http.StatusBadGateway, "upstream_error"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeBadRequest rejects a request before it reaches the service layer
// (missing or malformed body, bad path or query parameter).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorDetail{Code: "bad_request", Message: message},
	})
}

// writeJSON writes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields so
// client typos fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
