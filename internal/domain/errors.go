package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, days < 1).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a uniqueness constraint would be violated
// (e.g. registering a username or email that already exists).
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("already exists")

// ErrAuthentication is returned when a bearer token is missing, expired,
// unparseable, or does not resolve to a known user.
// Handlers should map this to HTTP 401 Unauthorized.
var ErrAuthentication = errors.New("authentication failed")

// ErrAuthorization is returned when a valid identity attempts an operation
// on a resource it does not own.
// Handlers should map this to HTTP 403 Forbidden.
var ErrAuthorization = errors.New("not authorized")

// ErrUpstream is returned when the external completion API answers with a
// non-2xx status, an empty body, or a network failure. Nothing in the
// request pipeline retries the call — the failure is fatal for the request.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream completion API failure")

// ErrMalformedItinerary is returned when the completion API response cannot
// be parsed into a full itinerary: empty choices, invalid JSON at either
// nesting level, or a missing/mistyped required field.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrMalformedItinerary = errors.New("malformed itinerary")
