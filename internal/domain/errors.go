package domain

import "errors"

// ErrNotFound is returned when the requested tour, booking, or user does not
// exist. The API client maps HTTP 404 to it; the dev API maps it back to 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a client-side or business rule
// check (e.g. missing title, no guests, no date). Nothing is sent to the
// backend when a client-side check fails.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized means the backend rejected the credential or the role
// (HTTP 401/403). It always ends the current session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnreachable wraps transport-level failures: connection refused, DNS,
// timeouts. The request may never have reached the backend.
var ErrUnreachable = errors.New("backend unreachable")

// ErrRejected is any other non-success response from the backend.
var ErrRejected = errors.New("request rejected")

// ErrAuthFailed is returned by login when the backend does not accept the
// email/password pair.
var ErrAuthFailed = errors.New("authentication failed")

// ErrNoSession is returned when an authenticated action runs without a
// signed-in user, and by the operator console when no operator is signed in.
var ErrNoSession = errors.New("no active session")

// ErrInFlight is returned when a form is submitted again before its previous
// request has completed.
var ErrInFlight = errors.New("request already in flight")

// ErrForbidden is returned by the development API when an authenticated
// user acts outside their role or on another operator's data (HTTP 403).
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned by the development API when a unique value such
// as an email address is already taken (HTTP 409).
var ErrConflict = errors.New("conflict")
