package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/middleware"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// errorMapping pairs a domain sentinel with its HTTP status and error code.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
	fallback string
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error", "invalid request"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "not found"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "forbidden"},
	{domain.ErrConflict, http.StatusConflict, "conflict", "conflict"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "authentication required"},
}

// fail maps a service error to a response. notFound names what was being
// looked up, because the handler is the layer that knows.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	for _, m := range errorMapping {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		msg := unwrapMessage(err, m.sentinel)
		if m.sentinel == domain.ErrNotFound && notFound != "" {
			msg = notFound
		}
		if msg == "" {
			msg = m.fallback
		}
		writeError(w, m.status, m.code, msg)
		return
	}
	s.log.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// unwrapMessage extracts the human-readable part that follows a wrapped
// sentinel, e.g. "service.TourService.Create: validation error: title is
// required" → "title is required". It returns "" when nothing follows.
func unwrapMessage(err error, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return ""
}

// decode reads a JSON body into v. It writes the error response itself and
// reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeError(w, http.StatusBadRequest, "bad_request", "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return false
	}
	return true
}

// pathID parses the {name} URL parameter as a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid "+name)
		return 0, false
	}
	return id, true
}

// requireUser returns the authenticated user or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	u, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return u, ok
}
