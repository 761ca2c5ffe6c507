package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/tourdesk/internal/domain"
)

// CreateBooking handles POST /api/bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req domain.BookingRequest
	if !decode(w, r, &req) {
		return
	}
	created, err := s.bookings.Create(r.Context(), actor, req)
	if err != nil {
		s.fail(w, r, err, "tour not found")
		return
	}
	s.metrics.ObserveBooking("created", string(created.Status))
	w.Header().Set("Location", "/api/bookings/"+itoa(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

// ListOperatorBookings handles GET /api/bookings/operator.
func (s *Server) ListOperatorBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	bookings, err := s.bookings.ListForOperator(r.Context(), actor)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// UpdateBookingStatus handles PATCH /api/bookings/{id}/status.
func (s *Server) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body statusBody
	if !decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Status) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "status must be provided")
		return
	}
	updated, err := s.bookings.UpdateStatus(r.Context(), actor, id, body.Status)
	if err != nil {
		s.fail(w, r, err, "booking not found")
		return
	}
	s.metrics.ObserveBooking("status_changed", string(updated.Status))
	writeJSON(w, http.StatusOK, updated)
}
