package handler

import (
	"net/http"
)

// ListTours handles GET /api/tours.
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := s.tours.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, tours)
}

// GetTour handles GET /api/tours/{id}.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tour, err := s.tours.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "tour not found")
		return
	}
	writeJSON(w, http.StatusOK, tour)
}

// ListOperatorTours handles GET /api/tours/operators/{operatorId}.
func (s *Server) ListOperatorTours(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "operatorId")
	if !ok {
		return
	}
	tours, err := s.tours.ListByOperator(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "operator not found")
		return
	}
	writeJSON(w, http.StatusOK, tours)
}

// CreateTour handles POST /api/tours.
func (s *Server) CreateTour(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req tourRequestBody
	if !decode(w, r, &req) {
		return
	}
	created, err := s.tours.Create(r.Context(), actor, req.toDomain())
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	w.Header().Set("Location", "/api/tours/"+itoa(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTour handles PUT /api/tours/{id}.
func (s *Server) UpdateTour(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req tourRequestBody
	if !decode(w, r, &req) {
		return
	}
	updated, err := s.tours.Update(r.Context(), actor, id, req.toDomain())
	if err != nil {
		s.fail(w, r, err, "tour not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTour handles DELETE /api/tours/{id}.
func (s *Server) DeleteTour(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.tours.Delete(r.Context(), actor, id); err != nil {
		s.fail(w, r, err, "tour not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
