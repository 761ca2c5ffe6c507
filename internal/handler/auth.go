package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/service"
)

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if !decode(w, r, &body) {
		return
	}
	user, err := s.auth.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.metrics.ObserveLogin(false)
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
			return
		}
		s.fail(w, r, err, "")
		return
	}
	s.metrics.ObserveLogin(true)
	writeJSON(w, http.StatusOK, authResponse(user))
}

// Logout handles POST /api/auth/logout. Basic auth is stateless, so there is
// nothing to revoke.
func (s *Server) Logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if !decode(w, r, &body) {
		return
	}
	user, err := s.auth.Register(r.Context(), service.Registration{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, authResponse(user))
}
