// Package session holds the signed-in identity. Operator sessions are
// mirrored to durable storage so they survive navigation; customer sessions
// live in memory only.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tourdesk/internal/api"
	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/storage"
)

// StorageKey is the durable entry holding the serialised operator session.
const StorageKey = "operatorSession"

// User-visible status messages.
const (
	MsgLoginFailed      = "Login failed. Check your email and password."
	MsgLoginUnreachable = "Unable to reach the server. Please try again."
	MsgSignedOut        = "Signed out."
	MsgSessionEnded     = "Your session has ended. Please log in again."
	MsgRegisterFailed   = "Unable to create your account."
	MsgEmailTaken       = "An account with that email already exists."
)

// Backend is the part of the API client the store talks to.
type Backend interface {
	Login(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error)
	Logout(ctx context.Context, authorization string) error
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
}

// Store owns the current session. It is safe for concurrent use.
type Store struct {
	backend Backend
	durable storage.Store
	log     *slog.Logger

	mu      sync.RWMutex
	current *domain.Session
	status  domain.Status
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore returns an anonymous store. Call Restore to pick up a saved
// operator session.
func NewStore(backend Backend, durable storage.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		durable: durable,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the signed-in session, if any.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Status is the latest login/logout status line.
func (s *Store) Status() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// ClearStatus hides the status line.
func (s *Store) ClearStatus() {
	s.mu.Lock()
	s.status = domain.Status{}
	s.mu.Unlock()
}

// Login exchanges credentials for a session. Any failure leaves the store
// anonymous, sets an error status, and returns an error wrapping
// domain.ErrAuthFailed.
func (s *Store) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	resp, err := s.backend.Login(ctx, api.LoginRequest{
		Email:    openapi_types.Email(email),
		Password: password,
	})
	if err != nil {
		msg := MsgLoginFailed
		if errors.Is(err, domain.ErrUnreachable) {
			msg = MsgLoginUnreachable
		}
		s.destroy(ctx, domain.Failure(msg))
		return domain.Session{}, fmt.Errorf("session.Store.Login: %w: %w", domain.ErrAuthFailed, err)
	}

	role, ok := domain.ParseRole(resp.Role)
	if !ok || resp.ID <= 0 {
		s.destroy(ctx, domain.Failure(MsgLoginFailed))
		return domain.Session{}, fmt.Errorf("session.Store.Login: %w: unusable login response (role %q)", domain.ErrAuthFailed, resp.Role)
	}
	if resp.Email == "" {
		resp.Email = openapi_types.Email(email)
	}

	sess := domain.NewSession(resp.ID, resp.Name, resp.Email, role, password)
	if role == domain.RoleOperator {
		s.persist(ctx, sess)
	} else {
		s.forget(ctx)
	}

	s.mu.Lock()
	s.current = &sess
	s.status = domain.Success(fmt.Sprintf("Signed in as %s.", sess.Name))
	s.mu.Unlock()

	s.log.InfoContext(ctx, "signed in", "user_id", sess.ID, "role", sess.Role)
	return sess, nil
}

// Register creates an account and signs in with it.
func (s *Store) Register(ctx context.Context, name, email, password string, role domain.Role) (domain.Session, error) {
	_, err := s.backend.Register(ctx, api.RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    openapi_types.Email(strings.TrimSpace(email)),
		Password: password,
		Role:     role,
	})
	if err != nil {
		msg := MsgRegisterFailed
		var se *api.StatusError
		switch {
		case errors.As(err, &se) && se.Code == http.StatusConflict:
			msg = MsgEmailTaken
		case errors.Is(err, domain.ErrUnreachable):
			msg = MsgLoginUnreachable
		}
		s.mu.Lock()
		s.status = domain.Failure(msg)
		s.mu.Unlock()
		return domain.Session{}, fmt.Errorf("session.Store.Register: %w", err)
	}
	return s.Login(ctx, email, password)
}

// Restore adopts a saved operator session. Entries that are malformed or
// belong to another role are deleted. It never reports an error; absence
// of a usable entry simply means anonymous.
func (s *Store) Restore(ctx context.Context) (domain.Session, bool) {
	raw, err := s.durable.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WarnContext(ctx, "read saved session", "error", err)
		}
		return domain.Session{}, false
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || !sess.WellFormed() || sess.Role != domain.RoleOperator {
		s.log.WarnContext(ctx, "discarding saved session", "error", err)
		s.forget(ctx)
		return domain.Session{}, false
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return sess, true
}

// Logout ends the session. The backend is notified on a best-effort basis.
func (s *Store) Logout(ctx context.Context) {
	if sess, ok := s.Current(); ok {
		if err := s.backend.Logout(ctx, sess.Authorization()); err != nil {
			s.log.WarnContext(ctx, "logout request failed", "error", err)
		}
	}
	s.destroy(ctx, domain.Info(MsgSignedOut))
}

// Authorized runs fn with the current auth header. A rejection from the
// backend (domain.ErrUnauthorized) destroys the session before the error
// is returned, so a rejected credential is never reused.
func (s *Store) Authorized(ctx context.Context, fn func(authorization string) error) error {
	sess, ok := s.Current()
	if !ok {
		return domain.ErrNoSession
	}
	err := fn(sess.Authorization())
	if errors.Is(err, domain.ErrUnauthorized) {
		s.log.WarnContext(ctx, "credential rejected, ending session", "user_id", sess.ID)
		s.destroy(ctx, domain.Failure(MsgSessionEnded))
	}
	return err
}

func (s *Store) destroy(ctx context.Context, status domain.Status) {
	s.forget(ctx)
	s.mu.Lock()
	s.current = nil
	s.status = status
	s.mu.Unlock()
}

func (s *Store) persist(ctx context.Context, sess domain.Session) {
	b, err := json.Marshal(sess)
	if err == nil {
		err = s.durable.Set(ctx, StorageKey, string(b))
	}
	if err != nil {
		s.log.WarnContext(ctx, "save session", "error", err)
	}
}

func (s *Store) forget(ctx context.Context) {
	if err := s.durable.Delete(ctx, StorageKey); err != nil {
		s.log.WarnContext(ctx, "clear saved session", "error", err)
	}
}
