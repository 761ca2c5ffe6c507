// Package testutil provides shared helpers for integration tests.
// NewBackend runs the development API in-process so client packages can be
// exercised end to end without a network dependency.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/tourdesk/internal/handler"
	"github.com/pkordes/tourdesk/internal/observability/metrics"
	"github.com/pkordes/tourdesk/internal/repo"
	"github.com/pkordes/tourdesk/internal/service"
)

// Seed credentials of the in-process backend.
const (
	OperatorEmail = "guide@adventure.com"
	CustomerEmail = service.SeedCustomerEmail
	Password      = "password"
)

// Backend is a running development API.
type Backend struct {
	// URL is the API base, e.g. "http://127.0.0.1:53412/api".
	URL string

	Auth     *service.AuthService
	Tours    *service.TourService
	Bookings *service.BookingService
}

// NewBackend starts a seeded development API on a loopback port. It mirrors
// how cmd/api wires the server, with a cheap bcrypt cost and a private
// metrics registry. The server is closed when the test finishes.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	users := repo.NewUserRepo()
	tourRepo := repo.NewTourRepo()
	b := &Backend{
		Auth:     service.NewAuthService(users, service.WithBcryptCost(bcrypt.MinCost)),
		Tours:    service.NewTourService(tourRepo, users),
		Bookings: service.NewBookingService(repo.NewBookingRepo(), tourRepo),
	}

	seed := service.SeedAccounts{OperatorEmail: OperatorEmail, Password: Password}
	if err := service.Seed(context.Background(), b.Auth, b.Tours, seed, time.Now()); err != nil {
		t.Fatalf("testutil.NewBackend: seed: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	srv := handler.NewServer(b.Tours, b.Bookings, b.Auth,
		handler.WithMetrics(metrics.NewAPIMetrics(reg)),
		handler.WithLogger(logger),
	)
	ts := httptest.NewServer(handler.NewRouter(srv, handler.RouterConfig{
		Logger:       logger,
		MaxBodyBytes: 1 << 20,
		Gatherer:     reg,
	}))
	t.Cleanup(ts.Close)

	b.URL = ts.URL + "/api"
	return b
}
