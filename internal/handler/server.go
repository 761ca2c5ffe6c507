// Package handler implements the HTTP handlers for the tourdesk development API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, tour.go, booking.go, auth.go) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/observability/metrics"
	"github.com/pkordes/tourdesk/internal/service"
)

// TourServicer defines the business operations the tour handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the service layer.
type TourServicer interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetByID(ctx context.Context, id int64) (domain.Tour, error)
	ListByOperator(ctx context.Context, operatorID int64) ([]domain.Tour, error)
	Create(ctx context.Context, actor domain.User, req domain.TourRequest) (domain.Tour, error)
	Update(ctx context.Context, actor domain.User, id int64, req domain.TourRequest) (domain.Tour, error)
	Delete(ctx context.Context, actor domain.User, id int64) error
}

// BookingServicer defines the booking operations.
type BookingServicer interface {
	Create(ctx context.Context, actor domain.User, req domain.BookingRequest) (domain.Booking, error)
	ListForOperator(ctx context.Context, actor domain.User) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, actor domain.User, id int64, status string) (domain.Booking, error)
}

// AuthServicer defines the account operations. It also backs the Basic auth
// middleware.
type AuthServicer interface {
	Register(ctx context.Context, reg service.Registration) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	tours    TourServicer
	bookings BookingServicer
	auth     AuthServicer
	metrics  *metrics.APIMetrics
	log      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records login and booking events. A nil value disables them.
func WithMetrics(m *metrics.APIMetrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer constructs the Server with all its dependencies.
func NewServer(tours TourServicer, bookings BookingServicer, auth AuthServicer, opts ...Option) *Server {
	s := &Server{tours: tours, bookings: bookings, auth: auth, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
