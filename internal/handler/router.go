package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/tourdesk/internal/middleware"
	"github.com/pkordes/tourdesk/spec"
)

// RouterConfig carries the cross-cutting settings of the HTTP stack.
type RouterConfig struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
	// Gatherer backs /metrics. Nil serves the default registry.
	Gatherer prometheus.Gatherer
}

// NewRouter wires the Server into a chi router with the full middleware stack.
// main.go and the in-process test backend both use it.
//
// Middleware is applied in order: RequestID → RealIP → SlogLogger →
// Recoverer → CORS → metrics. Routes under /api additionally get the body
// size limit and Basic auth.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	}
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/api", func(r chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
		}
		r.Use(middleware.NewBasicAuth(s.auth, logger))

		r.Route("/tours", func(r chi.Router) {
			r.Get("/", s.ListTours)
			r.Post("/", s.CreateTour)
			r.Get("/operators/{operatorId}", s.ListOperatorTours)
			r.Get("/{id}", s.GetTour)
			r.Put("/{id}", s.UpdateTour)
			r.Delete("/{id}", s.DeleteTour)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", s.CreateBooking)
			r.Get("/operator", s.ListOperatorBookings)
			r.Patch("/{id}/status", s.UpdateBookingStatus)
		})
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.Login)
			r.Post("/logout", s.Logout)
			r.Post("/register", s.Register)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	return r
}
