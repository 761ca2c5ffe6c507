// Package main is the entry point for the tourdesk development API: an
// in-memory stand-in for the tour marketplace backend.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pkordes/tourdesk/internal/config"
	"github.com/pkordes/tourdesk/internal/handler"
	"github.com/pkordes/tourdesk/internal/observability/metrics"
	"github.com/pkordes/tourdesk/internal/repo"
	"github.com/pkordes/tourdesk/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// --- Config -----------------------------------------------------------
	cfg, err := config.LoadServer()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// --- Storage & services -------------------------------------------------
	// Everything lives in memory; a restart returns to the seed data.
	users := repo.NewUserRepo()
	tourRepo := repo.NewTourRepo()
	auth := service.NewAuthService(users)
	tours := service.NewTourService(tourRepo, users)
	bookings := service.NewBookingService(repo.NewBookingRepo(), tourRepo)

	seed := service.SeedAccounts{OperatorEmail: cfg.SeedOperatorEmail, Password: cfg.SeedOperatorPassword}
	if err := service.Seed(context.Background(), auth, tours, seed, time.Now()); err != nil {
		slog.Error("failed to seed data", "error", err)
		os.Exit(1)
	}
	slog.Info("seed data loaded", "operator", cfg.SeedOperatorEmail, "customer", service.SeedCustomerEmail)

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	apiMetrics := metrics.NewAPIMetrics(reg)

	// --- Router -----------------------------------------------------------
	srv := handler.NewServer(tours, bookings, auth,
		handler.WithMetrics(apiMetrics),
		handler.WithLogger(logger),
	)
	router := handler.NewRouter(srv, handler.RouterConfig{
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Gatherer:     reg,
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
