// Package main is the entry point for the tourdesk shell, the terminal
// front end of the tour marketplace.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pkordes/tourdesk/internal/api"
	"github.com/pkordes/tourdesk/internal/config"
	"github.com/pkordes/tourdesk/internal/shell"
	"github.com/pkordes/tourdesk/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("tourdesk", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", cfg.APIURL, "Backend base URL including /api")
	store := fs.String("store", cfg.SessionStore, "Session storage: file, sqlite, or memory")
	path := fs.String("session", cfg.SessionPath, "Session storage path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Logs go to stderr so they never interleave with the page on stdout.
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: config.ParseLevel(cfg.LogLevel),
	}))

	durable, closeStore, err := storage.Open(ctx, *store, *path, logger)
	if err != nil {
		return fmt.Errorf("failed to open session storage: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close session storage", "error", err)
		}
	}()

	client := api.NewClient(*apiURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
	)
	logger.Debug("shell starting", "api", client.BaseURL(), "store", *store)

	return shell.New(client, durable, stdin, stdout, shell.WithLogger(logger)).Run(ctx)
}
