// Package config loads and validates configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client holds the configuration of the tourdesk shell.
type Client struct {
	// APIURL is the backend root including the /api prefix.
	// Defaults to "http://localhost:8080/api".
	APIURL string

	// SessionStore selects durable session storage: file, sqlite, or memory.
	// Defaults to "file".
	SessionStore string

	// SessionPath is where file and sqlite stores keep their data.
	// Defaults to <user config dir>/tourdesk/session.json (or session.db).
	SessionPath string

	// HTTPTimeout bounds each backend request. Defaults to 10s.
	HTTPTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "warn" so log
	// lines do not interleave with the shell.
	LogLevel string
}

// Server holds the configuration of the development API server.
type Server struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SeedOperatorEmail and SeedOperatorPassword are the credentials of
	// the seeded operator account.
	SeedOperatorEmail    string
	SeedOperatorPassword string
}

// LoadClient reads the shell configuration. It returns an error naming
// every variable with an invalid value.
func LoadClient() (Client, error) {
	cfg := Client{
		APIURL:       strings.TrimRight(getEnv("TOURDESK_API_URL", "http://localhost:8080/api"), "/"),
		SessionStore: strings.ToLower(getEnv("SESSION_STORE", "file")),
		SessionPath:  os.Getenv("SESSION_PATH"),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
	}

	var invalid []string

	if u, err := url.Parse(cfg.APIURL); err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		invalid = append(invalid, "TOURDESK_API_URL (want an absolute http(s) URL)")
	}

	switch cfg.SessionStore {
	case "file", "sqlite", "memory":
	default:
		invalid = append(invalid, "SESSION_STORE (want file, sqlite, or memory)")
	}

	if cfg.SessionPath == "" && cfg.SessionStore != "memory" {
		path, err := defaultSessionPath(cfg.SessionStore)
		if err != nil {
			invalid = append(invalid, "SESSION_PATH (no user config directory; set it explicitly)")
		}
		cfg.SessionPath = path
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		invalid = append(invalid, "HTTP_TIMEOUT (want a positive duration such as 10s)")
	}
	cfg.HTTPTimeout = timeout

	if !validLevel(cfg.LogLevel) {
		invalid = append(invalid, "LOG_LEVEL (want debug, info, warn, or error)")
	}

	if len(invalid) > 0 {
		return Client{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// LoadServer reads the development API configuration. It returns an error
// naming every variable with an invalid value.
func LoadServer() (Server, error) {
	cfg := Server{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CORSOrigins:          splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SeedOperatorEmail:    getEnv("SEED_OPERATOR_EMAIL", "guide@adventure.com"),
		SeedOperatorPassword: getEnv("SEED_OPERATOR_PASSWORD", "password"),
	}

	var invalid []string

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		invalid = append(invalid, "PORT (want 1-65535)")
	}

	if !validLevel(cfg.LogLevel) {
		invalid = append(invalid, "LOG_LEVEL (want debug, info, warn, or error)")
	}

	n, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || n <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES (want a positive byte count)")
	}
	cfg.MaxBodyBytes = n

	if !strings.Contains(cfg.SeedOperatorEmail, "@") {
		invalid = append(invalid, "SEED_OPERATOR_EMAIL (want an email address)")
	}

	if len(invalid) > 0 {
		return Server{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// ParseLevel converts a LOG_LEVEL value into a slog.Level, defaulting to
// info for unrecognised input.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func validLevel(s string) bool {
	var level slog.Level
	return level.UnmarshalText([]byte(s)) == nil
}

func defaultSessionPath(store string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	name := "session.json"
	if store == "sqlite" {
		name = "session.db"
	}
	return filepath.Join(dir, "tourdesk", name), nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
