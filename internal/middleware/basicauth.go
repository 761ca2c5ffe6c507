package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pkordes/tourdesk/internal/domain"
)

// Authenticator checks an email/password pair. It must return an error
// wrapping domain.ErrUnauthorized for bad credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
}

type userKey struct{}

// UserFrom returns the user attached by NewBasicAuth, if any.
func UserFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// WithUser attaches u to ctx. Handler tests use it to skip authentication.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// NewBasicAuth returns a middleware that resolves an HTTP Basic
// Authorization header to a user. Requests without the header pass through
// anonymously; handlers decide whether they need a user. A header that is
// malformed or carries bad credentials is rejected with 401.
func NewBasicAuth(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			email, password, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "malformed authorization header")
				return
			}
			user, err := auth.Authenticate(r.Context(), email, password)
			if err != nil {
				log.DebugContext(r.Context(), "basic auth rejected", "error", err)
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// writeError writes the API's JSON error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
