package api

import (
	"context"
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tourdesk/internal/domain"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string              `json:"name"`
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
	Role     domain.Role         `json:"role"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	ID    int64               `json:"id"`
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
	Role  string              `json:"role"`
}

// Login checks credentials with the backend.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// Logout notifies the backend that the session is over. Any response is
// accepted; only transport failures are reported.
func (c *Client) Logout(ctx context.Context, authorization string) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", authorization, nil, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil
	}
	return err
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// BasicAuth builds the Authorization header value for email/password.
func BasicAuth(email, password string) string {
	return domain.BasicAuth(email, password)
}
