// Package service contains the business logic of the development API.
// Services validate inputs, enforce role and ownership rules, and orchestrate
// repo calls. Storage details live behind the repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/repo"
)

// Registration is the input to AuthService.Register.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService registers accounts and checks credentials.
type AuthService struct {
	users repo.UserRepo
	cost  int
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithBcryptCost overrides the bcrypt work factor. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.cost = cost }
}

// NewAuthService constructs an AuthService backed by the provided UserRepo.
func NewAuthService(users repo.UserRepo, opts ...AuthOption) *AuthService {
	s := &AuthService{users: users, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and stores a new account.
// Returns domain.ErrValidation for bad input and domain.ErrConflict when the
// email is already registered. A blank role registers a customer.
func (s *AuthService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	user, err := validateRegistration(reg)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: email already registered", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash password: %w", err)
	}
	user.PasswordHash = hash

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, fmt.Errorf("service.AuthService.Register: %w: email already registered", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return created, nil
}

// Authenticate checks an email/password pair.
// Returns domain.ErrUnauthorized for an unknown email or a wrong password;
// the two cases are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.AuthService.Authenticate: %w: bad credentials", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Authenticate: %w: bad credentials", domain.ErrUnauthorized)
	}
	return user, nil
}

// validateRegistration enforces the account rules and normalises the input.
//   - Name, email and password are required.
//   - The email must be a valid address.
//   - The role must be CUSTOMER or OPERATOR (blank means CUSTOMER).
func validateRegistration(reg Registration) (domain.User, error) {
	name := strings.TrimSpace(reg.Name)
	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	email := strings.TrimSpace(reg.Email)
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := openapi_types.Email(email).MarshalJSON(); err != nil {
		return domain.User{}, fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}
	if reg.Password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	role := domain.RoleCustomer
	if reg.Role != "" {
		parsed, ok := domain.ParseRole(string(reg.Role))
		if !ok {
			return domain.User{}, fmt.Errorf("%w: role must be CUSTOMER or OPERATOR", domain.ErrValidation)
		}
		role = parsed
	}
	return domain.User{Name: name, Email: email, Role: role}, nil
}
