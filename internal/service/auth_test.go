package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/repo"
	"github.com/pkordes/tourdesk/internal/service"
)

func newAuthService() *service.AuthService {
	return service.NewAuthService(repo.NewUserRepo(), service.WithBcryptCost(bcrypt.MinCost))
}

func TestAuthService_Register_And_Authenticate(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	created, err := svc.Register(ctx, service.Registration{
		Name: " Avery ", Email: "avery@example.com", Password: "s3cret", Role: "traveller",
	})
	require.NoError(t, err)
	assert.Equal(t, "Avery", created.Name)
	assert.Equal(t, domain.RoleCustomer, created.Role)
	assert.NotEqual(t, []byte("s3cret"), created.PasswordHash, "password must be hashed")

	got, err := svc.Authenticate(ctx, "AVERY@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAuthService_Register_DefaultsToCustomer(t *testing.T) {
	svc := newAuthService()

	u, err := svc.Register(context.Background(), service.Registration{Name: "A", Email: "a@example.com", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	reg := service.Registration{Name: "A", Email: "a@example.com", Password: "x", Role: domain.RoleOperator}
	_, err := svc.Register(ctx, reg)
	require.NoError(t, err)

	_, err = svc.Register(ctx, reg)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_Register_Validation(t *testing.T) {
	cases := []struct {
		name string
		reg  service.Registration
	}{
		{"missing name", service.Registration{Email: "a@example.com", Password: "x"}},
		{"missing email", service.Registration{Name: "A", Password: "x"}},
		{"bad email", service.Registration{Name: "A", Email: "not-an-email", Password: "x"}},
		{"missing password", service.Registration{Name: "A", Email: "a@example.com"}},
		{"unknown role", service.Registration{Name: "A", Email: "a@example.com", Password: "x", Role: "ADMIN"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newAuthService().Register(context.Background(), tc.reg)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	_, err := svc.Register(ctx, service.Registration{Name: "A", Email: "a@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
