// Package repo contains the storage layer of the development API.
// Each resource has its own file with an interface and an in-memory
// implementation. No business logic lives here, only bookkeeping.
package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/tourdesk/internal/domain"
)

// UserRepo defines the persistence operations for accounts.
// The service layer depends on this interface, not the concrete implementation,
// which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create stores a new user and returns it with ID and CreatedAt set.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByEmail looks a user up by email, ignoring case.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that ID.
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

type memUserRepo struct {
	mu      sync.RWMutex
	seq     int64
	byID    map[int64]domain.User
	byEmail map[string]int64
	now     func() time.Time
}

// NewUserRepo constructs an empty in-memory UserRepo.
func NewUserRepo() UserRepo {
	return &memUserRepo{
		byID:    make(map[int64]domain.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	key := emailKey(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[key]; taken {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w: email %q", domain.ErrConflict, user.Email)
	}
	r.seq++
	user.ID = r.seq
	user.CreatedAt = r.now()
	r.byID[user.ID] = user
	r.byEmail[key] = user.ID
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	return r.byID[id], nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", domain.ErrNotFound)
	}
	return u, nil
}
