package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/pkordes/tourdesk/internal/domain"
)

// TourRepo defines the persistence operations for tours.
type TourRepo interface {
	// Create stores a new tour and returns it with ID, CreatedAt and
	// UpdatedAt populated.
	Create(ctx context.Context, tour domain.Tour) (domain.Tour, error)

	// GetByID returns domain.ErrNotFound if no tour with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Tour, error)

	// List returns all tours ordered by ID.
	List(ctx context.Context) ([]domain.Tour, error)

	// ListByOperator returns the operator's tours ordered by ID.
	ListByOperator(ctx context.Context, operatorID int64) ([]domain.Tour, error)

	// Update overwrites the mutable fields of an existing tour. The owner and
	// CreatedAt are kept. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, tour domain.Tour) (domain.Tour, error)

	// Delete removes a tour by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

type memTourRepo struct {
	mu    sync.RWMutex
	seq   int64
	tours map[int64]domain.Tour
	now   func() time.Time
}

// NewTourRepo constructs an empty in-memory TourRepo.
func NewTourRepo() TourRepo {
	return &memTourRepo{tours: make(map[int64]domain.Tour), now: time.Now}
}

func (r *memTourRepo) Create(_ context.Context, tour domain.Tour) (domain.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	tour.ID = r.seq
	now := r.now()
	tour.CreatedAt = domain.NewLocalTime(now)
	tour.UpdatedAt = domain.NewLocalTime(now)
	r.tours[tour.ID] = tour
	return tour, nil
}

func (r *memTourRepo) GetByID(_ context.Context, id int64) (domain.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tours[id]
	if !ok {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.GetByID: %w", domain.ErrNotFound)
	}
	return t, nil
}

func (r *memTourRepo) List(_ context.Context) ([]domain.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(domain.Tour) bool { return true }), nil
}

func (r *memTourRepo) ListByOperator(_ context.Context, operatorID int64) ([]domain.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(t domain.Tour) bool { return t.OperatorID == operatorID }), nil
}

// collect must be called with mu held.
func (r *memTourRepo) collect(keep func(domain.Tour) bool) []domain.Tour {
	out := make([]domain.Tour, 0, len(r.tours))
	for _, t := range r.tours {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Tour) int { return int(a.ID - b.ID) })
	return out
}

func (r *memTourRepo) Update(_ context.Context, tour domain.Tour) (domain.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tours[tour.ID]
	if !ok {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.Update: %w", domain.ErrNotFound)
	}
	tour.OperatorID = existing.OperatorID
	tour.OperatorName = existing.OperatorName
	tour.CreatedAt = existing.CreatedAt
	tour.UpdatedAt = domain.NewLocalTime(r.now())
	r.tours[tour.ID] = tour
	return tour, nil
}

func (r *memTourRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tours[id]; !ok {
		return fmt.Errorf("repo.TourRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.tours, id)
	return nil
}
