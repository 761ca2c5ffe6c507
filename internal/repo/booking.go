package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tourdesk/internal/domain"
)

// BookingRepo defines the persistence operations for bookings.
type BookingRepo interface {
	// Create stores a booking and returns it with ID, Reference and
	// CreatedAt populated.
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)

	// GetByID returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Booking, error)

	// ListByOperator returns bookings for the operator's tours, newest first.
	ListByOperator(ctx context.Context, operatorID int64) ([]domain.Booking, error)

	// UpdateStatus sets the status of a booking and returns the result.
	// Returns domain.ErrNotFound if it does not exist.
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (domain.Booking, error)
}

type memBookingRepo struct {
	mu       sync.RWMutex
	seq      int64
	bookings map[int64]domain.Booking
	now      func() time.Time
}

// NewBookingRepo constructs an empty in-memory BookingRepo.
func NewBookingRepo() BookingRepo {
	return &memBookingRepo{bookings: make(map[int64]domain.Booking), now: time.Now}
}

func (r *memBookingRepo) Create(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	booking.ID = r.seq
	booking.Reference = uuid.NewString()
	booking.CreatedAt = domain.NewLocalTime(r.now())
	r.bookings[booking.ID] = booking
	return booking, nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", domain.ErrNotFound)
	}
	return b, nil
}

func (r *memBookingRepo) ListByOperator(_ context.Context, operatorID int64) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.OperatorID == operatorID {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b domain.Booking) int { return int(b.ID - a.ID) })
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.UpdateStatus: %w", domain.ErrNotFound)
	}
	b.Status = status
	r.bookings[id] = b
	return b, nil
}
