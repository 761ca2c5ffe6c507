package service

import (
	"context"
	"fmt"
	"math"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/repo"
)

// BookingService implements business logic for bookings.
type BookingService struct {
	bookings repo.BookingRepo
	tours    repo.TourRepo
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(bookings repo.BookingRepo, tours repo.TourRepo) *BookingService {
	return &BookingService{bookings: bookings, tours: tours}
}

// Create books a tour for a customer. The status defaults to PENDING and the
// total is taken from the request as the client computed it.
// Returns domain.ErrForbidden for non-customers and domain.ErrNotFound for an
// unknown tour.
func (s *BookingService) Create(ctx context.Context, actor domain.User, req domain.BookingRequest) (domain.Booking, error) {
	if err := requireRole(actor, domain.RoleCustomer); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	tour, err := s.tours.GetByID(ctx, req.TourID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	b, err := bookingFromRequest(tour, req)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	b.CustomerID = actor.ID
	b.CustomerName = actor.Name

	created, err := s.bookings.Create(ctx, b)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	return created, nil
}

// ListForOperator returns bookings on actor's tours, newest first.
func (s *BookingService) ListForOperator(ctx context.Context, actor domain.User) ([]domain.Booking, error) {
	if err := requireRole(actor, domain.RoleOperator); err != nil {
		return nil, fmt.Errorf("service.BookingService.ListForOperator: %w", err)
	}
	bookings, err := s.bookings.ListByOperator(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ListForOperator: %w", err)
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// UpdateStatus moves a booking on one of actor's tours to status. Any status
// may follow any other.
func (s *BookingService) UpdateStatus(ctx context.Context, actor domain.User, id int64, status string) (domain.Booking, error) {
	if status == "" {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w: status must be provided", domain.ErrValidation)
	}
	next, err := domain.ParseBookingStatus(status)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}
	if err := requireRole(actor, domain.RoleOperator); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}
	if b.OperatorID != actor.ID {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w: cannot modify bookings for other operators", domain.ErrForbidden)
	}
	updated, err := s.bookings.UpdateStatus(ctx, id, next)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}
	return updated, nil
}

// bookingFromRequest validates req against tour.
//   - numberOfPeople must be at least 1 and within capacity (0 = flexible).
//   - totalPrice must be a finite, non-negative number.
//   - bookingDate is required.
//   - status, when present, must be a known booking status.
func bookingFromRequest(tour domain.Tour, req domain.BookingRequest) (domain.Booking, error) {
	if req.NumberOfPeople < 1 {
		return domain.Booking{}, fmt.Errorf("%w: numberOfPeople must be at least 1", domain.ErrValidation)
	}
	if tour.MaxCapacity > 0 && req.NumberOfPeople > tour.MaxCapacity {
		return domain.Booking{}, fmt.Errorf("%w: numberOfPeople exceeds capacity of %d", domain.ErrValidation, tour.MaxCapacity)
	}
	if req.TotalPrice < 0 || math.IsNaN(req.TotalPrice) || math.IsInf(req.TotalPrice, 0) {
		return domain.Booking{}, fmt.Errorf("%w: totalPrice must not be negative", domain.ErrValidation)
	}
	if req.BookingDate == "" {
		return domain.Booking{}, fmt.Errorf("%w: bookingDate is required", domain.ErrValidation)
	}
	date, err := domain.ParseLocalTime(req.BookingDate)
	if err != nil {
		return domain.Booking{}, err
	}
	status := domain.BookingPending
	if req.Status != "" {
		if status, err = domain.ParseBookingStatus(string(req.Status)); err != nil {
			return domain.Booking{}, err
		}
	}
	return domain.Booking{
		TourID:         tour.ID,
		TourTitle:      tour.Title,
		OperatorID:     tour.OperatorID,
		Status:         status,
		NumberOfPeople: req.NumberOfPeople,
		TotalPrice:     req.TotalPrice,
		BookingDate:    domain.NewLocalTime(date),
	}, nil
}
