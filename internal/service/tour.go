package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/repo"
)

// TourService implements business logic for tours.
// It holds the user repo because listing by operator must confirm that the
// ID belongs to an operator account.
type TourService struct {
	tours repo.TourRepo
	users repo.UserRepo
}

// NewTourService constructs a TourService backed by the provided repos.
func NewTourService(tours repo.TourRepo, users repo.UserRepo) *TourService {
	return &TourService{tours: tours, users: users}
}

// List returns every tour. Always returns a non-nil slice.
func (s *TourService) List(ctx context.Context) ([]domain.Tour, error) {
	tours, err := s.tours.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TourService.List: %w", err)
	}
	if tours == nil {
		return []domain.Tour{}, nil
	}
	return tours, nil
}

// GetByID returns domain.ErrNotFound if the tour does not exist.
func (s *TourService) GetByID(ctx context.Context, id int64) (domain.Tour, error) {
	t, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.GetByID: %w", err)
	}
	return t, nil
}

// ListByOperator returns the tours owned by operatorID.
// Returns domain.ErrNotFound for an unknown user and domain.ErrForbidden when
// the user is not an operator.
func (s *TourService) ListByOperator(ctx context.Context, operatorID int64) ([]domain.Tour, error) {
	op, err := s.users.GetByID(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("service.TourService.ListByOperator: %w", err)
	}
	if err := requireRole(op, domain.RoleOperator); err != nil {
		return nil, fmt.Errorf("service.TourService.ListByOperator: %w", err)
	}
	tours, err := s.tours.ListByOperator(ctx, op.ID)
	if err != nil {
		return nil, fmt.Errorf("service.TourService.ListByOperator: %w", err)
	}
	if tours == nil {
		return []domain.Tour{}, nil
	}
	return tours, nil
}

// Create validates the request and stores a tour owned by actor.
func (s *TourService) Create(ctx context.Context, actor domain.User, req domain.TourRequest) (domain.Tour, error) {
	if err := requireRole(actor, domain.RoleOperator); err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Create: %w", err)
	}
	if err := validateTour(req); err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Create: %w", err)
	}
	t := applyTourRequest(domain.Tour{OperatorID: actor.ID, OperatorName: actor.Name}, req)
	created, err := s.tours.Create(ctx, t)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Create: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of a tour actor owns.
// Returns domain.ErrForbidden when actor does not own the tour.
func (s *TourService) Update(ctx context.Context, actor domain.User, id int64, req domain.TourRequest) (domain.Tour, error) {
	existing, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w", err)
	}
	if err := validateTour(req); err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w", err)
	}
	updated, err := s.tours.Update(ctx, applyTourRequest(existing, req))
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a tour actor owns. Existing bookings keep their snapshot of
// the tour title and owner.
func (s *TourService) Delete(ctx context.Context, actor domain.User, id int64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return fmt.Errorf("service.TourService.Delete: %w", err)
	}
	if err := s.tours.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TourService.Delete: %w", err)
	}
	return nil
}

func (s *TourService) owned(ctx context.Context, actor domain.User, id int64) (domain.Tour, error) {
	if err := requireRole(actor, domain.RoleOperator); err != nil {
		return domain.Tour{}, err
	}
	t, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return domain.Tour{}, err
	}
	if t.OperatorID != actor.ID {
		return domain.Tour{}, fmt.Errorf("%w: operators can only modify their own tours", domain.ErrForbidden)
	}
	return t, nil
}

func applyTourRequest(t domain.Tour, req domain.TourRequest) domain.Tour {
	hours := req.DurationHour
	t.Title = strings.TrimSpace(req.Title)
	t.Description = ""
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	t.Price = domain.NewPrice(req.Price)
	t.Location = strings.TrimSpace(req.Location)
	t.MaxCapacity = req.MaxCapacity
	t.DurationHours = &hours
	t.AvailableFrom = req.AvailableFrom
	return t
}

// validateTour enforces the rules shared by Create and Update.
//   - Title and location must be non-empty.
//   - Price must not be negative.
//   - Capacity must not be negative; 0 means flexible.
//   - Duration must be at least 1.
func validateTour(req domain.TourRequest) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case strings.TrimSpace(req.Location) == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case req.Price < 0:
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	case req.MaxCapacity < 0:
		return fmt.Errorf("%w: maxCapacity must not be negative", domain.ErrValidation)
	case req.DurationHour < 1:
		return fmt.Errorf("%w: durationHour must be at least 1", domain.ErrValidation)
	}
	return nil
}

// requireRole returns domain.ErrForbidden unless u has the given role.
func requireRole(u domain.User, role domain.Role) error {
	if u.Role == role {
		return nil
	}
	if role == domain.RoleCustomer {
		return fmt.Errorf("%w: only customers can create bookings", domain.ErrForbidden)
	}
	return fmt.Errorf("%w: user does not have operator permissions", domain.ErrForbidden)
}
