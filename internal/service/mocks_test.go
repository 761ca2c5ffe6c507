package service_test

import (
	"context"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.

type mockUserRepo struct {
	create     func(ctx context.Context, u domain.User) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	getByID    func(ctx context.Context, id int64) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return m.getByID(ctx, id)
}

type mockTourRepo struct {
	create         func(ctx context.Context, t domain.Tour) (domain.Tour, error)
	getByID        func(ctx context.Context, id int64) (domain.Tour, error)
	list           func(ctx context.Context) ([]domain.Tour, error)
	listByOperator func(ctx context.Context, operatorID int64) ([]domain.Tour, error)
	update         func(ctx context.Context, t domain.Tour) (domain.Tour, error)
	delete         func(ctx context.Context, id int64) error
}

func (m *mockTourRepo) Create(ctx context.Context, t domain.Tour) (domain.Tour, error) {
	return m.create(ctx, t)
}
func (m *mockTourRepo) GetByID(ctx context.Context, id int64) (domain.Tour, error) {
	return m.getByID(ctx, id)
}
func (m *mockTourRepo) List(ctx context.Context) ([]domain.Tour, error) {
	return m.list(ctx)
}
func (m *mockTourRepo) ListByOperator(ctx context.Context, operatorID int64) ([]domain.Tour, error) {
	return m.listByOperator(ctx, operatorID)
}
func (m *mockTourRepo) Update(ctx context.Context, t domain.Tour) (domain.Tour, error) {
	return m.update(ctx, t)
}
func (m *mockTourRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockBookingRepo struct {
	create         func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	getByID        func(ctx context.Context, id int64) (domain.Booking, error)
	listByOperator func(ctx context.Context, operatorID int64) ([]domain.Booking, error)
	updateStatus   func(ctx context.Context, id int64, status domain.BookingStatus) (domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) ListByOperator(ctx context.Context, operatorID int64) ([]domain.Booking, error) {
	return m.listByOperator(ctx, operatorID)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (domain.Booking, error) {
	return m.updateStatus(ctx, id, status)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.UserRepo    = (*mockUserRepo)(nil)
	_ repo.TourRepo    = (*mockTourRepo)(nil)
	_ repo.BookingRepo = (*mockBookingRepo)(nil)
)

// ---- fixtures --------------------------------------------------------------

func operator(id int64) domain.User {
	return domain.User{ID: id, Name: "Mountain Guide", Email: "guide@adventure.com", Role: domain.RoleOperator}
}

func customer(id int64) domain.User {
	return domain.User{ID: id, Name: "Avery Traveller", Email: "traveller@adventure.com", Role: domain.RoleCustomer}
}

func validTourRequest() domain.TourRequest {
	desc := "Start your morning above the clouds."
	return domain.TourRequest{
		Title:        "Misty Mountain Hike",
		Description:  &desc,
		Price:        129,
		Location:     "Aspen, USA",
		MaxCapacity:  14,
		DurationHour: 5,
	}
}

func ownedTour(id, operatorID int64) domain.Tour {
	return domain.Tour{ID: id, OperatorID: operatorID, Title: "Misty Mountain Hike", Price: domain.NewPrice(129), Location: "Aspen, USA", MaxCapacity: 4}
}
