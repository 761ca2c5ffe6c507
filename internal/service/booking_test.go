package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/service"
)

func bookingRequest() domain.BookingRequest {
	return domain.BookingRequest{
		TourID:         3,
		NumberOfPeople: 2,
		TotalPrice:     258,
		BookingDate:    "2026-11-01T09:00:00",
	}
}

func newBookingService(bookings *mockBookingRepo) *service.BookingService {
	return service.NewBookingService(bookings, echoTourRepo(ownedTour(3, 1)))
}

func TestBookingService_Create(t *testing.T) {
	var stored domain.Booking
	bookings := &mockBookingRepo{create: func(_ context.Context, b domain.Booking) (domain.Booking, error) {
		stored = b
		b.ID = 7
		return b, nil
	}}

	got, err := newBookingService(bookings).Create(context.Background(), customer(2), bookingRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, domain.BookingPending, stored.Status)
	assert.Equal(t, 258.0, stored.TotalPrice)
	assert.Equal(t, int64(1), stored.OperatorID)
	assert.Equal(t, int64(2), stored.CustomerID)
	assert.Equal(t, "Avery Traveller", stored.CustomerName)
	assert.Equal(t, "Misty Mountain Hike", stored.TourTitle)
	require.NotNil(t, stored.BookingDate)
	assert.Equal(t, 9, stored.BookingDate.Hour())
}

func TestBookingService_Create_KeepsRequestedStatus(t *testing.T) {
	bookings := &mockBookingRepo{create: func(_ context.Context, b domain.Booking) (domain.Booking, error) { return b, nil }}
	req := bookingRequest()
	req.Status = "confirmed"

	got, err := newBookingService(bookings).Create(context.Background(), customer(2), req)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}

func TestBookingService_Create_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		actor  domain.User
		mutate func(*domain.BookingRequest)
		want   error
	}{
		{"operator", operator(1), func(*domain.BookingRequest) {}, domain.ErrForbidden},
		{"unknown tour", customer(2), func(r *domain.BookingRequest) { r.TourID = 99 }, domain.ErrNotFound},
		{"no guests", customer(2), func(r *domain.BookingRequest) { r.NumberOfPeople = 0 }, domain.ErrValidation},
		{"over capacity", customer(2), func(r *domain.BookingRequest) { r.NumberOfPeople = 5 }, domain.ErrValidation},
		{"negative total", customer(2), func(r *domain.BookingRequest) { r.TotalPrice = -1 }, domain.ErrValidation},
		{"missing date", customer(2), func(r *domain.BookingRequest) { r.BookingDate = "" }, domain.ErrValidation},
		{"bad date", customer(2), func(r *domain.BookingRequest) { r.BookingDate = "soon" }, domain.ErrValidation},
		{"bad status", customer(2), func(r *domain.BookingRequest) { r.Status = "MAYBE" }, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := &mockBookingRepo{create: func(context.Context, domain.Booking) (domain.Booking, error) {
				t.Fatal("nothing should be stored")
				return domain.Booking{}, nil
			}}
			req := bookingRequest()
			tc.mutate(&req)

			_, err := newBookingService(bookings).Create(context.Background(), tc.actor, req)

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBookingService_Create_CustomerOnlyMessage(t *testing.T) {
	_, err := newBookingService(&mockBookingRepo{}).Create(context.Background(), operator(1), bookingRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "only customers can create bookings")
}

func TestBookingService_ListForOperator(t *testing.T) {
	bookings := &mockBookingRepo{listByOperator: func(_ context.Context, id int64) ([]domain.Booking, error) {
		assert.Equal(t, int64(1), id)
		return nil, nil
	}}
	svc := newBookingService(bookings)

	got, err := svc.ListForOperator(context.Background(), operator(1))
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = svc.ListForOperator(context.Background(), customer(2))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	existing := domain.Booking{ID: 7, OperatorID: 1, Status: domain.BookingPending}
	bookings := &mockBookingRepo{
		getByID: func(_ context.Context, id int64) (domain.Booking, error) {
			if id != existing.ID {
				return domain.Booking{}, domain.ErrNotFound
			}
			return existing, nil
		},
		updateStatus: func(_ context.Context, id int64, s domain.BookingStatus) (domain.Booking, error) {
			b := existing
			b.Status = s
			return b, nil
		},
	}
	svc := newBookingService(bookings)
	ctx := context.Background()

	got, err := svc.UpdateStatus(ctx, operator(1), 7, "CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)

	_, err = svc.UpdateStatus(ctx, operator(1), 7, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "status must be provided")

	_, err = svc.UpdateStatus(ctx, operator(2), 7, "CANCELLED")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, err.Error(), "cannot modify bookings for other operators")

	_, err = svc.UpdateStatus(ctx, customer(2), 7, "CANCELLED")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, operator(1), 8, "CANCELLED")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
