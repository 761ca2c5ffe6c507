package booking_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourdesk/internal/api"
	"github.com/pkordes/tourdesk/internal/booking"
	"github.com/pkordes/tourdesk/internal/domain"
)

// fakeSessions stands in for the session store.
type fakeSessions struct {
	sess *domain.Session
}

var _ booking.Sessions = (*fakeSessions)(nil)

func (f *fakeSessions) Current() (domain.Session, bool) {
	if f.sess == nil {
		return domain.Session{}, false
	}
	return *f.sess, true
}

func (f *fakeSessions) Authorized(_ context.Context, fn func(string) error) error {
	if f.sess == nil {
		return domain.ErrNoSession
	}
	err := fn(f.sess.Authorization())
	if errors.Is(err, domain.ErrUnauthorized) {
		f.sess = nil
	}
	return err
}

type mockBooker struct {
	calls    atomic.Int32
	createFn func(ctx context.Context, authorization string, req domain.BookingRequest) (domain.Booking, error)
}

var _ booking.Booker = (*mockBooker)(nil)

func (m *mockBooker) CreateBooking(ctx context.Context, authorization string, req domain.BookingRequest) (domain.Booking, error) {
	m.calls.Add(1)
	if m.createFn == nil {
		return domain.Booking{ID: 1, TourID: req.TourID, Status: req.Status}, nil
	}
	return m.createFn(ctx, authorization, req)
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 15, 0, time.Local)

func clock() time.Time { return fixedNow }

func customer() *domain.Session {
	s := domain.NewSession(2, "Tess", "tess@example.com", domain.RoleCustomer, "secret")
	return &s
}

func operator() *domain.Session {
	s := domain.NewSession(1, "Mountain Guide", "guide@adventure.com", domain.RoleOperator, "password")
	return &s
}

func liveTour() domain.Tour {
	return domain.Tour{ID: 7, Title: "Misty Mountain Hike", Price: domain.NewPrice(129), MaxCapacity: 14}
}

func demoTour() domain.Tour {
	return domain.Tour{Title: "Sunset Kayak Adventure", Price: domain.NewPrice(120), MaxCapacity: 12}
}

func TestGate_AllSixStates(t *testing.T) {
	sessions := &fakeSessions{}
	booker := &mockBooker{}
	f := booking.NewFlow(sessions, booker, booking.WithClock(clock))

	g := f.Gate()
	assert.Equal(t, booking.GateNoSelection, g.Reason)
	assert.Equal(t, booking.MsgNoSelection, g.Message)
	assert.False(t, g.Enabled)

	f.Select(demoTour())
	sessions.sess = customer()
	g = f.Gate()
	assert.Equal(t, booking.GateDemoOnly, g.Reason)
	assert.Equal(t, booking.MsgDemoOnly, g.Message)
	assert.False(t, g.Enabled)

	f.Select(liveTour())
	sessions.sess = nil
	g = f.Gate()
	assert.Equal(t, booking.GateNotLoggedIn, g.Reason)
	assert.Equal(t, booking.MsgLoginRequired, g.Message)

	sessions.sess = operator()
	g = f.Gate()
	assert.Equal(t, booking.GateWrongRole, g.Reason)
	assert.Equal(t, booking.MsgCustomersOnly, g.Message)
	assert.False(t, g.Enabled)

	sessions.sess = customer()
	g = f.Gate()
	assert.Equal(t, booking.GateReady, g.Reason)
	assert.Equal(t, "Ready to book, Tess!", g.Message)
	assert.True(t, g.Enabled)

	release := make(chan struct{})
	booker.createFn = func(context.Context, string, domain.BookingRequest) (domain.Booking, error) {
		<-release
		return domain.Booking{ID: 1}, nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(context.Background())
	}()
	require.Eventually(t, func() bool { return f.Gate().Reason == booking.GateSubmitting }, time.Second, time.Millisecond)
	g = f.Gate()
	assert.Equal(t, booking.MsgSubmitting, g.Message)
	assert.False(t, g.Enabled, "submit is disabled while in flight")

	close(release)
	<-done
	assert.True(t, f.Gate().Enabled, "re-enabled after completion")
}

func TestSelect_ResetsForm(t *testing.T) {
	f := booking.NewFlow(&fakeSessions{sess: customer()}, &mockBooker{}, booking.WithClock(clock))
	f.Select(liveTour())
	f.SetGuests(5)
	require.NoError(t, f.SetDate("2026-12-01T10:00"))

	other := liveTour()
	other.ID = 8
	f.Select(other)
	assert.Equal(t, 1, f.Guests())
	assert.Equal(t, "2026-10-16T09:30", f.Date())

	f.Close()
	_, ok := f.Selected()
	assert.False(t, ok)
	assert.Equal(t, booking.GateNoSelection, f.Gate().Reason)
}

func TestSetGuests_ClampedToCapacity(t *testing.T) {
	f := booking.NewFlow(&fakeSessions{}, &mockBooker{}, booking.WithClock(clock))
	for c := 1; c <= 20; c++ {
		tour := liveTour()
		tour.MaxCapacity = c
		f.Select(tour)
		for n := -5; n <= c+5; n++ {
			got := f.SetGuests(n)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, c)
		}
	}
}

func TestSetGuests_FlexibleCapacity(t *testing.T) {
	f := booking.NewFlow(&fakeSessions{}, &mockBooker{}, booking.WithClock(clock))
	tour := liveTour()
	tour.MaxCapacity = 0
	f.Select(tour)

	assert.Equal(t, 1, f.SetGuests(0))
	assert.Equal(t, 250, f.SetGuests(250))
}

func TestTotal(t *testing.T) {
	f := booking.NewFlow(&fakeSessions{}, &mockBooker{}, booking.WithClock(clock))
	assert.Empty(t, f.Total())

	f.Select(liveTour())
	f.SetGuests(3)
	assert.Equal(t, "$387.00", f.Total())

	free := liveTour()
	free.Price = domain.ParsePrice("Ask the guide")
	f.Select(free)
	assert.Equal(t, "Contact us", f.Total())
}

func TestMinDate(t *testing.T) {
	f := booking.NewFlow(&fakeSessions{}, &mockBooker{}, booking.WithClock(clock))

	future := liveTour()
	from := fixedNow.Add(72 * time.Hour)
	future.AvailableFrom = domain.NewLocalTime(from)
	f.Select(future)
	assert.Equal(t, from, f.MinDate())

	past := liveTour()
	past.AvailableFrom = domain.NewLocalTime(fixedNow.Add(-72 * time.Hour))
	f.Select(past)
	assert.Equal(t, fixedNow, f.MinDate())
}

func TestSetDate(t *testing.T) {
	f := booking.NewFlow(&fakeSessions{}, &mockBooker{}, booking.WithClock(clock))
	f.Select(liveTour())

	assert.ErrorIs(t, f.SetDate("yesterday"), domain.ErrValidation)
	assert.ErrorIs(t, f.SetDate("2026-10-15T09:30"), domain.ErrValidation)
	assert.Equal(t, "2026-10-16T09:30", f.Date(), "refused values keep the previous date")

	require.NoError(t, f.SetDate("2026-10-16T09:30"))
	require.NoError(t, f.SetDate("2026-11-02T08:00"))
	assert.Equal(t, "2026-11-02T08:00", f.Date())

	require.NoError(t, f.SetDate(""))
	assert.Empty(t, f.Date())
}

func TestNormalizeDateTime(t *testing.T) {
	assert.Equal(t, "2026-11-02T08:00:00", booking.NormalizeDateTime("2026-11-02T08:00"))
	assert.Equal(t, "2026-11-02T08:00:30", booking.NormalizeDateTime("2026-11-02T08:00:30"))
	assert.Equal(t, "2026-11-02T08:00:00", booking.NormalizeDateTime(" 2026-11-02T08:00 "))
}

func TestSubmit_Success(t *testing.T) {
	sessions := &fakeSessions{sess: customer()}
	var got domain.BookingRequest
	var gotAuth string
	booker := &mockBooker{createFn: func(_ context.Context, authorization string, req domain.BookingRequest) (domain.Booking, error) {
		got, gotAuth = req, authorization
		return domain.Booking{ID: 44, TourID: req.TourID, Status: req.Status}, nil
	}}
	f := booking.NewFlow(sessions, booker, booking.WithClock(clock))
	f.Select(liveTour())
	f.SetGuests(3)
	require.NoError(t, f.SetDate("2026-11-02T08:00"))

	b, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(44), b.ID)
	assert.Equal(t, domain.BookingRequest{
		TourID:         7,
		NumberOfPeople: 3,
		TotalPrice:     387,
		BookingDate:    "2026-11-02T08:00:00",
		Status:         domain.BookingPending,
	}, got)
	assert.Equal(t, domain.BasicAuth("tess@example.com", "secret"), gotAuth)
	assert.Equal(t, domain.Success(booking.MsgBooked), f.Status())
}

func TestSubmit_ValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		tour    *domain.Tour
		sess    *domain.Session
		date    string
		wantMsg string
	}{
		{"no selection", nil, customer(), "", booking.MsgNoSelection},
		{"demo tour beats missing session", ptr(demoTour()), nil, "", booking.MsgDemoOnly},
		{"no session", ptr(liveTour()), nil, "", booking.MsgLoginRequired},
		{"operator", ptr(liveTour()), operator(), "", booking.MsgCustomersOnly},
		{"no date", ptr(liveTour()), customer(), "", booking.MsgDateRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booker := &mockBooker{}
			f := booking.NewFlow(&fakeSessions{sess: tc.sess}, booker, booking.WithClock(clock))
			if tc.tour != nil {
				f.Select(*tc.tour)
				require.NoError(t, f.SetDate(tc.date))
			}

			_, err := f.Submit(context.Background())
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, domain.Failure(tc.wantMsg), f.Status())
			assert.Zero(t, booker.calls.Load(), "no request may be sent")
		})
	}
}

func TestSubmit_NonCustomerNeverRequests(t *testing.T) {
	for _, sess := range []*domain.Session{nil, operator()} {
		booker := &mockBooker{}
		f := booking.NewFlow(&fakeSessions{sess: sess}, booker, booking.WithClock(clock))
		for c := 1; c <= 5; c++ {
			tour := liveTour()
			tour.MaxCapacity = c
			f.Select(tour)
			f.SetGuests(c)
			_, err := f.Submit(context.Background())
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
		assert.Zero(t, booker.calls.Load())
	}
}

func TestSubmit_DemoNeverRequests(t *testing.T) {
	for _, sess := range []*domain.Session{nil, operator(), customer()} {
		booker := &mockBooker{}
		f := booking.NewFlow(&fakeSessions{sess: sess}, booker, booking.WithClock(clock))
		f.Select(demoTour())
		_, err := f.Submit(context.Background())
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, booker.calls.Load())
	}
}

func TestSubmit_BackendFailure(t *testing.T) {
	booker := &mockBooker{createFn: func(context.Context, string, domain.BookingRequest) (domain.Booking, error) {
		return domain.Booking{}, &api.StatusError{Code: 500}
	}}
	sessions := &fakeSessions{sess: customer()}
	f := booking.NewFlow(sessions, booker, booking.WithClock(clock))
	f.Select(liveTour())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrRejected)
	assert.Equal(t, domain.Failure(booking.MsgBookFailed), f.Status())
	assert.True(t, f.Gate().Enabled, "controls re-enabled after failure")
	assert.Equal(t, 1, f.Guests(), "form kept")
}

func TestSubmit_AuthFailureEndsSession(t *testing.T) {
	booker := &mockBooker{createFn: func(context.Context, string, domain.BookingRequest) (domain.Booking, error) {
		return domain.Booking{}, &api.StatusError{Code: 401}
	}}
	sessions := &fakeSessions{sess: customer()}
	f := booking.NewFlow(sessions, booker, booking.WithClock(clock))
	f.Select(liveTour())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, f.Status().Empty())
	assert.Equal(t, booking.GateNotLoggedIn, f.Gate().Reason)
}

func TestSubmit_InFlight(t *testing.T) {
	release := make(chan struct{})
	booker := &mockBooker{createFn: func(context.Context, string, domain.BookingRequest) (domain.Booking, error) {
		<-release
		return domain.Booking{ID: 1}, nil
	}}
	f := booking.NewFlow(&fakeSessions{sess: customer()}, booker, booking.WithClock(clock))
	f.Select(liveTour())

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return booker.calls.Load() == 1 }, time.Second, time.Millisecond)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), booker.calls.Load())
}

func ptr[T any](v T) *T { return &v }
