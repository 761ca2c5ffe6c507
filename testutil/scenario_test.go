package testutil_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pkordes/tourdesk/internal/api"
	"github.com/pkordes/tourdesk/internal/booking"
	"github.com/pkordes/tourdesk/internal/catalog"
	"github.com/pkordes/tourdesk/internal/console"
	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/session"
	"github.com/pkordes/tourdesk/internal/storage"
	"github.com/pkordes/tourdesk/testutil"
)

// ScenarioSuite drives the client packages against a live in-process API.
// Each test gets a freshly seeded backend and empty durable storage.
type ScenarioSuite struct {
	suite.Suite
	backend *testutil.Backend
	client  *api.Client
	durable *storage.MemoryStore
	log     *slog.Logger
	ctx     context.Context
}

func TestScenarios(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) SetupTest() {
	s.backend = testutil.NewBackend(s.T())
	s.log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.client = api.NewClient(s.backend.URL, api.WithLogger(s.log))
	s.durable = storage.NewMemoryStore()
	s.ctx = context.Background()
}

func (s *ScenarioSuite) newSessions() *session.Store {
	return session.NewStore(s.client, s.durable, session.WithLogger(s.log))
}

func (s *ScenarioSuite) openConsole(opts ...console.Option) *console.Console {
	c, err := console.New(s.ctx, s.newSessions(), s.client, append(opts, console.WithLogger(s.log))...)
	require.NoError(s.T(), err)
	return c
}

func (s *ScenarioSuite) TestOperatorSessionRestoredFromStorageOnly() {
	_, err := s.newSessions().Login(s.ctx, testutil.OperatorEmail, testutil.Password)
	s.Require().NoError(err)

	raw, err := s.durable.Get(s.ctx, session.StorageKey)
	s.Require().NoError(err)
	var saved domain.Session
	s.Require().NoError(json.Unmarshal([]byte(raw), &saved))
	s.Equal(domain.BasicAuth(testutil.OperatorEmail, testutil.Password), saved.AuthHeader)

	// A new store has never called login; only the durable entry exists.
	c := s.openConsole()
	s.Require().NoError(c.LoadOwnedTours(s.ctx))
	s.Len(c.Rows(), 5)
	s.Equal("Signed in as Mountain Guide", c.Greeting())
}

func (s *ScenarioSuite) TestCatalogFallsBackToDemoTours() {
	down := api.NewClient("http://127.0.0.1:1/api", api.WithTimeout(time.Second), api.WithLogger(s.log))
	cat := catalog.New(down, catalog.WithLogger(s.log))

	tours := cat.Load(s.ctx)
	s.Equal(catalog.DemoTours(), tours)
	s.False(cat.Live())
	s.Equal(catalog.MsgDemoFallback, cat.Notice().Message)

	sessions := s.newSessions()
	_, err := sessions.Login(s.ctx, testutil.CustomerEmail, testutil.Password)
	s.Require().NoError(err)
	flow := booking.NewFlow(sessions, s.client, booking.WithLogger(s.log))
	for _, tour := range tours {
		flow.Select(tour)
		gate := flow.Gate()
		s.Equal(booking.GateDemoOnly, gate.Reason, tour.Title)
		s.False(gate.Enabled)
		s.Equal(booking.MsgDemoOnly, gate.Message)
	}
}

func (s *ScenarioSuite) TestCreateTourSendsNumbersAndClearsForm() {
	_, err := s.newSessions().Login(s.ctx, testutil.OperatorEmail, testutil.Password)
	s.Require().NoError(err)
	c := s.openConsole()
	s.Require().NoError(c.LoadOwnedTours(s.ctx))

	created, err := c.CreateTour(s.ctx, console.TourForm{
		Title:        "Canyon Rappel",
		Price:        "199",
		Location:     "Moab, USA",
		MaxCapacity:  "10",
		DurationHour: "4",
	})
	s.Require().NoError(err)

	s.Equal(domain.NewPrice(199), created.Price)
	s.Equal(10, created.MaxCapacity)
	s.Require().NotNil(created.DurationHours)
	s.Equal(4, *created.DurationHours)
	s.Equal(console.TourForm{}, c.CreateForm())
	s.Len(c.Rows(), 6)
}

func (s *ScenarioSuite) TestRejectedCredentialEndsSession() {
	forged := domain.Session{
		ID:         1,
		Name:       "Mountain Guide",
		Email:      testutil.OperatorEmail,
		Role:       domain.RoleOperator,
		AuthHeader: domain.BasicAuth(testutil.OperatorEmail, "stale-password"),
	}
	raw, err := json.Marshal(forged)
	s.Require().NoError(err)
	s.Require().NoError(s.durable.Set(s.ctx, session.StorageKey, string(raw)))

	sessions := s.newSessions()
	c, err := console.New(s.ctx, sessions, s.client, console.WithLogger(s.log))
	s.Require().NoError(err)

	err = c.LoadOwnedTours(s.ctx)
	s.ErrorIs(err, domain.ErrUnauthorized)
	s.True(c.Redirected())

	_, ok := sessions.Current()
	s.False(ok)
	_, err = s.durable.Get(s.ctx, session.StorageKey)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *ScenarioSuite) TestCustomerCannotOpenConsole() {
	sessions := s.newSessions()
	_, err := sessions.Login(s.ctx, testutil.CustomerEmail, testutil.Password)
	s.Require().NoError(err)

	_, err = console.New(s.ctx, sessions, s.client)
	s.ErrorIs(err, domain.ErrNoSession)
}

func (s *ScenarioSuite) TestBookingLifecycle() {
	customer := s.newSessions()
	_, err := customer.Login(s.ctx, testutil.CustomerEmail, testutil.Password)
	s.Require().NoError(err)

	cat := catalog.New(s.client, catalog.WithLogger(s.log))
	cat.Load(s.ctx)
	tour, ok := cat.Tour(0)
	s.Require().True(ok)

	flow := booking.NewFlow(customer, s.client, booking.WithLogger(s.log))
	flow.Select(tour)
	s.Equal(booking.GateReady, flow.Gate().Reason)
	s.Equal(3, flow.SetGuests(3))
	s.Equal("$387.00", flow.Total())
	s.Require().NoError(flow.SetDate(tour.AvailableAt().AddDate(0, 0, 1).Format("2006-01-02T15:04")))

	placed, err := flow.Submit(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.BookingPending, placed.Status)
	s.Equal(booking.MsgBooked, flow.Status().Message)

	_, err = s.newSessions().Login(s.ctx, testutil.OperatorEmail, testutil.Password)
	s.Require().NoError(err)
	c := s.openConsole()
	s.Require().NoError(c.LoadBookings(s.ctx))
	s.Require().Len(c.Bookings(), 1)
	s.Equal("Avery Traveller", c.Bookings()[0].CustomerName)

	s.Require().NoError(c.SetBookingStatus(s.ctx, placed.ID, domain.BookingConfirmed))
	s.Equal(domain.BookingConfirmed, c.Bookings()[0].Status)
}

func (s *ScenarioSuite) TestOperatorCannotBook() {
	sessions := s.newSessions()
	_, err := sessions.Login(s.ctx, testutil.OperatorEmail, testutil.Password)
	s.Require().NoError(err)

	cat := catalog.New(s.client)
	cat.Load(s.ctx)
	tour, ok := cat.Tour(0)
	s.Require().True(ok)

	flow := booking.NewFlow(sessions, s.client, booking.WithLogger(s.log))
	flow.Select(tour)
	s.Equal(booking.GateWrongRole, flow.Gate().Reason)

	_, err = flow.Submit(s.ctx)
	s.ErrorIs(err, domain.ErrValidation)
}
