package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/handler"
	"github.com/pkordes/tourdesk/internal/observability/metrics"
	"github.com/pkordes/tourdesk/internal/service"
)

// Hand-written test doubles for the servicer interfaces.
// Set only the method fields your test needs.

type mockTourServicer struct {
	list           func(ctx context.Context) ([]domain.Tour, error)
	getByID        func(ctx context.Context, id int64) (domain.Tour, error)
	listByOperator func(ctx context.Context, operatorID int64) ([]domain.Tour, error)
	create         func(ctx context.Context, actor domain.User, req domain.TourRequest) (domain.Tour, error)
	update         func(ctx context.Context, actor domain.User, id int64, req domain.TourRequest) (domain.Tour, error)
	delete         func(ctx context.Context, actor domain.User, id int64) error
}

func (m *mockTourServicer) List(ctx context.Context) ([]domain.Tour, error) {
	return m.list(ctx)
}
func (m *mockTourServicer) GetByID(ctx context.Context, id int64) (domain.Tour, error) {
	return m.getByID(ctx, id)
}
func (m *mockTourServicer) ListByOperator(ctx context.Context, operatorID int64) ([]domain.Tour, error) {
	return m.listByOperator(ctx, operatorID)
}
func (m *mockTourServicer) Create(ctx context.Context, actor domain.User, req domain.TourRequest) (domain.Tour, error) {
	return m.create(ctx, actor, req)
}
func (m *mockTourServicer) Update(ctx context.Context, actor domain.User, id int64, req domain.TourRequest) (domain.Tour, error) {
	return m.update(ctx, actor, id, req)
}
func (m *mockTourServicer) Delete(ctx context.Context, actor domain.User, id int64) error {
	return m.delete(ctx, actor, id)
}

type mockBookingServicer struct {
	create          func(ctx context.Context, actor domain.User, req domain.BookingRequest) (domain.Booking, error)
	listForOperator func(ctx context.Context, actor domain.User) ([]domain.Booking, error)
	updateStatus    func(ctx context.Context, actor domain.User, id int64, status string) (domain.Booking, error)
}

func (m *mockBookingServicer) Create(ctx context.Context, actor domain.User, req domain.BookingRequest) (domain.Booking, error) {
	return m.create(ctx, actor, req)
}
func (m *mockBookingServicer) ListForOperator(ctx context.Context, actor domain.User) ([]domain.Booking, error) {
	return m.listForOperator(ctx, actor)
}
func (m *mockBookingServicer) UpdateStatus(ctx context.Context, actor domain.User, id int64, status string) (domain.Booking, error) {
	return m.updateStatus(ctx, actor, id, status)
}

// mockAuthServicer knows the two seed accounts, both with password "password".
type mockAuthServicer struct {
	register func(ctx context.Context, reg service.Registration) (domain.User, error)
}

var (
	guide     = domain.User{ID: 1, Name: "Mountain Guide", Email: "guide@adventure.com", Role: domain.RoleOperator}
	traveller = domain.User{ID: 2, Name: "Avery Traveller", Email: "traveller@adventure.com", Role: domain.RoleCustomer}
)

func (m *mockAuthServicer) Register(ctx context.Context, reg service.Registration) (domain.User, error) {
	return m.register(ctx, reg)
}
func (m *mockAuthServicer) Authenticate(_ context.Context, email, password string) (domain.User, error) {
	if password == "password" {
		switch email {
		case guide.Email:
			return guide, nil
		case traveller.Email:
			return traveller, nil
		}
	}
	return domain.User{}, fmt.Errorf("service.AuthService.Authenticate: %w: bad credentials", domain.ErrUnauthorized)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TourServicer    = (*mockTourServicer)(nil)
	_ handler.BookingServicer = (*mockBookingServicer)(nil)
	_ handler.AuthServicer    = (*mockAuthServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(tours handler.TourServicer, bookings handler.BookingServicer, auth handler.AuthServicer) http.Handler {
	if auth == nil {
		auth = &mockAuthServicer{}
	}
	reg := prometheus.NewRegistry()
	srv := handler.NewServer(tours, bookings, auth, handler.WithMetrics(metrics.NewAPIMetrics(reg)))
	return handler.NewRouter(srv, handler.RouterConfig{Gatherer: reg, MaxBodyBytes: 1 << 20})
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request, authenticated as who when non-nil.
func do(h http.Handler, method, path string, body io.Reader, who *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if who != nil {
		req.Header.Set("Authorization", domain.BasicAuth(who.Email, "password"))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func tourFixture() domain.Tour {
	hours := 5
	return domain.Tour{
		ID:            3,
		OperatorID:    1,
		OperatorName:  "Mountain Guide",
		Title:         "Misty Mountain Hike",
		Price:         domain.NewPrice(129),
		Location:      "Aspen, USA",
		MaxCapacity:   14,
		DurationHours: &hours,
	}
}
