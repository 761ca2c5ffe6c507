// Package booking is the tour detail panel and its booking form: which
// controls are enabled for the current selection and session, the running
// total, and submission.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/format"
)

// Gate and submission messages.
const (
	MsgNoSelection   = "Select a tour to see booking options."
	MsgDemoOnly      = "This is a demo tour. Booking opens once live tours are available."
	MsgLoginRequired = "Log in as a customer to book this tour."
	MsgCustomersOnly = "Only customer accounts can book tours."
	MsgReady         = "Ready to book, %s!"
	MsgSubmitting    = "Submitting your booking…"
	MsgBooked        = "Booking request sent! We'll confirm shortly."
	MsgBookFailed    = "Unable to submit booking right now. Please try again."
	MsgGuestsInvalid = "Choose at least one guest."
	MsgDateRequired  = "Choose a date for your booking."
	MsgDateTooEarly  = "Choose a date on or after %s."
)

// GateReason says why the booking controls are in their current state.
// Exactly one applies at any time.
type GateReason int

const (
	GateNoSelection GateReason = iota
	GateDemoOnly
	GateNotLoggedIn
	GateWrongRole
	GateReady
	GateSubmitting
)

// Gate is the state of the booking controls.
type Gate struct {
	Reason  GateReason
	Enabled bool
	Message string
}

// Sessions is the part of the session store the flow reads.
type Sessions interface {
	Current() (domain.Session, bool)
	Authorized(ctx context.Context, fn func(authorization string) error) error
}

// Booker submits booking requests.
type Booker interface {
	CreateBooking(ctx context.Context, authorization string, req domain.BookingRequest) (domain.Booking, error)
}

// Flow is the detail/booking view-model. It is safe for concurrent use;
// at most one submission is in flight at a time.
type Flow struct {
	sessions Sessions
	booker   Booker
	now      func() time.Time
	log      *slog.Logger

	mu         sync.Mutex
	selected   *domain.Tour
	guests     int
	date       string
	submitting bool
	status     domain.Status
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(f *Flow) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFlow returns a flow with nothing selected.
func NewFlow(sessions Sessions, booker Booker, opts ...Option) *Flow {
	f := &Flow{
		sessions: sessions,
		booker:   booker,
		now:      time.Now,
		log:      slog.Default(),
		guests:   1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Select opens the detail view for tour, resetting the form.
func (f *Flow) Select(tour domain.Tour) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = &tour
	f.guests = 1
	f.date = format.DateTimeInput(f.minDateLocked())
	f.status = domain.Status{}
}

// Close returns to "no tour selected".
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = nil
	f.guests = 1
	f.date = ""
	f.status = domain.Status{}
}

// Selected returns the open tour.
func (f *Flow) Selected() (domain.Tour, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return domain.Tour{}, false
	}
	return *f.selected, true
}

// Gate reports whether the booking controls are enabled and why.
func (f *Flow) Gate() Gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gateLocked()
}

func (f *Flow) gateLocked() Gate {
	switch {
	case f.selected == nil:
		return Gate{Reason: GateNoSelection, Message: MsgNoSelection}
	case !f.selected.Bookable():
		return Gate{Reason: GateDemoOnly, Message: MsgDemoOnly}
	}
	sess, ok := f.sessions.Current()
	switch {
	case !ok:
		return Gate{Reason: GateNotLoggedIn, Message: MsgLoginRequired}
	case sess.Role != domain.RoleCustomer:
		return Gate{Reason: GateWrongRole, Message: MsgCustomersOnly}
	case f.submitting:
		return Gate{Reason: GateSubmitting, Message: MsgSubmitting}
	default:
		return Gate{Reason: GateReady, Enabled: true, Message: fmt.Sprintf(MsgReady, sess.Name)}
	}
}

// SetGuests clamps n to [1, maxCapacity] (no upper bound when capacity is
// unset) and returns the stored value.
func (f *Flow) SetGuests(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guests = clampGuests(n, f.capacityLocked())
	return f.guests
}

// Guests is the current guest count.
func (f *Flow) Guests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guests
}

func (f *Flow) capacityLocked() int {
	if f.selected == nil {
		return 0
	}
	return f.selected.MaxCapacity
}

func clampGuests(n, capacity int) int {
	if n < 1 {
		n = 1
	}
	if capacity > 0 && n > capacity {
		n = capacity
	}
	return n
}

// Total is the running total for the current guest count.
func (f *Flow) Total() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return ""
	}
	return format.Total(f.selected.Price, f.guests)
}

// MinDate is the tour's available-from time when that is in the future,
// otherwise now.
func (f *Flow) MinDate() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minDateLocked()
}

func (f *Flow) minDateLocked() time.Time {
	now := f.now()
	if f.selected == nil {
		return now
	}
	if from := f.selected.AvailableAt(); from.After(now) {
		return from
	}
	return now
}

// SetDate stores the booking date as typed. Blank clears it. A value that
// does not parse, or falls before MinDate, is refused and the previous
// value kept.
func (f *Flow) SetDate(s string) error {
	s = strings.TrimSpace(s)

	f.mu.Lock()
	defer f.mu.Unlock()
	if s == "" {
		f.date = ""
		return nil
	}
	t, err := domain.ParseLocalTime(s)
	if err != nil {
		return fmt.Errorf("booking.Flow.SetDate: %w", err)
	}
	earliest := f.minDateLocked().Truncate(time.Minute)
	if t.Before(earliest) {
		msg := fmt.Sprintf(MsgDateTooEarly, format.Date(earliest))
		f.status = domain.Failure(msg)
		return fmt.Errorf("booking.Flow.SetDate: %w: %s", domain.ErrValidation, msg)
	}
	f.date = s
	return nil
}

// Date is the stored booking date.
func (f *Flow) Date() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date
}

// Status is the result line of the last submission or refused input.
func (f *Flow) Status() domain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// NormalizeDateTime appends ":00" to a datetime-local value that has no
// seconds.
func NormalizeDateTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == len("2006-01-02T15:04") && strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}

// Submit validates the form and sends the booking. A failed check sets its
// message and returns domain.ErrValidation without any request. A call made
// while another is in flight returns domain.ErrInFlight.
func (f *Flow) Submit(ctx context.Context) (domain.Booking, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return domain.Booking{}, domain.ErrInFlight
	}
	req, err := f.requestLocked()
	if err != nil {
		f.mu.Unlock()
		return domain.Booking{}, err
	}
	f.submitting = true
	f.status = domain.Info(MsgSubmitting)
	f.mu.Unlock()

	var booking domain.Booking
	err = f.sessions.Authorized(ctx, func(authorization string) error {
		b, err := f.booker.CreateBooking(ctx, authorization, req)
		booking = b
		return err
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoSession):
		// The session is gone; the gate now explains what to do.
		f.status = domain.Status{}
		return domain.Booking{}, fmt.Errorf("booking.Flow.Submit: %w", err)
	case err != nil:
		f.log.WarnContext(ctx, "booking failed", "tour_id", req.TourID, "error", err)
		f.status = domain.Failure(MsgBookFailed)
		return domain.Booking{}, fmt.Errorf("booking.Flow.Submit: %w", err)
	}
	f.status = domain.Success(MsgBooked)
	return booking, nil
}

// requestLocked runs the ordered pre-submit checks.
func (f *Flow) requestLocked() (domain.BookingRequest, error) {
	fail := func(msg string) (domain.BookingRequest, error) {
		f.status = domain.Failure(msg)
		return domain.BookingRequest{}, fmt.Errorf("booking.Flow.Submit: %w: %s", domain.ErrValidation, msg)
	}

	if f.selected == nil {
		return fail(MsgNoSelection)
	}
	if !f.selected.Bookable() {
		return fail(MsgDemoOnly)
	}
	sess, ok := f.sessions.Current()
	if !ok {
		return fail(MsgLoginRequired)
	}
	if sess.Role != domain.RoleCustomer {
		return fail(MsgCustomersOnly)
	}
	if f.guests < 1 {
		return fail(MsgGuestsInvalid)
	}
	if f.date == "" {
		return fail(MsgDateRequired)
	}

	return domain.BookingRequest{
		TourID:         f.selected.ID,
		NumberOfPeople: f.guests,
		TotalPrice:     format.TotalAmount(f.selected.Price, f.guests),
		BookingDate:    NormalizeDateTime(f.date),
		Status:         domain.BookingPending,
	}, nil
}
