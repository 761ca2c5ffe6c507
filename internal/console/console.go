// Package console is the operator console: the signed-in operator's own
// tours with create, update, and delete, plus the bookings made against
// them. Every successful mutation reloads the list from the backend.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/format"
)

// Status messages.
const (
	MsgGreeting        = "Signed in as %s"
	MsgLoading         = "Loading your tours…"
	MsgNoTours         = "No tours yet. Use the form above to add your first adventure."
	MsgTourCount       = "You have %d %s."
	MsgLoadFailed      = "Unable to load tours."
	MsgCreating        = "Creating tour…"
	MsgCreated         = "Tour created successfully."
	MsgCreateFailed    = "Unable to create tour. Ensure all fields are valid."
	MsgSaving          = "Saving changes…"
	MsgUpdated         = "Tour updated."
	MsgUpdateFailed    = "Unable to update tour."
	MsgDeleting        = "Deleting tour…"
	MsgDeleted         = "Tour deleted."
	MsgDeleteFailed    = "Unable to delete tour."
	MsgConfirmDelete   = "Delete %s? This cannot be undone."
	MsgLoadingBookings = "Loading bookings…"
	MsgNoBookings      = "No bookings yet."
	MsgBookingCount    = "You have %d %s."
	MsgBookingsFailed  = "Unable to load bookings."
	MsgUpdatingBooking = "Updating booking…"
	MsgBookingUpdated  = "Booking #%d is now %s."
	MsgBookingFailed   = "Unable to update booking."
)

// Sessions is the part of the session store the console uses.
type Sessions interface {
	Current() (domain.Session, bool)
	Restore(ctx context.Context) (domain.Session, bool)
	Authorized(ctx context.Context, fn func(authorization string) error) error
	Logout(ctx context.Context)
}

// Backend is the part of the API client the console uses.
type Backend interface {
	ListOperatorTours(ctx context.Context, authorization string, operatorID int64) ([]domain.Tour, error)
	CreateTour(ctx context.Context, authorization string, req domain.TourRequest) (domain.Tour, error)
	UpdateTour(ctx context.Context, authorization string, id int64, req domain.TourRequest) (domain.Tour, error)
	DeleteTour(ctx context.Context, authorization string, id int64) error
	ListOperatorBookings(ctx context.Context, authorization string) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, authorization string, id int64, status domain.BookingStatus) (domain.Booking, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Row is one owned tour with its own edit form and status line.
type Row struct {
	Tour   domain.Tour
	Form   TourForm
	Status domain.Status
}

// Console is the operator console view-model. Each form allows one request
// in flight at a time.
type Console struct {
	sessions Sessions
	backend  Backend
	confirm  Confirmer
	log      *slog.Logger

	mu            sync.Mutex
	session       domain.Session
	order         []int64
	rows          map[int64]*Row
	status        domain.Status
	createForm    TourForm
	createStatus  domain.Status
	bookings      []domain.Booking
	bookingStatus domain.Status
	redirected    bool
	inFlight      map[string]bool
}

// Option configures a Console.
type Option func(*Console)

// WithConfirmer sets the delete confirmation prompt. Without one, every
// delete is declined.
func WithConfirmer(c Confirmer) Option {
	return func(con *Console) {
		con.confirm = c
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(con *Console) {
		if log != nil {
			con.log = log
		}
	}
}

// New opens the console for the signed-in operator, restoring a saved
// session when nobody is signed in. It returns domain.ErrNoSession when no
// operator session is available; the caller must go back home.
func New(ctx context.Context, sessions Sessions, backend Backend, opts ...Option) (*Console, error) {
	sess, ok := sessions.Current()
	if !ok {
		sess, ok = sessions.Restore(ctx)
	}
	if !ok || sess.Role != domain.RoleOperator {
		return nil, fmt.Errorf("console.New: %w", domain.ErrNoSession)
	}

	c := &Console{
		sessions: sessions,
		backend:  backend,
		confirm:  ConfirmFunc(func(string) bool { return false }),
		log:      slog.Default(),
		session:  sess,
		rows:     make(map[int64]*Row),
		inFlight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Greeting is the header line.
func (c *Console) Greeting() string {
	return fmt.Sprintf(MsgGreeting, c.session.Name)
}

// Session is the operator the console was opened for.
func (c *Console) Session() domain.Session {
	return c.session
}

// Redirected reports whether the session ended and the console must be
// left for the home page.
func (c *Console) Redirected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redirected
}

// Status is the list-level status line.
func (c *Console) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// CreateForm returns the create form contents.
func (c *Console) CreateForm() TourForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createForm
}

// CreateStatus is the create form's status line.
func (c *Console) CreateStatus() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createStatus
}

// Rows returns the owned tours in display order.
func (c *Console) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Row, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.rows[id])
	}
	return out
}

// Row returns the row for tour id.
func (c *Console) Row(id int64) (Row, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rows[id]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// Bookings returns the last loaded bookings.
func (c *Console) Bookings() []domain.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Booking, len(c.bookings))
	copy(out, c.bookings)
	return out
}

// BookingStatus is the bookings section's status line.
func (c *Console) BookingStatus() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bookingStatus
}

// Logout ends the session and leaves the console.
func (c *Console) Logout(ctx context.Context) {
	c.sessions.Logout(ctx)
	c.mu.Lock()
	c.redirectLocked()
	c.mu.Unlock()
}

// begin claims the named form for one request.
func (c *Console) begin(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.redirected {
		return domain.ErrNoSession
	}
	if c.inFlight[key] {
		return domain.ErrInFlight
	}
	c.inFlight[key] = true
	return nil
}

func (c *Console) end(key string) {
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

// authorized runs fn with the session's header and reports whether the
// session ended because of it.
func (c *Console) authorized(ctx context.Context, fn func(authorization string) error) (ended bool, err error) {
	err = c.sessions.Authorized(ctx, fn)
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNoSession) {
		c.mu.Lock()
		c.redirectLocked()
		c.mu.Unlock()
		return true, err
	}
	return false, err
}

func (c *Console) redirectLocked() {
	c.redirected = true
	c.order = nil
	c.rows = make(map[int64]*Row)
	c.bookings = nil
}

// LoadOwnedTours replaces the list with the operator's tours and reseeds
// every row form.
func (c *Console) LoadOwnedTours(ctx context.Context) error {
	if err := c.begin("list"); err != nil {
		return err
	}
	defer c.end("list")
	return c.loadTours(ctx)
}

func (c *Console) loadTours(ctx context.Context) error {
	c.setStatus(&c.status, domain.Info(MsgLoading))

	var tours []domain.Tour
	ended, err := c.authorized(ctx, func(authorization string) error {
		var err error
		tours, err = c.backend.ListOperatorTours(ctx, authorization, c.session.ID)
		return err
	})
	if ended {
		return fmt.Errorf("console.Console.LoadOwnedTours: %w", err)
	}
	if err != nil {
		c.log.WarnContext(ctx, "load owned tours", "operator_id", c.session.ID, "error", err)
		c.setStatus(&c.status, domain.Failure(MsgLoadFailed))
		return fmt.Errorf("console.Console.LoadOwnedTours: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make(map[int64]*Row, len(tours))
	order := make([]int64, 0, len(tours))
	for _, t := range tours {
		row := &Row{Tour: t, Form: FormFromTour(t)}
		if prev, ok := c.rows[t.ID]; ok {
			row.Status = prev.Status
		}
		rows[t.ID] = row
		order = append(order, t.ID)
	}
	c.rows, c.order = rows, order

	if len(tours) == 0 {
		c.status = domain.Info(MsgNoTours)
	} else {
		c.status = domain.Success(fmt.Sprintf(MsgTourCount, len(tours), format.Plural(len(tours), "tour", "tours")))
	}
	return nil
}

// CreateTour submits form as a new tour. The form is kept on failure and
// cleared on success, after which the list is reloaded once. Client-side
// validation failures return a *FieldError and send nothing.
func (c *Console) CreateTour(ctx context.Context, form TourForm) (domain.Tour, error) {
	if err := c.begin("create"); err != nil {
		return domain.Tour{}, err
	}
	defer c.end("create")

	c.mu.Lock()
	c.createForm = form
	c.mu.Unlock()

	req, err := BuildPayload(form)
	if err != nil {
		c.setStatus(&c.createStatus, domain.Failure(fieldMessage(err)))
		return domain.Tour{}, fmt.Errorf("console.Console.CreateTour: %w", err)
	}
	c.setStatus(&c.createStatus, domain.Info(MsgCreating))

	var created domain.Tour
	ended, err := c.authorized(ctx, func(authorization string) error {
		var err error
		created, err = c.backend.CreateTour(ctx, authorization, req)
		return err
	})
	if ended {
		return domain.Tour{}, fmt.Errorf("console.Console.CreateTour: %w", err)
	}
	if err != nil {
		c.log.WarnContext(ctx, "create tour", "error", err)
		c.setStatus(&c.createStatus, domain.Failure(MsgCreateFailed))
		return domain.Tour{}, fmt.Errorf("console.Console.CreateTour: %w", err)
	}

	c.mu.Lock()
	c.createStatus = domain.Success(MsgCreated)
	c.createForm = TourForm{}
	c.mu.Unlock()

	if err := c.loadTours(ctx); err != nil {
		c.log.WarnContext(ctx, "reload after create", "error", err)
	}
	return created, nil
}

// EditRow changes one field of one row's form. Other rows are untouched.
func (c *Console) EditRow(id int64, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok := c.rows[id]
	if !ok {
		return fmt.Errorf("console.Console.EditRow: tour %d: %w", id, domain.ErrNotFound)
	}
	if err := row.Form.Set(field, value); err != nil {
		return fmt.Errorf("console.Console.EditRow: %w", err)
	}
	return nil
}

// UpdateTour replaces row id's form with form and saves it.
func (c *Console) UpdateTour(ctx context.Context, id int64, form TourForm) (domain.Tour, error) {
	c.mu.Lock()
	row, ok := c.rows[id]
	if ok {
		row.Form = form
	}
	c.mu.Unlock()
	if !ok {
		return domain.Tour{}, fmt.Errorf("console.Console.UpdateTour: tour %d: %w", id, domain.ErrNotFound)
	}
	return c.SaveRow(ctx, id)
}

// SaveRow submits row id's form as an update. Status is reported on that
// row only; success reloads the list.
func (c *Console) SaveRow(ctx context.Context, id int64) (domain.Tour, error) {
	key := fmt.Sprintf("row:%d", id)
	if err := c.begin(key); err != nil {
		return domain.Tour{}, err
	}
	defer c.end(key)

	c.mu.Lock()
	row, ok := c.rows[id]
	var form TourForm
	if ok {
		form = row.Form
	}
	c.mu.Unlock()
	if !ok {
		return domain.Tour{}, fmt.Errorf("console.Console.SaveRow: tour %d: %w", id, domain.ErrNotFound)
	}

	req, err := BuildPayload(form)
	if err != nil {
		c.setRowStatus(id, domain.Failure(fieldMessage(err)))
		return domain.Tour{}, fmt.Errorf("console.Console.SaveRow: %w", err)
	}
	c.setRowStatus(id, domain.Info(MsgSaving))

	var updated domain.Tour
	ended, err := c.authorized(ctx, func(authorization string) error {
		var err error
		updated, err = c.backend.UpdateTour(ctx, authorization, id, req)
		return err
	})
	if ended {
		return domain.Tour{}, fmt.Errorf("console.Console.SaveRow: %w", err)
	}
	if err != nil {
		c.log.WarnContext(ctx, "update tour", "tour_id", id, "error", err)
		c.setRowStatus(id, domain.Failure(MsgUpdateFailed))
		return domain.Tour{}, fmt.Errorf("console.Console.SaveRow: %w", err)
	}

	c.setRowStatus(id, domain.Success(MsgUpdated))
	if err := c.loadTours(ctx); err != nil {
		c.log.WarnContext(ctx, "reload after update", "tour_id", id, "error", err)
	}
	return updated, nil
}

// DeleteTour asks for confirmation, then deletes tour id and reloads the
// list. A declined confirmation sends nothing and returns false.
func (c *Console) DeleteTour(ctx context.Context, id int64) (bool, error) {
	row, ok := c.Row(id)
	if !ok {
		return false, fmt.Errorf("console.Console.DeleteTour: tour %d: %w", id, domain.ErrNotFound)
	}
	title := row.Tour.Title
	if title == "" {
		title = "this tour"
	}
	if !c.confirm.Confirm(fmt.Sprintf(MsgConfirmDelete, title)) {
		return false, nil
	}

	if err := c.begin("delete"); err != nil {
		return false, err
	}
	defer c.end("delete")

	c.setStatus(&c.status, domain.Info(MsgDeleting))
	ended, err := c.authorized(ctx, func(authorization string) error {
		return c.backend.DeleteTour(ctx, authorization, id)
	})
	if ended {
		return false, fmt.Errorf("console.Console.DeleteTour: %w", err)
	}
	if err != nil {
		c.log.WarnContext(ctx, "delete tour", "tour_id", id, "error", err)
		c.setStatus(&c.status, domain.Failure(MsgDeleteFailed))
		return false, fmt.Errorf("console.Console.DeleteTour: %w", err)
	}

	c.setStatus(&c.status, domain.Success(MsgDeleted))
	if err := c.loadTours(ctx); err != nil {
		c.log.WarnContext(ctx, "reload after delete", "tour_id", id, "error", err)
	}
	return true, nil
}

// LoadBookings replaces the bookings list with those made against the
// operator's tours, newest first.
func (c *Console) LoadBookings(ctx context.Context) error {
	if err := c.begin("bookings"); err != nil {
		return err
	}
	defer c.end("bookings")
	return c.loadBookings(ctx, true)
}

func (c *Console) loadBookings(ctx context.Context, summarise bool) error {
	if summarise {
		c.setStatus(&c.bookingStatus, domain.Info(MsgLoadingBookings))
	}

	var bookings []domain.Booking
	ended, err := c.authorized(ctx, func(authorization string) error {
		var err error
		bookings, err = c.backend.ListOperatorBookings(ctx, authorization)
		return err
	})
	if ended {
		return fmt.Errorf("console.Console.LoadBookings: %w", err)
	}
	if err != nil {
		c.log.WarnContext(ctx, "load bookings", "error", err)
		c.setStatus(&c.bookingStatus, domain.Failure(MsgBookingsFailed))
		return fmt.Errorf("console.Console.LoadBookings: %w", err)
	}

	sort.SliceStable(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bookings = bookings
	if !summarise {
		return nil
	}
	if len(bookings) == 0 {
		c.bookingStatus = domain.Info(MsgNoBookings)
	} else {
		c.bookingStatus = domain.Success(fmt.Sprintf(MsgBookingCount, len(bookings), format.Plural(len(bookings), "booking", "bookings")))
	}
	return nil
}

// SetBookingStatus asks the backend to move booking id to status, then
// reloads the bookings. Nothing is changed locally; the backend decides.
func (c *Console) SetBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if err := c.begin("bookings"); err != nil {
		return err
	}
	defer c.end("bookings")

	c.setStatus(&c.bookingStatus, domain.Info(MsgUpdatingBooking))
	var updated domain.Booking
	ended, err := c.authorized(ctx, func(authorization string) error {
		var err error
		updated, err = c.backend.UpdateBookingStatus(ctx, authorization, id, status)
		return err
	})
	if ended {
		return fmt.Errorf("console.Console.SetBookingStatus: %w", err)
	}
	if err != nil {
		c.log.WarnContext(ctx, "update booking status", "booking_id", id, "error", err)
		c.setStatus(&c.bookingStatus, domain.Failure(MsgBookingFailed))
		return fmt.Errorf("console.Console.SetBookingStatus: %w", err)
	}

	if updated.Status == "" {
		updated.Status = status
	}
	c.setStatus(&c.bookingStatus, domain.Success(fmt.Sprintf(MsgBookingUpdated, id, updated.Status.Label())))
	return c.loadBookings(ctx, false)
}

func (c *Console) setStatus(dst *domain.Status, s domain.Status) {
	c.mu.Lock()
	*dst = s
	c.mu.Unlock()
}

func (c *Console) setRowStatus(id int64, s domain.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row, ok := c.rows[id]; ok {
		row.Status = s
	}
}

func fieldMessage(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return MsgCreateFailed
}
