// Package shell is the interactive terminal front end. It has two pages,
// home and the operator console. Every command is one UI event, and after
// each event the current page is redrawn from its view description.
//
// Navigating between pages rebuilds the page state from durable storage
// only, the way a browser reloads a page: a customer session, which is
// never persisted, does not survive navigation, while an operator session
// does.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/pkordes/tourdesk/internal/booking"
	"github.com/pkordes/tourdesk/internal/catalog"
	"github.com/pkordes/tourdesk/internal/console"
	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/session"
	"github.com/pkordes/tourdesk/internal/storage"
	"github.com/pkordes/tourdesk/internal/view"
)

// Backend is everything the pages need from the API client.
type Backend interface {
	session.Backend
	catalog.Lister
	booking.Booker
	console.Backend
}

type page int

const (
	pageHome page = iota
	pageConsole
)

// Shell runs the read-eval-render loop. It is not safe for concurrent use.
type Shell struct {
	backend Backend
	durable storage.Store
	stdin   io.Reader
	in      *bufio.Scanner
	out     io.Writer
	log     *slog.Logger
	now     func() time.Time

	readPassword func() (string, error)

	page     page
	flash    domain.Status
	sessions *session.Store
	catalog  *catalog.Catalog
	flow     *booking.Flow
	console  *console.Console
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger handed to every page component.
func WithLogger(log *slog.Logger) Option {
	return func(s *Shell) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides time.Now for the booking date rules.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a shell reading commands from stdin and drawing to stdout.
func New(backend Backend, durable storage.Store, stdin io.Reader, stdout io.Writer, opts ...Option) *Shell {
	s := &Shell{
		backend: backend,
		durable: durable,
		stdin:   stdin,
		in:      bufio.NewScanner(stdin),
		out:     stdout,
		log:     slog.Default(),
		now:     time.Now,
	}
	s.readPassword = s.defaultReadPassword
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run draws the home page and processes commands until quit, end of input
// or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.goHome(ctx)
	s.render()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		s.prompt()
		line, ok := s.readLine()
		if !ok {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("shell.Shell.Run: %w", err)
			}
			fmt.Fprintln(s.out)
			return nil
		}
		name, args := splitCommand(line)
		if name == "" {
			continue
		}
		if name == "quit" || name == "exit" {
			return nil
		}

		switch s.page {
		case pageConsole:
			s.consoleCommand(ctx, name, args)
		default:
			s.homeCommand(ctx, name, args)
		}
		s.render()
	}
}

func (s *Shell) prompt() {
	switch s.page {
	case pageConsole:
		fmt.Fprint(s.out, "console> ")
	default:
		fmt.Fprint(s.out, "tourdesk> ")
	}
}

// goHome rebuilds the home page. Only a saved operator session comes back.
func (s *Shell) goHome(ctx context.Context) {
	s.sessions = session.NewStore(s.backend, s.durable, session.WithLogger(s.log))
	s.sessions.Restore(ctx)
	s.catalog = catalog.New(s.backend, catalog.WithLogger(s.log))
	s.catalog.Load(ctx)
	s.flow = booking.NewFlow(s.sessions, s.backend, booking.WithClock(s.now), booking.WithLogger(s.log))
	s.console = nil
	s.page = pageHome
}

// goConsole opens the operator console, or falls back home when no
// operator session is saved.
func (s *Shell) goConsole(ctx context.Context) {
	sessions := session.NewStore(s.backend, s.durable, session.WithLogger(s.log))
	c, err := console.New(ctx, sessions, s.backend,
		console.WithConfirmer(console.ConfirmFunc(s.confirm)),
		console.WithLogger(s.log),
	)
	if err != nil {
		s.log.DebugContext(ctx, "console unavailable", "error", err)
		s.goHome(ctx)
		s.flash = domain.Info(MsgOperatorOnly)
		return
	}

	s.sessions = sessions
	s.catalog = nil
	s.flow = nil
	s.console = c
	s.page = pageConsole

	_ = c.LoadOwnedTours(ctx)
	if !c.Redirected() {
		_ = c.LoadBookings(ctx)
	}
	s.leaveIfRedirected(ctx)
}

// leaveIfRedirected goes home when the console's session has ended.
func (s *Shell) leaveIfRedirected(ctx context.Context) bool {
	if s.console == nil || !s.console.Redirected() {
		return false
	}
	s.goHome(ctx)
	s.flash = domain.Failure(session.MsgSessionEnded)
	return true
}

func (s *Shell) render() {
	var err error
	switch s.page {
	case pageConsole:
		err = view.WriteConsole(s.out, s.consolePage())
	default:
		err = view.WriteHome(s.out, s.homePage())
	}
	if err != nil {
		s.log.Warn("render failed", "error", err)
	}
	if !s.flash.Empty() {
		fmt.Fprintf(s.out, "%s\n", s.flash.Message)
		s.flash = domain.Status{}
	}
}

func (s *Shell) homePage() view.HomePage {
	st := view.HomeState{
		AuthStatus:    s.sessions.Status(),
		Tours:         s.catalog.Tours(),
		Notice:        s.catalog.Notice(),
		Gate:          s.flow.Gate(),
		Guests:        s.flow.Guests(),
		Date:          s.flow.Date(),
		MinDate:       s.flow.MinDate(),
		Total:         s.flow.Total(),
		BookingStatus: s.flow.Status(),
	}
	if cur, ok := s.sessions.Current(); ok {
		st.Session = &cur
	}
	if t, ok := s.flow.Selected(); ok {
		st.Selected = &t
	}
	return view.Home(st)
}

func (s *Shell) consolePage() view.ConsolePage {
	c := s.console
	return view.Console(view.ConsoleState{
		Greeting:      c.Greeting(),
		Status:        c.Status(),
		CreateForm:    c.CreateForm(),
		CreateStatus:  c.CreateStatus(),
		Rows:          c.Rows(),
		Bookings:      c.Bookings(),
		BookingStatus: c.BookingStatus(),
	})
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// ask prints label and reads one line. ok is false at end of input.
func (s *Shell) ask(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

func (s *Shell) confirm(prompt string) bool {
	answer, ok := s.ask(prompt + " [y/N] ")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// defaultReadPassword reads without echo on a terminal, and falls back to
// a plain line for pipes and tests.
func (s *Shell) defaultReadPassword() (string, error) {
	if f, ok := s.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(s.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, ok := s.readLine()
	if !ok {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return line, nil
}

func (s *Shell) password() (string, error) {
	fmt.Fprint(s.out, "Password: ")
	pw, err := s.readPassword()
	if err != nil {
		return "", fmt.Errorf("shell.Shell.password: %w", err)
	}
	if pw == "" {
		return "", errors.New("password cannot be empty")
	}
	return pw, nil
}

// splitCommand returns the lower-cased command name and the rest of the
// line with surrounding space trimmed.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	name, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(name), strings.TrimSpace(rest)
}
