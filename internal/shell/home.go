package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/tourdesk/internal/domain"
)

// Messages printed by the shell itself.
const (
	MsgOperatorOnly   = "Sign in as an operator to open the console."
	MsgUnknownCommand = "Unknown command %q. Type 'help' for a list."
	MsgNoSuchTour     = "There is no tour #%s."
	MsgNotSignedIn    = "Not signed in."
	MsgBadDate        = "Enter a date like 2026-06-01T09:30."
	MsgBadNumber      = "%q is not a number."
	MsgUnknownRole    = "Role must be customer or operator."
)

const homeHelp = `Commands:
  tours                 reload the tour list
  show N                open tour number N
  close                 close the open tour
  guests N              set the number of guests
  date VALUE            set the booking date, e.g. 2026-06-01T09:30
  book                  send the booking request
  login EMAIL [PASS]    sign in (the password is prompted when omitted)
  register              create an account
  logout                sign out
  whoami                show the signed-in account
  operator              open the operator console
  help                  show this list
  quit                  leave
`

func (s *Shell) homeCommand(ctx context.Context, name, args string) {
	switch name {
	case "tours":
		s.catalog.Load(ctx)
	case "show":
		tour, ok := s.tourArg(args)
		if !ok {
			s.flash = domain.Failure(fmt.Sprintf(MsgNoSuchTour, args))
			return
		}
		s.flow.Select(tour)
	case "close":
		s.flow.Close()
	case "guests":
		n, err := strconv.Atoi(args)
		if err != nil {
			s.flash = domain.Failure(fmt.Sprintf(MsgBadNumber, args))
			return
		}
		s.flow.SetGuests(n)
	case "date":
		if args != "" {
			if _, err := domain.ParseLocalTime(args); err != nil {
				s.flash = domain.Failure(MsgBadDate)
				return
			}
		}
		// A date before the earliest allowed one sets the flow's status.
		_ = s.flow.SetDate(args)
	case "book":
		if _, err := s.flow.Submit(ctx); err != nil {
			s.log.DebugContext(ctx, "booking not sent", "error", err)
		}
	case "login":
		s.login(ctx, args)
	case "register":
		s.register(ctx)
	case "logout":
		s.sessions.Logout(ctx)
	case "whoami":
		cur, ok := s.sessions.Current()
		if !ok {
			s.flash = domain.Info(MsgNotSignedIn)
			return
		}
		s.flash = domain.Info(fmt.Sprintf("%s <%s> · %s", cur.Name, cur.Email, cur.Role.Label()))
	case "operator", "console":
		s.goConsole(ctx)
	case "help":
		fmt.Fprint(s.out, homeHelp)
	default:
		s.flash = domain.Failure(fmt.Sprintf(MsgUnknownCommand, name))
	}
}

// tourArg resolves a 1-based card number.
func (s *Shell) tourArg(arg string) (domain.Tour, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return domain.Tour{}, false
	}
	return s.catalog.Tour(n - 1)
}

func (s *Shell) login(ctx context.Context, args string) {
	email, password, _ := strings.Cut(args, " ")
	password = strings.TrimSpace(password)
	if email == "" {
		var ok bool
		if email, ok = s.ask("Email: "); !ok {
			return
		}
	}
	if password == "" {
		pw, err := s.password()
		if err != nil {
			s.flash = domain.Failure(err.Error())
			return
		}
		password = pw
	}
	if _, err := s.sessions.Login(ctx, email, password); err != nil {
		s.log.DebugContext(ctx, "login failed", "error", err)
	}
}

func (s *Shell) register(ctx context.Context) {
	name, ok := s.ask("Name: ")
	if !ok {
		return
	}
	email, ok := s.ask("Email: ")
	if !ok {
		return
	}
	password, err := s.password()
	if err != nil {
		s.flash = domain.Failure(err.Error())
		return
	}
	answer, ok := s.ask("Role (customer/operator) [customer]: ")
	if !ok {
		return
	}
	role := domain.RoleCustomer
	if answer != "" {
		if role, ok = domain.ParseRole(answer); !ok {
			s.flash = domain.Failure(MsgUnknownRole)
			return
		}
	}
	if _, err := s.sessions.Register(ctx, name, email, password, role); err != nil {
		s.log.DebugContext(ctx, "registration failed", "error", err)
	}
}
