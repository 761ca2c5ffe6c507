package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/tourdesk/internal/console"
	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/session"
)

// MsgNoSuchRow is shown when a command names a tour the console does not list.
const MsgNoSuchRow = "You have no tour with id %s."

const consoleHelp = `Commands:
  list                        reload your tours
  create                      fill in and submit the new tour form
  edit ID FIELD VALUE         change one field of a tour's form
  save ID                     save a tour's form
  delete ID                   delete a tour (asks first)
  bookings                    reload bookings for your tours
  booking-status ID STATUS    set a booking to pending, confirmed or cancelled
  logout                      sign out
  home                        back to the tour list
  help                        show this list
  quit                        leave
`

var fieldLabels = map[string]string{
	"title":         "Title",
	"description":   "Description",
	"price":         "Price",
	"location":      "Location",
	"maxCapacity":   "Max capacity",
	"durationHour":  "Duration (hours)",
	"availableFrom": "Available from",
}

func (s *Shell) consoleCommand(ctx context.Context, name, args string) {
	c := s.console
	switch name {
	case "list":
		_ = c.LoadOwnedTours(ctx)
	case "create":
		form, ok := s.fillForm(c.CreateForm())
		if !ok {
			return
		}
		if _, err := c.CreateTour(ctx, form); err != nil {
			s.log.DebugContext(ctx, "tour not created", "error", err)
		}
	case "edit":
		idArg, rest, _ := strings.Cut(args, " ")
		field, value, _ := strings.Cut(strings.TrimSpace(rest), " ")
		id, ok := s.rowArg(idArg)
		if !ok {
			return
		}
		if err := c.EditRow(id, field, strings.TrimSpace(value)); err != nil {
			s.flash = domain.Failure(userMessage(err))
		}
	case "save":
		id, ok := s.rowArg(args)
		if !ok {
			return
		}
		if _, err := c.SaveRow(ctx, id); err != nil {
			s.log.DebugContext(ctx, "tour not saved", "tour_id", id, "error", err)
		}
	case "delete":
		id, ok := s.rowArg(args)
		if !ok {
			return
		}
		if _, err := c.DeleteTour(ctx, id); err != nil {
			s.log.DebugContext(ctx, "tour not deleted", "tour_id", id, "error", err)
		}
	case "bookings":
		_ = c.LoadBookings(ctx)
	case "booking-status":
		idArg, statusArg, _ := strings.Cut(args, " ")
		id, err := strconv.ParseInt(idArg, 10, 64)
		if err != nil {
			s.flash = domain.Failure(fmt.Sprintf(MsgBadNumber, idArg))
			return
		}
		status, err := domain.ParseBookingStatus(statusArg)
		if err != nil {
			s.flash = domain.Failure(userMessage(err))
			return
		}
		_ = c.SetBookingStatus(ctx, id, status)
	case "logout":
		c.Logout(ctx)
		s.goHome(ctx)
		s.flash = domain.Info(session.MsgSignedOut)
		return
	case "home", "tours":
		s.goHome(ctx)
		return
	case "help":
		fmt.Fprint(s.out, consoleHelp)
	default:
		s.flash = domain.Failure(fmt.Sprintf(MsgUnknownCommand, name))
	}
	s.leaveIfRedirected(ctx)
}

// rowArg parses a tour id the console lists.
func (s *Shell) rowArg(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err == nil {
		if _, ok := s.console.Row(id); ok {
			return id, true
		}
	}
	s.flash = domain.Failure(fmt.Sprintf(MsgNoSuchRow, arg))
	return 0, false
}

// fillForm prompts for every field. A blank answer keeps the value shown in
// brackets.
func (s *Shell) fillForm(form console.TourForm) (console.TourForm, bool) {
	current := map[string]string{
		"title":         form.Title,
		"description":   form.Description,
		"price":         form.Price,
		"location":      form.Location,
		"maxCapacity":   form.MaxCapacity,
		"durationHour":  form.DurationHour,
		"availableFrom": form.AvailableFrom,
	}
	for _, field := range console.FormFields {
		label := fieldLabels[field]
		if v := current[field]; v != "" {
			label += " [" + v + "]"
		}
		answer, ok := s.ask(label + ": ")
		if !ok {
			return form, false
		}
		if answer == "" {
			continue
		}
		if err := form.Set(field, answer); err != nil {
			return form, false
		}
	}
	return form, true
}

// userMessage strips the sentinel prefix from a validation error.
func userMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, domain.ErrValidation) {
		if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
			return msg[i+len(domain.ErrValidation.Error())+2:]
		}
	}
	return msg
}
