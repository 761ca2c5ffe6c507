package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkordes/tourdesk/internal/domain"
)

// printer remembers the first write error so callers can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) status(s domain.Status) {
	if s.Empty() {
		return
	}
	p.printf("%s %s\n", statusTag(s.Kind), s.Message)
}

func statusTag(k domain.StatusKind) string {
	switch k {
	case domain.StatusSuccess:
		return "[ok]"
	case domain.StatusError:
		return "[error]"
	default:
		return "[info]"
	}
}

func mark(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

// WriteHome writes the home page as text.
func WriteHome(w io.Writer, page HomePage) error {
	p := &printer{w: w}

	p.printf("== Tours ==  %s", page.Header.Badge)
	if page.Header.ShowConsole {
		p.printf("  (operator console: 'operator')")
	}
	if page.Header.ShowLogout {
		p.printf("  (sign out: 'logout')")
	}
	p.printf("\n")
	p.status(page.AuthStatus)
	p.status(page.Notice)

	if page.Empty != "" {
		p.printf("%s\n", page.Empty)
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		tp := &printer{w: tw}
		tp.printf("#\tTOUR\tLOCATION\tPRICE\tCAPACITY\tDURATION\t\n")
		for _, c := range page.Cards {
			tp.printf("%s%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				mark(c.Selected, ">", " "), c.Number, c.Title, c.Location,
				c.Price, c.Capacity, c.Duration, mark(c.Bookable, "", "demo"))
		}
		if tp.err == nil {
			tp.err = tw.Flush()
		}
		if p.err == nil {
			p.err = tp.err
		}
	}

	if d := page.Detail; d != nil {
		writeDetail(p, d)
	}
	return p.err
}

func writeDetail(p *printer, d *Detail) {
	p.printf("\n-- %s --\n", d.Title)
	p.printf("%s\n", d.Location)
	if d.Description != "" {
		p.printf("%s\n", d.Description)
	}
	p.printf("Price: %s   Capacity: %s   Duration: %s   Available from: %s\n",
		d.Price, d.Capacity, d.Duration, d.AvailableFrom)
	if d.ActivityLevel != "" {
		p.printf("Activity level: %s\n", d.ActivityLevel)
	}
	if len(d.Gear) > 0 {
		p.printf("Gear: %s\n", strings.Join(d.Gear, ", "))
	}
	for _, h := range d.Highlights {
		p.printf("  * %s\n", h)
	}
	if d.GuideTip != "" {
		p.printf("Guide tip: %s\n", d.GuideTip)
	}

	p.printf("\n%s %s\n", mark(d.Gate.Enabled, "[book]", "[locked]"), d.Gate.Message)
	if d.Gate.Enabled {
		p.printf("Guests: %d   Date: %s (earliest %s)   Total: %s\n", d.Guests, d.Date, d.MinDate, d.Total)
	}
	p.status(d.Status)
}

// WriteConsole writes the operator console as text.
func WriteConsole(w io.Writer, page ConsolePage) error {
	p := &printer{w: w}

	p.printf("== Operator console ==  %s\n", page.Greeting)
	p.printf("\n-- New tour --\n")
	writeForm(p, "  ", page.CreateForm.Title, page.CreateForm.Description, page.CreateForm.Price,
		page.CreateForm.Location, page.CreateForm.MaxCapacity, page.CreateForm.DurationHour, page.CreateForm.AvailableFrom)
	p.status(page.CreateStatus)

	p.printf("\n-- Your tours --\n")
	p.status(page.Status)
	for _, r := range page.Rows {
		p.printf("\n[%d] %s\n    %s\n", r.ID, r.Title, r.Meta)
		f := r.Form
		writeForm(p, "    ", f.Title, f.Description, f.Price, f.Location, f.MaxCapacity, f.DurationHour, f.AvailableFrom)
		if !r.Status.Empty() {
			p.printf("    ")
			p.status(r.Status)
		}
	}

	p.printf("\n-- Bookings --\n")
	p.status(page.BookingStatus)
	if len(page.Bookings) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		tp := &printer{w: tw}
		tp.printf("ID\tTOUR\tCUSTOMER\tGUESTS\tTOTAL\tDATE\tSTATUS\t\n")
		for _, b := range page.Bookings {
			tp.printf("%d\t%s\t%s\t%d\t%s\t%s\t%s\t\n", b.ID, b.Tour, b.Customer, b.Guests, b.Total, b.Date, b.Status)
		}
		if tp.err == nil {
			tp.err = tw.Flush()
		}
		if p.err == nil {
			p.err = tp.err
		}
	}
	return p.err
}

func writeForm(p *printer, indent string, title, description, price, location, capacity, duration, from string) {
	p.printf("%stitle=%q description=%q\n", indent, title, description)
	p.printf("%sprice=%q location=%q maxCapacity=%q durationHour=%q availableFrom=%q\n",
		indent, price, location, capacity, duration, from)
}
