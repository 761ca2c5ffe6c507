// Package view maps page state to display descriptions and writes those
// descriptions as text. Nothing here performs I/O beyond the writer given.
package view

import (
	"fmt"
	"time"

	"github.com/pkordes/tourdesk/internal/booking"
	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/format"
)

// MsgNoTours is shown when the live catalog is empty.
const MsgNoTours = "No tours are listed yet. Check back soon."

// HomeState is everything the home page is drawn from.
type HomeState struct {
	Session       *domain.Session
	AuthStatus    domain.Status
	Tours         []domain.Tour
	Notice        domain.Status
	Selected      *domain.Tour
	Gate          booking.Gate
	Guests        int
	Date          string
	MinDate       time.Time
	Total         string
	BookingStatus domain.Status
}

// Header is the top bar.
type Header struct {
	SignedIn    bool
	Badge       string
	ShowLogout  bool
	ShowConsole bool
}

// Card is one tour in the list.
type Card struct {
	Number      int
	Title       string
	Location    string
	Price       string
	Capacity    string
	Duration    string
	Description string
	Bookable    bool
	Selected    bool
}

// Detail is the open tour panel with its booking form.
type Detail struct {
	Title         string
	Location      string
	Description   string
	Price         string
	Capacity      string
	Duration      string
	AvailableFrom string
	ActivityLevel string
	Gear          []string
	Highlights    []string
	GuideTip      string
	Gate          booking.Gate
	Guests        int
	Date          string
	MinDate       string
	Total         string
	Status        domain.Status
}

// HomePage is the display description of the home page.
type HomePage struct {
	Header     Header
	AuthStatus domain.Status
	Notice     domain.Status
	Cards      []Card
	Empty      string
	Detail     *Detail
}

// Home describes the home page for s.
func Home(s HomeState) HomePage {
	p := HomePage{
		Header:     header(s.Session),
		AuthStatus: s.AuthStatus,
		Notice:     s.Notice,
		Cards:      make([]Card, 0, len(s.Tours)),
	}
	for i, t := range s.Tours {
		p.Cards = append(p.Cards, Card{
			Number:      i + 1,
			Title:       t.Title,
			Location:    t.Location,
			Price:       format.Price(t.Price),
			Capacity:    format.Capacity(t.MaxCapacity),
			Duration:    format.Duration(t.DurationHours),
			Description: t.Description,
			Bookable:    t.Bookable(),
			Selected:    s.Selected != nil && sameTour(*s.Selected, t),
		})
	}
	if len(s.Tours) == 0 {
		p.Empty = MsgNoTours
	}
	if s.Selected != nil {
		p.Detail = detail(*s.Selected, s)
	}
	return p
}

func header(sess *domain.Session) Header {
	if sess == nil {
		return Header{Badge: "Not signed in"}
	}
	return Header{
		SignedIn:    true,
		Badge:       fmt.Sprintf("%s · %s", sess.Name, sess.Role.Label()),
		ShowLogout:  true,
		ShowConsole: sess.Role == domain.RoleOperator,
	}
}

func detail(t domain.Tour, s HomeState) *Detail {
	return &Detail{
		Title:         t.Title,
		Location:      t.Location,
		Description:   t.Description,
		Price:         format.Price(t.Price),
		Capacity:      format.Capacity(t.MaxCapacity),
		Duration:      format.Duration(t.DurationHours),
		AvailableFrom: format.Date(t.AvailableAt()),
		ActivityLevel: t.ActivityLevel,
		Gear:          t.Gear,
		Highlights:    t.Highlights,
		GuideTip:      t.GuideTip,
		Gate:          s.Gate,
		Guests:        s.Guests,
		Date:          s.Date,
		MinDate:       format.DateTimeInput(s.MinDate),
		Total:         s.Total,
		Status:        s.BookingStatus,
	}
}

// sameTour matches live tours by id and demo tours by title.
func sameTour(a, b domain.Tour) bool {
	if a.ID > 0 || b.ID > 0 {
		return a.ID == b.ID
	}
	return a.Title == b.Title
}
