package view

import (
	"fmt"

	"github.com/pkordes/tourdesk/internal/console"
	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/format"
)

// ConsoleState is everything the operator console is drawn from.
type ConsoleState struct {
	Greeting      string
	Status        domain.Status
	CreateForm    console.TourForm
	CreateStatus  domain.Status
	Rows          []console.Row
	Bookings      []domain.Booking
	BookingStatus domain.Status
}

// TourRow is one owned tour with its own form and status line.
type TourRow struct {
	ID     int64
	Title  string
	Meta   string
	Form   console.TourForm
	Status domain.Status
}

// BookingRow is one line of the bookings table.
type BookingRow struct {
	ID       int64
	Tour     string
	Customer string
	Guests   int
	Total    string
	Date     string
	Status   string
}

// ConsolePage is the display description of the operator console.
type ConsolePage struct {
	Greeting      string
	Status        domain.Status
	CreateForm    console.TourForm
	CreateStatus  domain.Status
	Rows          []TourRow
	Bookings      []BookingRow
	BookingStatus domain.Status
}

// Console describes the operator console for s.
func Console(s ConsoleState) ConsolePage {
	p := ConsolePage{
		Greeting:      s.Greeting,
		Status:        s.Status,
		CreateForm:    s.CreateForm,
		CreateStatus:  s.CreateStatus,
		Rows:          make([]TourRow, 0, len(s.Rows)),
		Bookings:      make([]BookingRow, 0, len(s.Bookings)),
		BookingStatus: s.BookingStatus,
	}

	titles := make(map[int64]string, len(s.Rows))
	for _, r := range s.Rows {
		title := r.Tour.Title
		if title == "" {
			title = "Untitled tour"
		}
		titles[r.Tour.ID] = title
		p.Rows = append(p.Rows, TourRow{
			ID:     r.Tour.ID,
			Title:  title,
			Meta:   RowMeta(r.Tour),
			Form:   r.Form,
			Status: r.Status,
		})
	}

	for _, b := range s.Bookings {
		tour := b.TourTitle
		if tour == "" {
			tour = titles[b.TourID]
		}
		if tour == "" {
			tour = "Unknown"
		}
		date := "—"
		if b.BookingDate != nil {
			date = format.Date(b.BookingDate.Time)
		}
		p.Bookings = append(p.Bookings, BookingRow{
			ID:       b.ID,
			Tour:     tour,
			Customer: b.CustomerName,
			Guests:   b.NumberOfPeople,
			Total:    format.Currency(b.TotalPrice),
			Date:     date,
			Status:   b.Status.Label(),
		})
	}
	return p
}

// RowMeta is the summary line under an owned tour's title.
func RowMeta(t domain.Tour) string {
	location := t.Location
	if location == "" {
		location = "Location TBA"
	}
	capacity := "Flexible"
	if t.MaxCapacity > 0 {
		capacity = fmt.Sprint(t.MaxCapacity)
	}
	return fmt.Sprintf("%s · %s · Capacity %s", location, format.Price(t.Price), capacity)
}
