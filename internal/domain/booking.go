package domain

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus accepts any casing, plus "canceled".
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING", "RESET":
		return BookingPending, nil
	case "CONFIRMED", "CONFIRM":
		return BookingConfirmed, nil
	case "CANCELLED", "CANCELED", "CANCEL":
		return BookingCancelled, nil
	default:
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
	}
}

// Booking is a customer's reservation request for a tour.
type Booking struct {
	ID             int64         `json:"id"`
	Reference      string        `json:"reference,omitempty"`
	TourID         int64         `json:"tourId,omitempty"`
	TourTitle      string        `json:"tourTitle,omitempty"`
	CustomerName   string        `json:"customerName,omitempty"`
	Status         BookingStatus `json:"status"`
	NumberOfPeople int           `json:"numberOfPeople"`
	TotalPrice     float64       `json:"totalPrice"`
	BookingDate    *LocalTime    `json:"bookingDate,omitempty"`
	CreatedAt      *LocalTime    `json:"createdAt,omitempty"`

	// OperatorID and CustomerID are server-side bookkeeping.
	OperatorID int64 `json:"-"`
	CustomerID int64 `json:"-"`
}

// BookingRequest is the payload for POST /bookings. BookingDate is sent as
// the normalised form value (seconds always present).
type BookingRequest struct {
	TourID         int64         `json:"tourId"`
	NumberOfPeople int           `json:"numberOfPeople"`
	TotalPrice     float64       `json:"totalPrice"`
	BookingDate    string        `json:"bookingDate"`
	Status         BookingStatus `json:"status"`
}

// Label is the lower-case display name of the status.
func (s BookingStatus) Label() string {
	return strings.ToLower(string(s))
}
