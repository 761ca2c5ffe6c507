package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkordes/tourdesk/internal/domain"
)

type bookingStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// CreateBooking submits a booking request as the authenticated customer.
func (c *Client) CreateBooking(ctx context.Context, authorization string, req domain.BookingRequest) (domain.Booking, error) {
	var b domain.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", authorization, req, &b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// ListOperatorBookings fetches bookings made against the operator's tours.
func (c *Client) ListOperatorBookings(ctx context.Context, authorization string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/operator", authorization, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateBookingStatus moves booking id to status.
func (c *Client) UpdateBookingStatus(ctx context.Context, authorization string, id int64, status domain.BookingStatus) (domain.Booking, error) {
	var b domain.Booking
	path := fmt.Sprintf("/bookings/%d/status", id)
	if err := c.do(ctx, http.MethodPatch, path, authorization, bookingStatusRequest{Status: status}, &b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}
