package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkordes/tourdesk/internal/domain"
)

// ListTours fetches the public tour list.
func (c *Client) ListTours(ctx context.Context) ([]domain.Tour, error) {
	var tours []domain.Tour
	if err := c.do(ctx, http.MethodGet, "/tours", "", nil, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

// GetTour fetches a single tour.
func (c *Client) GetTour(ctx context.Context, id int64) (domain.Tour, error) {
	var tour domain.Tour
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tours/%d", id), "", nil, &tour); err != nil {
		return domain.Tour{}, err
	}
	return tour, nil
}

// ListOperatorTours fetches the tours owned by operatorID.
func (c *Client) ListOperatorTours(ctx context.Context, authorization string, operatorID int64) ([]domain.Tour, error) {
	var tours []domain.Tour
	path := fmt.Sprintf("/tours/operators/%d", operatorID)
	if err := c.do(ctx, http.MethodGet, path, authorization, nil, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

// CreateTour creates a tour owned by the authenticated operator.
func (c *Client) CreateTour(ctx context.Context, authorization string, req domain.TourRequest) (domain.Tour, error) {
	var tour domain.Tour
	if err := c.do(ctx, http.MethodPost, "/tours", authorization, req, &tour); err != nil {
		return domain.Tour{}, err
	}
	return tour, nil
}

// UpdateTour replaces the editable fields of tour id.
func (c *Client) UpdateTour(ctx context.Context, authorization string, id int64, req domain.TourRequest) (domain.Tour, error) {
	var tour domain.Tour
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tours/%d", id), authorization, req, &tour); err != nil {
		return domain.Tour{}, err
	}
	return tour, nil
}

// DeleteTour removes tour id.
func (c *Client) DeleteTour(ctx context.Context, authorization string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tours/%d", id), authorization, nil, nil)
}
