// Package domain contains the core data types shared by the tourdesk client
// and the development API. It only depends on small value-type libraries.
package domain

import "time"

// Tour is a bookable offering as returned by the backend.
// ID is zero for built-in demo tours; those must never be booked.
type Tour struct {
	ID            int64      `json:"id,omitempty"`
	OperatorID    int64      `json:"operatorId,omitempty"`
	OperatorName  string     `json:"operatorName,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Price         Price      `json:"price"`
	Location      string     `json:"location"`
	MaxCapacity   int        `json:"maxCapacity,omitempty"` // 0 = flexible
	DurationHours *int       `json:"durationHours,omitempty"`
	AvailableFrom *LocalTime `json:"availableFrom,omitempty"`
	CreatedAt     *LocalTime `json:"createdAt,omitempty"`
	UpdatedAt     *LocalTime `json:"updatedAt,omitempty"`

	// Detail-view extras. The backend does not send these; demo tours do.
	ActivityLevel string   `json:"activityLevel,omitempty"`
	Gear          []string `json:"gear,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
	GuideTip      string   `json:"guideTip,omitempty"`
}

// Bookable reports whether the tour came from the backend.
func (t Tour) Bookable() bool {
	return t.ID > 0
}

// AvailableAt returns the tour's available-from time, or the zero time.
func (t Tour) AvailableAt() time.Time {
	if t.AvailableFrom == nil {
		return time.Time{}
	}
	return t.AvailableFrom.Time
}

// TourRequest is the create/update payload for a tour. Optional fields are
// omitted from the JSON body when blank.
type TourRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Price         float64    `json:"price"`
	Location      string     `json:"location"`
	MaxCapacity   int        `json:"maxCapacity,omitempty"` // 0 = flexible
	AvailableFrom *LocalTime `json:"availableFrom,omitempty"`
	DurationHour  int        `json:"durationHour"`
}
