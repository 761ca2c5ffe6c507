package console

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/tourdesk/internal/domain"
	"github.com/pkordes/tourdesk/internal/format"
)

// TourForm holds a tour form exactly as typed. Values are converted only
// when a payload is built.
type TourForm struct {
	Title         string
	Description   string
	Price         string
	Location      string
	MaxCapacity   string
	DurationHour  string
	AvailableFrom string
}

// FormFields lists the canonical field names accepted by TourForm.Set.
var FormFields = []string{"title", "description", "price", "location", "maxCapacity", "durationHour", "availableFrom"}

// FormFromTour seeds a form with a tour's current values.
func FormFromTour(t domain.Tour) TourForm {
	f := TourForm{
		Title:         t.Title,
		Description:   t.Description,
		Location:      t.Location,
		AvailableFrom: format.DateTimeInput(t.AvailableAt()),
	}
	switch {
	case t.Price.Numeric:
		f.Price = strconv.FormatFloat(t.Price.Amount, 'f', -1, 64)
	default:
		f.Price = t.Price.Raw
	}
	if t.MaxCapacity > 0 {
		f.MaxCapacity = strconv.Itoa(t.MaxCapacity)
	}
	if t.DurationHours != nil {
		f.DurationHour = strconv.Itoa(*t.DurationHours)
	}
	return f
}

// Set assigns one field by name. Short aliases ("capacity", "duration",
// "from") are accepted.
func (f *TourForm) Set(field, value string) error {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "price":
		f.Price = value
	case "location":
		f.Location = value
	case "maxcapacity", "capacity":
		f.MaxCapacity = value
	case "durationhour", "durationhours", "duration":
		f.DurationHour = value
	case "availablefrom", "from":
		f.AvailableFrom = value
	default:
		return fmt.Errorf("%w: unknown field %q (want one of %s)", domain.ErrValidation, field, strings.Join(FormFields, ", "))
	}
	return nil
}

// FieldError is a client-side validation failure for one form field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return domain.ErrValidation }

// number parses s the way a browser's Number() does for form input: blank
// is 0, surrounding space is ignored, anything else unparseable is NaN.
func number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func wholeAtLeast(field, label, raw string, least int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &FieldError{Field: field, Message: label + " is required."}
	}
	n := number(raw)
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n < float64(least) {
		return 0, &FieldError{Field: field, Message: fmt.Sprintf("%s must be a whole number of at least %d.", label, least)}
	}
	return int(n), nil
}

// BuildPayload converts the form into a create/update request. Strings are
// trimmed, numeric fields parsed, and blank optional fields left absent.
// The returned error is a *FieldError.
func BuildPayload(f TourForm) (domain.TourRequest, error) {
	var req domain.TourRequest

	req.Title = strings.TrimSpace(f.Title)
	if req.Title == "" {
		return domain.TourRequest{}, &FieldError{Field: "title", Message: "Title is required."}
	}
	req.Location = strings.TrimSpace(f.Location)
	if req.Location == "" {
		return domain.TourRequest{}, &FieldError{Field: "location", Message: "Location is required."}
	}
	if d := strings.TrimSpace(f.Description); d != "" {
		req.Description = &d
	}

	if strings.TrimSpace(f.Price) == "" {
		return domain.TourRequest{}, &FieldError{Field: "price", Message: "Price is required."}
	}
	price := number(f.Price)
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.TourRequest{}, &FieldError{Field: "price", Message: "Price must be a number of at least 0."}
	}
	req.Price = price

	var err error
	// Blank capacity means flexible and is left out of the request.
	if strings.TrimSpace(f.MaxCapacity) != "" {
		if req.MaxCapacity, err = wholeAtLeast("maxCapacity", "Max capacity", f.MaxCapacity, 1); err != nil {
			return domain.TourRequest{}, err
		}
	}
	if req.DurationHour, err = wholeAtLeast("durationHour", "Duration (hours)", f.DurationHour, 1); err != nil {
		return domain.TourRequest{}, err
	}

	if from := strings.TrimSpace(f.AvailableFrom); from != "" {
		t, err := domain.ParseLocalTime(from)
		if err != nil {
			return domain.TourRequest{}, &FieldError{Field: "availableFrom", Message: "Available from must be a date and time."}
		}
		req.AvailableFrom = domain.NewLocalTime(t)
	}
	return req, nil
}
