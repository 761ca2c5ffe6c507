package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Price is a tour price. The backend sends a number, but older data and demo
// fixtures may carry free text ("Ask the guide"), so the raw value is kept
// when it does not parse. Numeric is false for both free text and absence.
type Price struct {
	Amount  float64
	Raw     string
	Numeric bool
}

// NewPrice returns a numeric price.
func NewPrice(amount float64) Price {
	return Price{Amount: amount, Numeric: true}
}

// ParsePrice interprets s the way a form field would: numeric text becomes a
// numeric price, anything else is kept verbatim, blank is absent.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return NewPrice(f)
	}
	return Price{Raw: s}
}

// UnmarshalJSON accepts a JSON number, a string, or null.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Price{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode price: %w", err)
		}
		*p = ParsePrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode price: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("decode price: %w", err)
	}
	*p = NewPrice(f)
	return nil
}

// MarshalJSON writes a number, the raw string, or null.
func (p Price) MarshalJSON() ([]byte, error) {
	switch {
	case p.Numeric:
		return []byte(strconv.FormatFloat(p.Amount, 'f', -1, 64)), nil
	case p.Raw != "":
		return json.Marshal(p.Raw)
	default:
		return []byte("null"), nil
	}
}

// LocalTimeLayout is the wire format of the backend's zone-less timestamps.
const LocalTimeLayout = "2006-01-02T15:04:05"

// localTimeLayouts are tried in order when parsing.
var localTimeLayouts = []string{
	LocalTimeLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006-01-02",
}

// LocalTime is a timestamp without a zone, interpreted in the local zone.
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps t.
func NewLocalTime(t time.Time) *LocalTime {
	return &LocalTime{Time: t}
}

// ParseLocalTime parses any of the accepted layouts in the local zone.
func ParseLocalTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range localTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date-time %q", ErrValidation, s)
}

// UnmarshalJSON accepts a date-time string or null.
func (lt *LocalTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		lt.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode date-time: %w", err)
	}
	t, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	lt.Time = t
	return nil
}

// MarshalJSON writes the zone-less wire format.
func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(lt.Time.Format(LocalTimeLayout))
}
