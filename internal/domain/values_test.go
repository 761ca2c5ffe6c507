package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourdesk/internal/domain"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Price
	}{
		{"number", `129.00`, domain.NewPrice(129)},
		{"numeric string", `"189.5"`, domain.NewPrice(189.5)},
		{"free text", `"Ask the guide"`, domain.Price{Raw: "Ask the guide"}},
		{"null", `null`, domain.Price{}},
		{"blank string", `"  "`, domain.Price{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Price
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrice_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(domain.NewPrice(199))
	require.NoError(t, err)
	assert.Equal(t, `199`, string(b))

	b, err = json.Marshal(domain.Price{Raw: "TBD"})
	require.NoError(t, err)
	assert.Equal(t, `"TBD"`, string(b))
}

func TestLocalTime_RoundTrip(t *testing.T) {
	var tour domain.Tour
	raw := `{"id":7,"title":"Misty Mountain Hike","price":129,"location":"Aspen, USA","availableFrom":"2026-05-01T08:30:00"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &tour))

	require.NotNil(t, tour.AvailableFrom)
	assert.Equal(t, time.Date(2026, 5, 1, 8, 30, 0, 0, time.Local), tour.AvailableFrom.Time)

	out, err := json.Marshal(tour.AvailableFrom)
	require.NoError(t, err)
	assert.Equal(t, `"2026-05-01T08:30:00"`, string(out))
}

func TestParseLocalTime(t *testing.T) {
	got, err := domain.ParseLocalTime("2026-05-01T08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = domain.ParseLocalTime("next tuesday")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTour_Bookable(t *testing.T) {
	assert.True(t, domain.Tour{ID: 3}.Bookable())
	assert.False(t, domain.Tour{Title: "Demo"}.Bookable())
}
