package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourdesk/internal/catalog"
	"github.com/pkordes/tourdesk/internal/domain"
)

type mockLister struct {
	listFn func(ctx context.Context) ([]domain.Tour, error)
}

var _ catalog.Lister = (*mockLister)(nil)

func (m *mockLister) ListTours(ctx context.Context) ([]domain.Tour, error) {
	return m.listFn(ctx)
}

func TestLoad_Live(t *testing.T) {
	live := []domain.Tour{{ID: 1, Title: "Misty Mountain Hike", Price: domain.NewPrice(129)}}
	c := catalog.New(&mockLister{listFn: func(context.Context) ([]domain.Tour, error) { return live, nil }})

	got := c.Load(context.Background())
	assert.Equal(t, live, got)
	assert.True(t, c.Live())
	assert.True(t, c.Notice().Empty())
}

func TestLoad_FallsBackToDemo(t *testing.T) {
	for name, err := range map[string]error{
		"unreachable": fmt.Errorf("dial: %w", domain.ErrUnreachable),
		"rejected":    fmt.Errorf("500: %w", domain.ErrRejected),
	} {
		t.Run(name, func(t *testing.T) {
			c := catalog.New(&mockLister{listFn: func(context.Context) ([]domain.Tour, error) { return nil, err }})

			got := c.Load(context.Background())
			assert.Equal(t, catalog.DemoTours(), got)
			assert.False(t, c.Live())
			assert.Equal(t, domain.Info(catalog.MsgDemoFallback), c.Notice())
			for _, tour := range got {
				assert.False(t, tour.Bookable(), "demo tour %q must not be bookable", tour.Title)
			}
		})
	}
}

func TestLoad_ReplacesPreviousList(t *testing.T) {
	fail := true
	c := catalog.New(&mockLister{listFn: func(context.Context) ([]domain.Tour, error) {
		if fail {
			return nil, domain.ErrUnreachable
		}
		return []domain.Tour{{ID: 9, Title: "Red Desert Stars"}}, nil
	}})

	c.Load(context.Background())
	require.Len(t, c.Tours(), 3)

	fail = false
	c.Load(context.Background())
	require.Len(t, c.Tours(), 1)
	assert.Equal(t, "Red Desert Stars", c.Tours()[0].Title)
	assert.True(t, c.Notice().Empty(), "success clears the notice")
}

func TestTour_Index(t *testing.T) {
	c := catalog.New(&mockLister{listFn: func(context.Context) ([]domain.Tour, error) {
		return []domain.Tour{{ID: 1}, {ID: 2}}, nil
	}})
	c.Load(context.Background())

	tour, ok := c.Tour(1)
	require.True(t, ok)
	assert.Equal(t, int64(2), tour.ID)

	_, ok = c.Tour(2)
	assert.False(t, ok)
	_, ok = c.Tour(-1)
	assert.False(t, ok)
}

func TestDemoTours_FreshCopies(t *testing.T) {
	a := catalog.DemoTours()
	a[0].Title = "changed"
	*a[0].DurationHours = 99

	b := catalog.DemoTours()
	assert.Equal(t, "Sunset Kayak Adventure", b[0].Title)
	assert.Equal(t, 3, *b[0].DurationHours)
	for _, tour := range b {
		assert.NotEmpty(t, tour.ActivityLevel)
		assert.NotEmpty(t, tour.Gear)
		assert.NotEmpty(t, tour.Highlights)
		assert.NotEmpty(t, tour.GuideTip)
	}
}
