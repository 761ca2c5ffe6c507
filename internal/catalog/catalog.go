// Package catalog holds the public tour list shown on the home page.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkordes/tourdesk/internal/domain"
)

// MsgDemoFallback is shown while the demo set stands in for live tours.
const MsgDemoFallback = "Showing demo tours — live tours are unavailable right now."

// Lister fetches the public tour list.
type Lister interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
}

// Catalog is the tour list view-model. It is safe for concurrent use.
type Catalog struct {
	lister Lister
	log    *slog.Logger

	mu     sync.RWMutex
	tours  []domain.Tour
	live   bool
	notice domain.Status
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log
		}
	}
}

// New returns an empty catalog.
func New(lister Lister, opts ...Option) *Catalog {
	c := &Catalog{lister: lister, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the displayed list. Any failure falls back to DemoTours and
// raises an info notice; the fallback is never stored anywhere.
func (c *Catalog) Load(ctx context.Context) []domain.Tour {
	tours, err := c.lister.ListTours(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.WarnContext(ctx, "tour list unavailable, using demo tours", "error", err)
		c.tours = DemoTours()
		c.live = false
		c.notice = domain.Info(MsgDemoFallback)
		return clone(c.tours)
	}
	if tours == nil {
		tours = []domain.Tour{}
	}
	c.tours = tours
	c.live = true
	c.notice = domain.Status{}
	return clone(c.tours)
}

// Tours returns the displayed list.
func (c *Catalog) Tours() []domain.Tour {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.tours)
}

// Tour returns the tour at index i of the displayed list.
func (c *Catalog) Tour(i int) (domain.Tour, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.tours) {
		return domain.Tour{}, false
	}
	return c.tours[i], true
}

// Live reports whether the list came from the backend.
func (c *Catalog) Live() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.live
}

// Notice is the non-fatal banner above the list, if any.
func (c *Catalog) Notice() domain.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notice
}

func clone(tours []domain.Tour) []domain.Tour {
	out := make([]domain.Tour, len(tours))
	copy(out, tours)
	return out
}
