// Package viewmodel keeps per-screen state for the terminal UI: continuous
// reads shared through stream.Shared, background writes, and one-shot UI
// events for their outcomes.
package viewmodel

import (
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/sprout/internal/stream"
)

type options struct {
	grace time.Duration
	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures a view-model.
type Option func(*options)

// WithGracePeriod sets how long continuous reads outlive their last subscriber.
func WithGracePeriod(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.grace = d
		}
	}
}

// WithClock replaces time.Now for watering projections and event stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{
		grace: stream.DefaultGracePeriod,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
