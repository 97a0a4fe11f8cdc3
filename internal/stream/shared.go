// Package stream holds the two reactive primitives the view-models are built
// on: Shared, a lazily started multicast of a continuous read, and
// EventQueue, a queue of one-shot events that are consumed exactly once.
package stream

import (
	"context"
	"sync"
	"time"
)

// DefaultGracePeriod is how long an upstream keeps running after its last
// subscriber leaves.
const DefaultGracePeriod = 5 * time.Second

// Upstream starts a continuous read. It must stop sending and close the
// returned channel once ctx is done.
type Upstream[T any] func(ctx context.Context) <-chan T

// Option configures a Shared.
type Option[T any] func(*Shared[T])

// WithInitial sets the value new subscribers see before the upstream has
// produced anything.
func WithInitial[T any](v T) Option[T] {
	return func(s *Shared[T]) {
		s.latest = v
		s.hasValue = true
	}
}

// WithGracePeriod sets how long the upstream outlives its last subscriber.
// Zero stops it immediately.
func WithGracePeriod[T any](d time.Duration) Option[T] {
	return func(s *Shared[T]) {
		if d >= 0 {
			s.grace = d
		}
	}
}

// WithEqual suppresses values equal to the latest one.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(s *Shared[T]) {
		s.equal = equal
	}
}

// WithDistinct suppresses consecutive duplicate values.
func WithDistinct[T comparable]() Option[T] {
	return WithEqual(func(a, b T) bool { return a == b })
}

// Shared multicasts one upstream to any number of subscribers.
//
// The upstream is started by the first Subscribe and cancelled a grace period
// after the last subscription closes; subscribing again inside that window
// keeps the same upstream. Each subscriber receives the latest value on
// subscribe and then every newer value, conflated: a slow reader only ever
// sees the newest value, never a backlog.
type Shared[T any] struct {
	upstream Upstream[T]
	grace    time.Duration
	equal    func(a, b T) bool

	mu       sync.Mutex
	subs     map[*Subscription[T]]struct{}
	latest   T
	hasValue bool
	closed   bool

	// run identifies the current upstream; values from older runs are dropped
	run     uint64
	running bool
	cancel  context.CancelFunc

	// stopGen invalidates pending stop timers
	stopGen   uint64
	stopTimer *time.Timer
}

// NewShared wraps upstream. Nothing runs until the first Subscribe.
func NewShared[T any](upstream Upstream[T], opts ...Option[T]) *Shared[T] {
	s := &Shared[T]{
		upstream: upstream,
		grace:    DefaultGracePeriod,
		subs:     make(map[*Subscription[T]]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscription is one attached reader of a Shared.
type Subscription[T any] struct {
	ch     chan T
	parent *Shared[T]
	once   sync.Once
}

// C delivers values. It is closed when the subscription or the Shared is closed.
func (sub *Subscription[T]) C() <-chan T {
	return sub.ch
}

// Close detaches the subscription. Safe to call more than once.
func (sub *Subscription[T]) Close() {
	sub.once.Do(func() {
		sub.parent.unsubscribe(sub)
	})
}

// Subscribe attaches a new reader, starting the upstream if needed.
func (s *Shared[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{ch: make(chan T, 1), parent: s}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(sub.ch)
		return sub
	}

	s.subs[sub] = struct{}{}
	if s.hasValue {
		sub.ch <- s.latest
	}

	if s.stopTimer != nil {
		s.stopTimer.Stop()
		s.stopTimer = nil
		s.stopGen++
	}

	if !s.running {
		s.start()
	}
	return sub
}

// Value returns the latest value and whether there is one.
func (s *Shared[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasValue
}

// Subscribers returns the number of attached subscriptions.
func (s *Shared[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Active reports whether the upstream is running.
func (s *Shared[T]) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Close stops the upstream and closes every subscription.
func (s *Shared[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stop()
	for sub := range s.subs {
		close(sub.ch)
		delete(s.subs, sub)
	}
}

// start must be called with mu held.
func (s *Shared[T]) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.run++
	s.running = true
	s.cancel = cancel

	values := s.upstream(ctx)
	go s.pump(ctx, s.run, values)
}

// stop must be called with mu held.
func (s *Shared[T]) stop() {
	if s.stopTimer != nil {
		s.stopTimer.Stop()
		s.stopTimer = nil
	}
	s.stopGen++
	if s.running {
		s.cancel()
		s.running = false
		s.run++
	}
}

func (s *Shared[T]) pump(ctx context.Context, run uint64, values <-chan T) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-values:
			if !ok {
				s.finished(run)
				return
			}
			s.publish(run, v)
		}
	}
}

// finished marks a run whose upstream ended by itself, so the next
// Subscribe restarts it.
func (s *Shared[T]) finished(run uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run != s.run || !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.run++
}

func (s *Shared[T]) publish(run uint64, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run != s.run || s.closed {
		return
	}
	if s.equal != nil && s.hasValue && s.equal(s.latest, v) {
		return
	}
	s.latest = v
	s.hasValue = true

	for sub := range s.subs {
		// Replace whatever the reader has not taken yet
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- v
	}
}

func (s *Shared[T]) unsubscribe(sub *Subscription[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub]; !ok {
		return
	}
	delete(s.subs, sub)
	close(sub.ch)

	if len(s.subs) > 0 || !s.running {
		return
	}

	if s.grace == 0 {
		s.stop()
		return
	}

	s.stopGen++
	gen := s.stopGen
	s.stopTimer = time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.stopGen || len(s.subs) > 0 {
			return
		}
		s.stopTimer = nil
		s.stop()
	})
}
