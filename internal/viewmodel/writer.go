package viewmodel

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/thenoetrevino/sprout/internal/services/garden"
	"github.com/thenoetrevino/sprout/internal/stream"
)

// Status is the write state of a screen.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
)

func (s Status) String() string {
	if s == StatusPending {
		return "pending"
	}
	return "idle"
}

// writer runs garden writes off the caller's goroutine, scoped to a screen's
// lifetime, and turns their results into UI events.
type writer struct {
	opts options

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
	pending atomic.Int32
	events  *stream.EventQueue[UIEvent]
}

func newWriter(opts options) *writer {
	ctx, cancel := context.WithCancel(context.Background())
	return &writer{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		events: stream.NewEventQueue[UIEvent](),
	}
}

// launch starts op in the background. Results of writes still running when
// the screen closes are dropped.
func (w *writer) launch(op func(ctx context.Context) garden.Result) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.pending.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()

		res := op(w.ctx)
		if w.ctx.Err() != nil {
			w.pending.Add(-1)
			return
		}

		w.events.Post(w.eventFor(res))
		w.pending.Add(-1)
	}()
}

func (w *writer) eventFor(res garden.Result) UIEvent {
	e := UIEvent{
		ID:      w.opts.newID(),
		Kind:    EventSuccess,
		Action:  res.Action,
		PlantID: res.PlantID,
		At:      w.opts.now(),
	}
	if res.Err != nil {
		slog.Warn("garden write failed", "action", res.Action, "plant_id", res.PlantID, "error", res.Err)
		e.Kind = EventError
		e.Err = res.Err
	}
	return e
}

// Status reports Pending while any write is in flight.
func (w *writer) Status() Status {
	if w.pending.Load() > 0 {
		return StatusPending
	}
	return StatusIdle
}

// PeekEvent returns the current UI event without consuming it.
func (w *writer) PeekEvent() (UIEvent, bool) {
	return w.events.Peek()
}

// DismissSnackbar consumes the current UI event. It is never shown again.
func (w *writer) DismissSnackbar() {
	w.events.Dismiss()
}

// DismissEvent consumes the current UI event only if it is the one with id.
func (w *writer) DismissEvent(e UIEvent) bool {
	return w.events.DismissIf(func(head UIEvent) bool { return head.ID == e.ID })
}

// Events is signalled whenever a new UI event is posted.
func (w *writer) Events() <-chan struct{} {
	return w.events.Ready()
}

// Wait blocks until every launched write has finished.
func (w *writer) Wait() {
	w.wg.Wait()
}

// close cancels in-flight writes; their outcomes are not reported.
func (w *writer) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cancel()
}
