package stream

import "sync"

// EventQueue holds one-shot events in arrival order. An event stays at the
// head until it is dismissed and is never delivered again afterwards.
type EventQueue[T any] struct {
	mu    sync.Mutex
	items []T
	ready chan struct{}
}

// NewEventQueue returns an empty queue.
func NewEventQueue[T any]() *EventQueue[T] {
	return &EventQueue[T]{ready: make(chan struct{}, 1)}
}

// Post appends an event and signals Ready.
func (q *EventQueue[T]) Post(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Peek returns the oldest undismissed event without consuming it.
func (q *EventQueue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	return q.items[0], true
}

// Dismiss drops the oldest event. It reports whether there was one.
func (q *EventQueue[T]) Dismiss() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dismiss()
}

// DismissIf drops the oldest event only when match accepts it.
func (q *EventQueue[T]) DismissIf(match func(T) bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 || !match(q.items[0]) {
		return false
	}
	return q.dismiss()
}

// Take consumes the oldest event.
func (q *EventQueue[T]) Take() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.dismiss()
	return v, true
}

// Ready is signalled after Post. A single signal may cover several events,
// so readers should drain with Take or Peek until the queue is empty.
func (q *EventQueue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of pending events.
func (q *EventQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *EventQueue[T]) dismiss() bool {
	if len(q.items) == 0 {
		return false
	}
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return true
}
