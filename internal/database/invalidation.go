package database

import "sync"

// InvalidationTracker tells continuous queries when the tables they read
// have been written to. Notifications coalesce: an observer that has not yet
// consumed a pending notification does not get a second one.
type InvalidationTracker struct {
	mu        sync.Mutex
	nextID    int
	observers map[int]*observer
}

type observer struct {
	tables map[string]struct{}
	ch     chan struct{}
}

// NewInvalidationTracker creates a tracker with no observers.
func NewInvalidationTracker() *InvalidationTracker {
	return &InvalidationTracker{
		observers: make(map[int]*observer),
	}
}

// Subscribe registers interest in the given tables. The returned channel
// receives a value after any of them changes. The cancel func must be called
// to release the observer.
func (t *InvalidationTracker) Subscribe(tables ...string) (<-chan struct{}, func()) {
	obs := &observer{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, table := range tables {
		obs.tables[table] = struct{}{}
	}

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.observers[id] = obs
	t.mu.Unlock()

	var once sync.Once
	return obs.ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.observers, id)
			t.mu.Unlock()
		})
	}
}

// Notify wakes every observer of the given tables. With no tables, every
// observer is woken.
func (t *InvalidationTracker) Notify(tables ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, obs := range t.observers {
		if !obs.watches(tables) {
			continue
		}
		select {
		case obs.ch <- struct{}{}:
		default:
			// already pending
		}
	}
}

// ObserverCount returns the number of registered observers.
func (t *InvalidationTracker) ObserverCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.observers)
}

func (o *observer) watches(tables []string) bool {
	if len(tables) == 0 {
		return true
	}
	for _, table := range tables {
		if _, ok := o.tables[table]; ok {
			return true
		}
	}
	return false
}
