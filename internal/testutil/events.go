package testutil

import (
	"context"
	"sync"

	"github.com/thenoetrevino/sprout/internal/events"
)

// RecordingPublisher is an in-memory events.EventPublisher that records
// everything sent through it.
type RecordingPublisher struct {
	mu           sync.Mutex
	sent         []events.Event
	subscription string
	SendErr      error
}

// Compile-time verification
var _ events.EventPublisher = (*RecordingPublisher)(nil)

func (p *RecordingPublisher) Connect(ctx context.Context) error { return nil }

func (p *RecordingPublisher) SendEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SendErr != nil {
		return p.SendErr
	}
	p.sent = append(p.sent, event)
	return nil
}

func (p *RecordingPublisher) Listen(ctx context.Context) (<-chan events.Event, error) {
	ch := make(chan events.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (p *RecordingPublisher) Subscribe(plantID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscription = plantID
	return nil
}

func (p *RecordingPublisher) SetNotifyFunc(fn events.NotifyFunc) {}

func (p *RecordingPublisher) Close() error { return nil }

// Sent returns a copy of the recorded events.
func (p *RecordingPublisher) Sent() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.sent...)
}
