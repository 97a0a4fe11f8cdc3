package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher fails a configurable number of sends before succeeding
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

// Unused interface methods
func (m *mockRetryPublisher) Connect(ctx context.Context) error                { return nil }
func (m *mockRetryPublisher) Listen(ctx context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) Subscribe(plantID string) error                   { return nil }
func (m *mockRetryPublisher) SetNotifyFunc(fn NotifyFunc)                      {}
func (m *mockRetryPublisher) Close() error                                     { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{}
	event := Event{Type: EventGardenChanged, PlantID: "tomato"}

	if err := PublishWithRetry(mock, event, 3); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
	if mock.lastEvent.PlantID != "tomato" {
		t.Errorf("Expected plant tomato, got %q", mock.lastEvent.PlantID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	if err := PublishWithRetry(mock, Event{Type: EventGardenChanged}, 3); err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 10}

	if err := PublishWithRetry(mock, Event{Type: EventGardenChanged}, 3); err == nil {
		t.Error("Expected error after all retries failed")
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	if err := PublishWithRetry(nil, Event{Type: EventGardenChanged}, 3); err != nil {
		t.Errorf("Expected nil error for nil client, got %v", err)
	}
}

func TestPublishWithRetry_ExponentialBackoff(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	_ = PublishWithRetry(mock, Event{Type: EventGardenChanged}, 3)
	elapsed := time.Since(start)

	// 50ms + 100ms of backoff
	if elapsed < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms of backoff, got %v", elapsed)
	}
}

func TestPublishWithRetry_ZeroRetries(t *testing.T) {
	mock := &mockRetryPublisher{}

	if err := PublishWithRetry(mock, Event{Type: EventGardenChanged}, 0); err != nil {
		t.Errorf("Expected nil error with zero retries, got %v", err)
	}
	if mock.sendAttempts != 0 {
		t.Errorf("Expected no attempts, got %d", mock.sendAttempts)
	}
}
