package events

import (
	"log/slog"
	"time"
)

// publishBaseDelay is the first pause between PublishWithRetry attempts.
const publishBaseDelay = 50 * time.Millisecond

// backoff returns base doubled once per previous attempt.
func backoff(base time.Duration, attempt int) time.Duration {
	return base << attempt
}

// PublishWithRetry queues event on client, retrying up to attempts times
// with exponential backoff (50ms, 100ms, 200ms...) while the queue rejects
// it. A nil client is a no-op. Callers run it in a goroutine when a write
// must not wait on live updates.
func PublishWithRetry(client EventPublisher, event Event, attempts int) error {
	if client == nil {
		return nil
	}

	log := slog.With("event_type", event.Type, "plant_id", event.PlantID)

	var err error
	for attempt := range attempts {
		if attempt > 0 {
			delay := backoff(publishBaseDelay, attempt-1)
			log.Debug("event publish failed, retrying", "attempt", attempt, "retry_delay", delay, "error", err)
			time.Sleep(delay)
		}
		if err = client.SendEvent(event); err == nil {
			if attempt > 0 {
				log.Debug("event published after retry", "attempt", attempt+1)
			}
			return nil
		}
	}

	log.Warn("event publish failed after all retries", "attempts", attempts, "error", err)
	return err
}
