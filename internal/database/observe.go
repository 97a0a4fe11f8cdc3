package database

import (
	"context"
	"log/slog"
)

// observe runs query once, then again every time one of tables changes, and
// sends each result on the returned channel. The channel is closed when ctx
// is done. Failed queries are logged and skipped; the stream stays open.
func observe[T any](ctx context.Context, tracker *InvalidationTracker, query func(context.Context) (T, error), tables ...string) <-chan T {
	out := make(chan T, 1)

	// Subscribe before the first query so no write slips in between.
	changes, unsubscribe := tracker.Subscribe(tables...)

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			value, err := query(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("continuous query failed", "tables", tables, "error", err)
			} else {
				select {
				case out <- value:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-changes:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
