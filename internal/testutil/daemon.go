package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/sprout/internal/daemon"
	"github.com/thenoetrevino/sprout/internal/events"
)

// GetTestSocketPath returns a socket path inside a per-test temp directory.
func GetTestSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test-sprout.sock")
}

// SetupTestDaemon starts a daemon on a temporary socket. Cleanup is automatic.
func SetupTestDaemon(t *testing.T) (*daemon.Server, string) {
	t.Helper()

	socketPath := GetTestSocketPath(t)

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = server.Shutdown()
	})

	go func() { _ = server.Start(ctx) }()

	return server, socketPath
}

// ConnectTestClient connects a fast-batching event client to socketPath.
func ConnectTestClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()

	client, err := events.NewClient(socketPath, events.WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Failed to create event client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect event client: %v", err)
	}
	return client
}
