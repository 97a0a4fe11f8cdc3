package events

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrNilClient is returned by methods called on a nil *Client.
var ErrNilClient = errors.New("event client is nil")

// ErrQueueFull is returned when the outgoing event queue cannot accept more events.
var ErrQueueFull = errors.New("event queue full")

// ErrNotConnected is returned when the daemon connection is not established.
var ErrNotConnected = errors.New("not connected to daemon")

// ErrorCode represents daemon-related error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError represents a structured daemon error with context.
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// daemonErrorRules are checked in order; the first match classifies the error.
var daemonErrorRules = []struct {
	target error
	result DaemonError
}{
	{fs.ErrNotExist, DaemonError{
		Code:    ErrSocketNotFound,
		Message: "Socket file not found",
		Hint:    "Start the daemon: sprout-daemon &",
	}},
	{fs.ErrPermission, DaemonError{
		Code:    ErrSocketPermission,
		Message: "Permission denied",
		Hint:    "Check ~/.sprout/ permissions: chmod 700 ~/.sprout/",
	}},
	{syscall.ECONNREFUSED, DaemonError{
		Code:    ErrConnectionRefused,
		Message: "Connection refused",
		Hint:    "The daemon may have crashed. Restart it: sprout-daemon &",
	}},
}

// ClassifyDaemonError maps a dial or connect error to a DaemonError with a
// hint for the user. Unrecognized errors mean the daemon is not running.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}
	for _, rule := range daemonErrorRules {
		if errors.Is(err, rule.target) {
			classified := rule.result
			return &classified
		}
	}
	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "Daemon not running",
		Hint:    "Start the daemon: sprout-daemon &",
	}
}
