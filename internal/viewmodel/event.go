package viewmodel

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/sprout/internal/services/garden"
)

// UIEventKind distinguishes success from failure notifications.
type UIEventKind int

const (
	EventSuccess UIEventKind = iota
	EventError
)

func (k UIEventKind) String() string {
	if k == EventError {
		return "error"
	}
	return "success"
}

// UIEvent is a one-shot notification about a finished write.
type UIEvent struct {
	ID      uuid.UUID
	Kind    UIEventKind
	Action  garden.Action
	PlantID string
	Err     error // set for EventError
	At      time.Time
}

// Message is the snackbar text for the event.
func (e UIEvent) Message() string {
	if e.Kind == EventError {
		return fmt.Sprintf("Could not %s: %v", verb(e.Action), e.Err)
	}
	switch e.Action {
	case garden.ActionPlanted:
		return "Added plant to garden"
	case garden.ActionRemoved:
		return "Removed plant from garden"
	case garden.ActionWatered:
		return "Watered plant"
	}
	return string(e.Action)
}

func verb(a garden.Action) string {
	switch a {
	case garden.ActionPlanted:
		return "add plant to garden"
	case garden.ActionRemoved:
		return "remove plant from garden"
	case garden.ActionWatered:
		return "water plant"
	}
	return "update garden"
}
