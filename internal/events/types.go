// Package events carries store change notifications between sprout processes
// through the sprout daemon.
package events

import "time"

// ProtocolVersion is bumped whenever Message changes incompatibly.
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventGardenChanged EventType = "garden_changed"
	EventPlantsChanged EventType = "plants_changed"
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
)

// Message types on the wire
const (
	MessageEvent     = "event"
	MessageSubscribe = "subscribe"
	MessagePing      = "ping"
	MessagePong      = "pong"
)

// Event represents a database change notification
type Event struct {
	Type       EventType
	PlantID    string    // For filtering - which plant was modified, "" for many
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}

// SubscribeMessage is sent by clients to subscribe to specific plant updates
type SubscribeMessage struct {
	PlantID string // "" = all plants
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version   int
	Type      string
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}

// Matches reports whether a subscriber to plantID should receive e.
func (e Event) Matches(plantID string) bool {
	return e.PlantID == "" || plantID == "" || e.PlantID == plantID
}
