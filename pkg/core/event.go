package core

import "fmt"

// EventType represents the kind of change.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventSelect EventType = "SELECT"
	EventSearch EventType = "SEARCH"
	EventSort   EventType = "SORT"
	EventLoad   EventType = "LOAD"
	EventError  EventType = "ERROR"
)

// Event represents a change in the notes store or in a KV backend.
// ID is a note ID for store events and a key for KV events.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
