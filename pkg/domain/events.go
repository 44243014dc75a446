package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeInserted EventType = "node_inserted"
	EventNodeMoved    EventType = "node_moved"
	EventNodeDeleted  EventType = "node_deleted"
	EventRejected     EventType = "edit_rejected"
	EventSaved        EventType = "path_saved"
	EventSaveFailed   EventType = "path_save_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// EditEvent describes a structural edit or its rejection.
type EditEvent struct {
	EventBase
	Branch BranchContext `json:"branch"`
	Node   NodeKey       `json:"node"`
	Index  int           `json:"index"`
	Reason string        `json:"reason,omitempty"`
	// Discarded counts branch contexts removed together with a deleted decision node.
	Discarded int `json:"discarded,omitempty"`
}

// SaveEvent describes the outcome of a save.
type SaveEvent struct {
	EventBase
	PathID   int64         `json:"path_id,omitempty"`
	Nodes    int           `json:"nodes"`
	Drafts   int           `json:"drafts"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// EditorHooks defines callbacks for editor observability.
type EditorHooks struct {
	OnEdit     func(context.Context, *EditEvent)
	OnRejected func(context.Context, *EditEvent)
	OnSave     func(context.Context, *SaveEvent)
}
