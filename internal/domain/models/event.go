package models

import "time"

// EventType classifies calendar entries.
type EventType string

const (
	EventTypeEvent    EventType = "event"
	EventTypeReminder EventType = "reminder"
	EventTypeTask     EventType = "task"
)

// ValidEventType reports whether s is a known event type.
func ValidEventType(s string) bool {
	switch EventType(s) {
	case EventTypeEvent, EventTypeReminder, EventTypeTask:
		return true
	}
	return false
}

// Event is a calendar entry, optionally linked to a workspace and a note.
type Event struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	StartTime   time.Time  `json:"start_time" db:"start_time"`
	EndTime     *time.Time `json:"end_time" db:"end_time"`
	AllDay      bool       `json:"all_day" db:"all_day"`
	EventType   EventType  `json:"event_type" db:"event_type"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	WorkspaceID *string    `json:"workspace_id" db:"workspace_id"`
	NoteID      *string    `json:"note_id" db:"note_id"`
	CreatedBy   *string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// OrganizationEvent is an event joined with the owning workspace's name,
// as served by the organization calendar view.
type OrganizationEvent struct {
	Event
	WorkspaceOwnerName *string `json:"workspace_owner_name"`
}
