package services

import (
	"context"
	"time"

	"luman/internal/domain/models"
)

// EventService handles calendar event business logic.
type EventService interface {
	// Create creates an event. Title and start time are required;
	// event_type defaults to "event".
	Create(ctx context.Context, req *CreateEventRequest) (*models.Event, error)

	Get(ctx context.Context, id string) (*models.Event, error)

	// List returns events ordered by start time, optionally filtered by
	// workspace.
	List(ctx context.Context, workspaceID string) ([]models.Event, error)

	// OrganizationCalendar returns all events joined with the owning
	// workspace's owner name.
	OrganizationCalendar(ctx context.Context) ([]models.OrganizationEvent, error)

	Update(ctx context.Context, id string, req *UpdateEventRequest) (*models.Event, error)

	Delete(ctx context.Context, id string) error
}

// CreateEventRequest represents an event creation request.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	AllDay      bool       `json:"allDay"`
	EventType   string     `json:"eventType"`
	WorkspaceID *string    `json:"workspaceId"`
	NoteID      *string    `json:"noteId"`
	CreatedBy   *string    `json:"-"`
}

// UpdateEventRequest represents a full event update. Nil fields keep
// their current value.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	AllDay      *bool      `json:"allDay"`
	EventType   *string    `json:"eventType"`
	IsCompleted *bool      `json:"isCompleted"`
	WorkspaceID *string    `json:"workspaceId"`
	NoteID      *string    `json:"noteId"`
}
