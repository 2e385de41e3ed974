package repositories

import (
	"context"

	"luman/internal/domain/models"
)

// EventRepository persists calendar events.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// List returns events ordered by start time; workspaceID empty = all.
	List(ctx context.Context, workspaceID string) ([]models.Event, error)
	// ListWithWorkspace joins each event with its workspace's owner name.
	ListWithWorkspace(ctx context.Context) ([]models.OrganizationEvent, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}
