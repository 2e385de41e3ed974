package repositories

import (
	"context"

	"luman/internal/domain/models"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	// UpsertBatch inserts or updates every task by primary key and returns
	// the stored rows. Re-sending the same id updates in place.
	UpsertBatch(ctx context.Context, tasks []models.Task) ([]models.Task, error)
	// ListOpen returns tasks with is_completed = false; workspaceID empty
	// means all workspaces (organization view).
	ListOpen(ctx context.Context, workspaceID string) ([]models.Task, error)
}
