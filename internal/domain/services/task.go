package services

import (
	"context"

	"luman/internal/domain/models"
)

// TaskService syncs extracted checklist items and serves the open-task
// views.
type TaskService interface {
	// Sync upserts a batch of tasks for a workspace. Tasks without an
	// id get a server-generated one; the stored rows (with final ids)
	// are returned so the client can write them back into the editor.
	Sync(ctx context.Context, req *SyncTasksRequest) ([]models.Task, error)

	// ListOpen returns open tasks, optionally scoped to a workspace.
	ListOpen(ctx context.Context, workspaceID string) ([]models.Task, error)
}

// SyncTasksRequest represents a task sync from the editor.
type SyncTasksRequest struct {
	WorkspaceID string      `json:"workspaceId"`
	NoteID      *string     `json:"noteId"`
	Tasks       []TaskInput `json:"tasks"`
}

// TaskInput is one checklist item as sent by the client.
type TaskInput struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Checked bool   `json:"checked"`
}
