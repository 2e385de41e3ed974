package models

import "time"

// Task is a checklist item extracted from a note's content and mirrored
// into its own table. Identity is the client-persisted id attribute on the
// editor node; rows upsert by primary key so re-sending the same id never
// duplicates.
type Task struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	NoteID      *string   `json:"note_id" db:"note_id"`
	Content     string    `json:"content" db:"content"`
	IsCompleted bool      `json:"is_completed" db:"is_completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
