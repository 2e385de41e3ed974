package repositories

import (
	"context"

	"luman/internal/domain/models"
)

// NoteContentUpdate carries one autosave flush.
type NoteContentUpdate struct {
	Content     map[string]interface{}
	ContentHTML string
	// BaseRevision, when non-nil, requests compare-and-swap: the update only
	// applies if the stored revision still matches. Nil keeps the original
	// last-write-wins overwrite.
	BaseRevision *int
}

// NoteRepository persists notes.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id string) (*models.Note, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.NoteSummary, error)
	// UpdateContent overwrites content and bumps revision. Returns the new
	// revision; domain.ErrConflict when a CAS update lost the race.
	UpdateContent(ctx context.Context, id string, update *NoteContentUpdate) (int, error)
	UpdateTags(ctx context.Context, id string, tags []string) error
	// SearchByTitle matches notes whose title contains the query, scoped to a
	// workspace when workspaceID is non-empty.
	SearchByTitle(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error)
	Delete(ctx context.Context, id string) error
}
