package services

import (
	"context"

	"luman/internal/domain/models"
)

// NoteService handles note business logic.
type NoteService interface {
	// Create creates a note. Missing content defaults to an empty
	// editor document; tags default to an empty list.
	Create(ctx context.Context, req *CreateNoteRequest) (*models.Note, error)

	// Get returns a note by id.
	Get(ctx context.Context, id string) (*models.Note, error)

	// ListByWorkspace returns note summaries for a workspace, newest
	// first.
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.NoteSummary, error)

	// Search finds notes whose title contains the query, optionally
	// scoped to a workspace.
	Search(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error)

	// SaveContent overwrites a note's content. Empty content is
	// rejected without writing. When BaseRevision is set the write only
	// succeeds if the stored revision still matches. Returns the new
	// revision.
	SaveContent(ctx context.Context, id string, req *SaveContentRequest) (int, error)

	// UpdateTags replaces a note's tags.
	UpdateTags(ctx context.Context, id string, tags []string) error

	// Delete removes a note.
	Delete(ctx context.Context, id string) error
}

// CreateNoteRequest represents a note creation request.
type CreateNoteRequest struct {
	WorkspaceID  string                 `json:"workspaceId"`
	Title        string                 `json:"title"`
	TemplateType string                 `json:"templateType"`
	Content      map[string]interface{} `json:"content"`
	Tags         []string               `json:"tags"`
}

// SaveContentRequest represents a note content save.
type SaveContentRequest struct {
	Content      map[string]interface{} `json:"content"`
	HTML         string                 `json:"html"`
	BaseRevision *int                   `json:"baseRevision"`
}
