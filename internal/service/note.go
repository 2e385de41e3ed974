package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

// noteService implements the NoteService interface.
type noteService struct {
	noteRepo repositories.NoteRepository
	logger   *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(noteRepo repositories.NoteRepository, logger *slog.Logger) services.NoteService {
	return &noteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// Create creates a note, defaulting content to an empty editor document.
func (s *noteService) Create(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	if req.WorkspaceID == "" || title == "" || req.TemplateType == "" {
		return nil, fmt.Errorf("%w: workspaceId, title and templateType are required", domain.ErrValidation)
	}

	content := req.Content
	if len(content) == 0 {
		content = models.EmptyDoc()
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	note := &models.Note{
		WorkspaceID:  req.WorkspaceID,
		Title:        title,
		Content:      content,
		Tags:         tags,
		TemplateType: req.TemplateType,
		Revision:     1,
		CreatedAt:    now,
		LastEditedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created", "id", note.ID, "workspace_id", note.WorkspaceID)
	return note, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, id)
}

func (s *noteService) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.NoteSummary, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("%w: workspaceId is required", domain.ErrValidation)
	}
	return s.noteRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *noteService) Search(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []models.NoteSummary{}, nil
	}
	return s.noteRepo.SearchByTitle(ctx, workspaceID, query)
}

// SaveContent persists an autosave flush. An empty document is rejected
// before anything touches the database, so a broken editor state can
// never wipe a note. With BaseRevision set the save is a compare-and-
// swap; otherwise the last writer wins.
func (s *noteService) SaveContent(ctx context.Context, id string, req *services.SaveContentRequest) (int, error) {
	if isEmptyDocument(req.Content) {
		return 0, fmt.Errorf("%w: refusing to save empty content", domain.ErrValidation)
	}

	revision, err := s.noteRepo.UpdateContent(ctx, id, &repositories.NoteContentUpdate{
		Content:      req.Content,
		ContentHTML:  req.HTML,
		BaseRevision: req.BaseRevision,
	})
	if err != nil {
		return 0, err
	}

	return revision, nil
}

func (s *noteService) UpdateTags(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		return fmt.Errorf("%w: tags must be an array", domain.ErrValidation)
	}
	return s.noteRepo.UpdateTags(ctx, id, tags)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("note deleted", "id", id)
	return nil
}

// isEmptyDocument reports whether the payload is missing, not a document,
// or a document with no blocks.
func isEmptyDocument(content map[string]interface{}) bool {
	if models.IsEmptyContent(content) {
		return true
	}
	children, ok := content["content"].([]interface{})
	if !ok {
		return true
	}
	return len(children) == 0
}
