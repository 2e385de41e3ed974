package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, title, content, content_html, tags, due_date, template_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, revision, created_at, last_edited_at
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		note.WorkspaceID,
		note.Title,
		note.Content,
		note.ContentHTML,
		note.Tags,
		note.DueDate,
		note.TemplateType,
	).Scan(&note.ID, &note.Revision, &note.CreatedAt, &note.LastEditedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("workspace %s: %w", note.WorkspaceID, domain.ErrNotFound)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by ID
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, workspace_id, title, content, content_html, tags, due_date,
		       template_type, revision, created_at, last_edited_at
		FROM %s
		WHERE id = $1
	`, r.tables.Notes)

	var note models.Note
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.WorkspaceID,
		&note.Title,
		&note.Content,
		&note.ContentHTML,
		&note.Tags,
		&note.DueDate,
		&note.TemplateType,
		&note.Revision,
		&note.CreatedAt,
		&note.LastEditedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &note, nil
}

// ListByWorkspace retrieves note summaries for a workspace, newest first
func (r *PostgresNoteRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.NoteSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, title, created_at
		FROM %s
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	return scanNoteSummaries(rows)
}

// UpdateContent overwrites a note's content. Without BaseRevision this is
// last-write-wins; with it the write succeeds only if the stored revision
// still matches (compare-and-swap), otherwise domain.ErrConflict.
func (r *PostgresNoteRepository) UpdateContent(ctx context.Context, id string, update *repositories.NoteContentUpdate) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var query string
	var args []interface{}
	if update.BaseRevision != nil {
		query = fmt.Sprintf(`
			UPDATE %s
			SET content = $2, content_html = $3, revision = revision + 1, last_edited_at = NOW()
			WHERE id = $1 AND revision = $4
			RETURNING revision
		`, r.tables.Notes)
		args = []interface{}{id, update.Content, update.ContentHTML, *update.BaseRevision}
	} else {
		query = fmt.Sprintf(`
			UPDATE %s
			SET content = $2, content_html = $3, revision = revision + 1, last_edited_at = NOW()
			WHERE id = $1
			RETURNING revision
		`, r.tables.Notes)
		args = []interface{}{id, update.Content, update.ContentHTML}
	}

	var revision int
	err := executor.QueryRow(ctx, query, args...).Scan(&revision)
	if err != nil {
		if IsPgNoRowsError(err) {
			if update.BaseRevision == nil {
				return 0, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
			}
			// Row exists but revision moved on, or the note is gone;
			// distinguish so stale writers get a 409, not a 404.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return 0, getErr
			}
			return 0, fmt.Errorf("note %s was modified concurrently: %w", id, domain.ErrConflict)
		}
		return 0, fmt.Errorf("update note content: %w", err)
	}

	return revision, nil
}

// UpdateTags replaces a note's tag list
func (r *PostgresNoteRepository) UpdateTags(ctx context.Context, id string, tags []string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET tags = $2
		WHERE id = $1
		RETURNING id
	`, r.tables.Notes)

	var got string
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id, tags).Scan(&got)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("update note tags: %w", err)
	}

	return nil
}

// SearchByTitle finds notes by case-insensitive title match
func (r *PostgresNoteRepository) SearchByTitle(ctx context.Context, workspaceID, search string) ([]models.NoteSummary, error) {
	var query string
	var args []interface{}

	if workspaceID != "" {
		query = fmt.Sprintf(`
			SELECT id, title, created_at
			FROM %s
			WHERE workspace_id = $1 AND title ILIKE '%%' || $2 || '%%'
			ORDER BY created_at DESC
		`, r.tables.Notes)
		args = []interface{}{workspaceID, search}
	} else {
		query = fmt.Sprintf(`
			SELECT id, title, created_at
			FROM %s
			WHERE title ILIKE '%%' || $1 || '%%'
			ORDER BY created_at DESC
		`, r.tables.Notes)
		args = []interface{}{search}
	}

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	return scanNoteSummaries(rows)
}

// Delete deletes a note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Notes)

	executor := GetExecutor(ctx, r.db)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanNoteSummaries(rows pgx.Rows) ([]models.NoteSummary, error) {
	var notes []models.NoteSummary
	for rows.Next() {
		var note models.NoteSummary
		if err := rows.Scan(&note.ID, &note.Title, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note summary: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}
