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

// PostgresEventRepository implements the EventRepository interface
type PostgresEventRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(config *RepositoryConfig) repositories.EventRepository {
	return &PostgresEventRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, start_time, end_time, all_day, event_type,
		                is_completed, workspace_id, note_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Events)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.AllDay,
		event.EventType,
		event.IsCompleted,
		event.WorkspaceID,
		event.NoteID,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("event references missing workspace or note: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf(`
		SELECT id, title, description, start_time, end_time, all_day, event_type,
		       is_completed, workspace_id, note_id, created_by, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Events)

	var event models.Event
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.AllDay,
		&event.EventType,
		&event.IsCompleted,
		&event.WorkspaceID,
		&event.NoteID,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &event, nil
}

// List retrieves events ordered by start time, optionally workspace-scoped
func (r *PostgresEventRepository) List(ctx context.Context, workspaceID string) ([]models.Event, error) {
	var query string
	var args []interface{}

	if workspaceID != "" {
		query = fmt.Sprintf(`
			SELECT id, title, description, start_time, end_time, all_day, event_type,
			       is_completed, workspace_id, note_id, created_by, created_at, updated_at
			FROM %s
			WHERE workspace_id = $1
			ORDER BY start_time ASC
		`, r.tables.Events)
		args = []interface{}{workspaceID}
	} else {
		query = fmt.Sprintf(`
			SELECT id, title, description, start_time, end_time, all_day, event_type,
			       is_completed, workspace_id, note_id, created_by, created_at, updated_at
			FROM %s
			ORDER BY start_time ASC
		`, r.tables.Events)
	}

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// ListWithWorkspace joins events with the owning workspace's owner name,
// for the organization calendar view.
func (r *PostgresEventRepository) ListWithWorkspace(ctx context.Context) ([]models.OrganizationEvent, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.title, e.description, e.start_time, e.end_time, e.all_day,
		       e.event_type, e.is_completed, e.workspace_id, e.note_id, e.created_by,
		       e.created_at, e.updated_at, w.owner_name
		FROM %s e
		LEFT JOIN %s w ON w.id = e.workspace_id
		ORDER BY e.start_time ASC
	`, r.tables.Events, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organization events: %w", err)
	}
	defer rows.Close()

	var events []models.OrganizationEvent
	for rows.Next() {
		var ev models.OrganizationEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&ev.StartTime,
			&ev.EndTime,
			&ev.AllDay,
			&ev.EventType,
			&ev.IsCompleted,
			&ev.WorkspaceID,
			&ev.NoteID,
			&ev.CreatedBy,
			&ev.CreatedAt,
			&ev.UpdatedAt,
			&ev.WorkspaceOwnerName,
		); err != nil {
			return nil, fmt.Errorf("scan organization event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organization events: %w", err)
	}

	return events, nil
}

// Update updates an event
func (r *PostgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, start_time = $4, end_time = $5, all_day = $6,
		    event_type = $7, is_completed = $8, workspace_id = $9, note_id = $10,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, r.tables.Events)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.AllDay,
		event.EventType,
		event.IsCompleted,
		event.WorkspaceID,
		event.NoteID,
	).Scan(&event.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("event %s: %w", event.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update event: %w", err)
	}

	return nil
}

// Delete deletes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Events)

	executor := GetExecutor(ctx, r.db)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanEvent(rows pgx.Rows) (*models.Event, error) {
	var event models.Event
	if err := rows.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.AllDay,
		&event.EventType,
		&event.IsCompleted,
		&event.WorkspaceID,
		&event.NoteID,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &event, nil
}
