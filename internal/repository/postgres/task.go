package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// UpsertBatch inserts or updates tasks by primary key. The same id sent
// twice updates the existing row, never duplicates it.
func (r *PostgresTaskRepository) UpsertBatch(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, workspace_id, note_id, content, is_completed)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET content = EXCLUDED.content,
		              is_completed = EXCLUDED.is_completed,
		              updated_at = NOW()
		RETURNING id, workspace_id, note_id, content, is_completed, created_at, updated_at
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.db)

	stored := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		var row models.Task
		err := executor.QueryRow(ctx, query,
			task.ID,
			task.WorkspaceID,
			task.NoteID,
			task.Content,
			task.IsCompleted,
		).Scan(
			&row.ID,
			&row.WorkspaceID,
			&row.NoteID,
			&row.Content,
			&row.IsCompleted,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("upsert task %s: %w", task.ID, err)
		}
		stored = append(stored, row)
	}

	return stored, nil
}

// ListOpen retrieves uncompleted tasks, optionally filtered by workspace
func (r *PostgresTaskRepository) ListOpen(ctx context.Context, workspaceID string) ([]models.Task, error) {
	var query string
	var args []interface{}

	if workspaceID != "" {
		query = fmt.Sprintf(`
			SELECT id, workspace_id, note_id, content, is_completed, created_at, updated_at
			FROM %s
			WHERE is_completed = FALSE AND workspace_id = $1
			ORDER BY created_at ASC
		`, r.tables.Tasks)
		args = []interface{}{workspaceID}
	} else {
		query = fmt.Sprintf(`
			SELECT id, workspace_id, note_id, content, is_completed, created_at, updated_at
			FROM %s
			WHERE is_completed = FALSE
			ORDER BY created_at ASC
		`, r.tables.Tasks)
	}

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

func scanTasks(rows pgx.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.ID,
			&task.WorkspaceID,
			&task.NoteID,
			&task.Content,
			&task.IsCompleted,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}
