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

// PostgresWorkspaceRepository implements the WorkspaceRepository interface
type PostgresWorkspaceRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(config *RepositoryConfig) repositories.WorkspaceRepository {
	return &PostgresWorkspaceRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new workspace
func (r *PostgresWorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_name, role, organization_id, owner_id, folder_id, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		ws.OwnerName,
		ws.Role,
		ws.OrganizationID,
		ws.OwnerID,
		ws.FolderID,
		ws.Color,
	).Scan(&ws.ID, &ws.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("workspace references missing organization or folder: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *PostgresWorkspaceRepository) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_name, role, organization_id, owner_id, folder_id, color, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Workspaces)

	var ws models.Workspace
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id).Scan(
		&ws.ID,
		&ws.OwnerName,
		&ws.Role,
		&ws.OrganizationID,
		&ws.OwnerID,
		&ws.FolderID,
		&ws.Color,
		&ws.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	return &ws, nil
}

// List retrieves workspaces matching the filter, oldest first
func (r *PostgresWorkspaceRepository) List(ctx context.Context, filter repositories.WorkspaceFilter) ([]models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_name, role, organization_id, owner_id, folder_id, color, created_at
		FROM %s
	`, r.tables.Workspaces)

	var args []interface{}
	var conditions []string
	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		conditions = append(conditions, fmt.Sprintf("organization_id = $%d", len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at ASC"

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	return scanWorkspaces(rows)
}

// Update updates a workspace's mutable fields
func (r *PostgresWorkspaceRepository) Update(ctx context.Context, ws *models.Workspace) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET owner_name = $2, role = $3, folder_id = $4, color = $5
		WHERE id = $1
		RETURNING id
	`, r.tables.Workspaces)

	var id string
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, ws.ID, ws.OwnerName, ws.Role, ws.FolderID, ws.Color).Scan(&id)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("workspace %s: %w", ws.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update workspace: %w", err)
	}

	return nil
}

// Delete deletes a workspace
func (r *PostgresWorkspaceRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Workspaces)

	executor := GetExecutor(ctx, r.db)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanWorkspaces(rows pgx.Rows) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(
			&ws.ID,
			&ws.OwnerName,
			&ws.Role,
			&ws.OrganizationID,
			&ws.OwnerID,
			&ws.FolderID,
			&ws.Color,
			&ws.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}

	return workspaces, nil
}
