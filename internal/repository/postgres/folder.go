package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new workspace folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.WorkspaceFolder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, color, organization_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.Color,
		folder.OrganizationID,
		folder.CreatedBy,
	).Scan(&folder.ID, &folder.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("organization %s: %w", folder.OrganizationID, domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// ListByOrganization retrieves all folders of an organization, oldest first
func (r *PostgresFolderRepository) ListByOrganization(ctx context.Context, orgID string) ([]models.WorkspaceFolder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, organization_id, created_by, created_at
		FROM %s
		WHERE organization_id = $1
		ORDER BY created_at ASC
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.WorkspaceFolder
	for rows.Next() {
		var folder models.WorkspaceFolder
		if err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.Color,
			&folder.OrganizationID,
			&folder.CreatedBy,
			&folder.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Delete deletes a folder
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := GetExecutor(ctx, r.db)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
