package repositories

import (
	"context"

	"luman/internal/domain/models"
)

// WorkspaceFilter narrows workspace listings.
type WorkspaceFilter struct {
	OrganizationID string // empty = all organizations
	Role           string // empty = all roles
}

// WorkspaceRepository persists workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	List(ctx context.Context, filter WorkspaceFilter) ([]models.Workspace, error)
	Update(ctx context.Context, ws *models.Workspace) error
	Delete(ctx context.Context, id string) error
}

// FolderRepository persists workspace folders.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.WorkspaceFolder) error
	ListByOrganization(ctx context.Context, orgID string) ([]models.WorkspaceFolder, error)
	Delete(ctx context.Context, id string) error
}
