package services

import (
	"context"

	"luman/internal/domain/models"
)

// WorkspaceService handles workspace business logic, including the
// role-based visibility rules.
type WorkspaceService interface {
	// Create creates a workspace. Role defaults to founder; an owner id
	// is generated when the client does not supply one.
	Create(ctx context.Context, req *CreateWorkspaceRequest) (*models.Workspace, error)

	// ListForUser lists workspaces in an organization, filtered by the
	// caller's role: founders and admins see everything, interns only
	// see intern workspaces. With an empty orgID all workspaces are
	// returned unfiltered.
	ListForUser(ctx context.Context, orgID, userID string) ([]models.Workspace, error)

	// Update applies a partial update.
	Update(ctx context.Context, id string, req *UpdateWorkspaceRequest) (*models.Workspace, error)

	// Delete removes a workspace.
	Delete(ctx context.Context, id string) error
}

// CreateWorkspaceRequest represents a workspace creation request.
type CreateWorkspaceRequest struct {
	OwnerName      string  `json:"ownerName"`
	Role           string  `json:"role"`
	OrganizationID *string `json:"organizationId"`
	OwnerID        string  `json:"ownerId"`
	FolderID       *string `json:"folderId"`
	Color          string  `json:"color"`
}

// UpdateWorkspaceRequest represents a partial workspace update. Nil
// fields are left untouched.
type UpdateWorkspaceRequest struct {
	OwnerName *string `json:"ownerName"`
	Role      *string `json:"role"`
	FolderID  *string `json:"folderId"`
	Color     *string `json:"color"`
}

// FolderService handles workspace folder grouping.
type FolderService interface {
	Create(ctx context.Context, req *CreateFolderRequest) (*models.WorkspaceFolder, error)
	ListByOrganization(ctx context.Context, orgID string) ([]models.WorkspaceFolder, error)
	Delete(ctx context.Context, id string) error
}

// CreateFolderRequest represents a folder creation request.
type CreateFolderRequest struct {
	Name           string `json:"name"`
	Color          string `json:"color"`
	OrganizationID string `json:"organizationId"`
	CreatedBy      string `json:"-"`
}
