package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

// workspaceService implements the WorkspaceService interface.
type workspaceService struct {
	workspaceRepo repositories.WorkspaceRepository
	memberships   services.Memberships
	logger        *slog.Logger
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(
	workspaceRepo repositories.WorkspaceRepository,
	memberships services.Memberships,
	logger *slog.Logger,
) services.WorkspaceService {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		memberships:   memberships,
		logger:        logger,
	}
}

// Create creates a workspace with defaults filled in.
func (s *workspaceService) Create(ctx context.Context, req *services.CreateWorkspaceRequest) (*models.Workspace, error) {
	ownerName := strings.TrimSpace(req.OwnerName)
	if ownerName == "" {
		return nil, fmt.Errorf("%w: ownerName is required", domain.ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = string(models.RoleFounder)
	}

	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = uuid.NewString()
	}

	ws := &models.Workspace{
		OwnerName:      ownerName,
		Role:           role,
		OrganizationID: req.OrganizationID,
		OwnerID:        ownerID,
		FolderID:       req.FolderID,
		Color:          req.Color,
		CreatedAt:      time.Now(),
	}

	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		return nil, err
	}

	s.logger.Info("workspace created", "id", ws.ID, "owner_name", ws.OwnerName)
	return ws, nil
}

// ListForUser applies the role-based visibility rule: interns only see
// intern workspaces, founders and admins see all of them. Without an
// organization all workspaces are listed unfiltered.
func (s *workspaceService) ListForUser(ctx context.Context, orgID, userID string) ([]models.Workspace, error) {
	filter := repositories.WorkspaceFilter{OrganizationID: orgID}

	if orgID != "" && userID != "" {
		role, err := s.memberships.CheckMembership(ctx, orgID, userID)
		if err != nil {
			return nil, err
		}
		if role == models.RoleIntern {
			filter.Role = string(models.RoleIntern)
		}
	}

	return s.workspaceRepo.List(ctx, filter)
}

// Update applies a partial update, leaving nil fields alone.
func (s *workspaceService) Update(ctx context.Context, id string, req *services.UpdateWorkspaceRequest) (*models.Workspace, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OwnerName != nil {
		name := strings.TrimSpace(*req.OwnerName)
		if name == "" {
			return nil, fmt.Errorf("%w: ownerName cannot be empty", domain.ErrValidation)
		}
		ws.OwnerName = name
	}
	if req.Role != nil {
		ws.Role = *req.Role
	}
	if req.FolderID != nil {
		if *req.FolderID == "" {
			ws.FolderID = nil
		} else {
			ws.FolderID = req.FolderID
		}
	}
	if req.Color != nil {
		ws.Color = *req.Color
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) Delete(ctx context.Context, id string) error {
	if err := s.workspaceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("workspace deleted", "id", id)
	return nil
}

// folderService implements the FolderService interface.
type folderService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(folderRepo repositories.FolderRepository, logger *slog.Logger) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

func (s *folderService) Create(ctx context.Context, req *services.CreateFolderRequest) (*models.WorkspaceFolder, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.OrganizationID == "" {
		return nil, fmt.Errorf("%w: name and organizationId are required", domain.ErrValidation)
	}

	color := req.Color
	if color == "" {
		color = "stone"
	}

	folder := &models.WorkspaceFolder{
		Name:           name,
		Color:          color,
		OrganizationID: req.OrganizationID,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *folderService) ListByOrganization(ctx context.Context, orgID string) ([]models.WorkspaceFolder, error) {
	if orgID == "" {
		return nil, fmt.Errorf("%w: orgId is required", domain.ErrValidation)
	}
	return s.folderRepo.ListByOrganization(ctx, orgID)
}

func (s *folderService) Delete(ctx context.Context, id string) error {
	return s.folderRepo.Delete(ctx, id)
}
