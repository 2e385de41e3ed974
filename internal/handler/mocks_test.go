package handler

import (
	"context"
	"io"
	"log/slog"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Function-field service stubs; handlers are tested against the service
// contract, not the persistence layer.

type stubOrgService struct {
	createFn     func(ctx context.Context, req *services.CreateOrganizationRequest) (*models.Organization, error)
	listFn       func(ctx context.Context) ([]models.Organization, error)
	getBySlugFn  func(ctx context.Context, slug string) (*models.Organization, error)
	verifyFn     func(ctx context.Context, orgSlug, code string) (*models.Organization, error)
	listMemFn    func(ctx context.Context, orgID, callerID string) ([]models.MemberProfile, error)
	updateRoleFn func(ctx context.Context, req *services.UpdateMemberRoleRequest) error
}

func (s *stubOrgService) Create(ctx context.Context, req *services.CreateOrganizationRequest) (*models.Organization, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &models.Organization{}, nil
}

func (s *stubOrgService) List(ctx context.Context) ([]models.Organization, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubOrgService) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	if s.getBySlugFn != nil {
		return s.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrgService) VerifyInvite(ctx context.Context, orgSlug, code string) (*models.Organization, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, orgSlug, code)
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrgService) ListMembers(ctx context.Context, orgID, callerID string) ([]models.MemberProfile, error) {
	if s.listMemFn != nil {
		return s.listMemFn(ctx, orgID, callerID)
	}
	return nil, nil
}

func (s *stubOrgService) UpdateMemberRole(ctx context.Context, req *services.UpdateMemberRoleRequest) error {
	if s.updateRoleFn != nil {
		return s.updateRoleFn(ctx, req)
	}
	return nil
}

type stubAccountService struct {
	registerFn func(ctx context.Context, req *services.RegisterRequest) (*services.RegisterResult, error)
	loginFn    func(ctx context.Context, req *services.LoginRequest) (*services.LoginResult, error)
	setRoleFn  func(ctx context.Context, userID, orgSlug string, role models.Role) error
	sessionFn  func(ctx context.Context, userID, email, fullName, orgSlug string) (*services.SessionInfo, error)
	updateFn   func(ctx context.Context, userID, fullName string) error
}

func (s *stubAccountService) Register(ctx context.Context, req *services.RegisterRequest) (*services.RegisterResult, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return &services.RegisterResult{}, nil
}

func (s *stubAccountService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResult, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return &services.LoginResult{}, nil
}

func (s *stubAccountService) SetRole(ctx context.Context, userID, orgSlug string, role models.Role) error {
	if s.setRoleFn != nil {
		return s.setRoleFn(ctx, userID, orgSlug, role)
	}
	return nil
}

func (s *stubAccountService) Session(ctx context.Context, userID, email, fullName, orgSlug string) (*services.SessionInfo, error) {
	if s.sessionFn != nil {
		return s.sessionFn(ctx, userID, email, fullName, orgSlug)
	}
	return &services.SessionInfo{}, nil
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, userID, fullName string) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, userID, fullName)
	}
	return nil
}

type stubNoteService struct {
	createFn func(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error)
	getFn    func(ctx context.Context, id string) (*models.Note, error)
	listFn   func(ctx context.Context, workspaceID string) ([]models.NoteSummary, error)
	searchFn func(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error)
	saveFn   func(ctx context.Context, id string, req *services.SaveContentRequest) (int, error)
	tagsFn   func(ctx context.Context, id string, tags []string) error
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubNoteService) Create(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &models.Note{}, nil
}

func (s *stubNoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubNoteService) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.NoteSummary, error) {
	if s.listFn != nil {
		return s.listFn(ctx, workspaceID)
	}
	return nil, nil
}

func (s *stubNoteService) Search(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, workspaceID, query)
	}
	return nil, nil
}

func (s *stubNoteService) SaveContent(ctx context.Context, id string, req *services.SaveContentRequest) (int, error) {
	if s.saveFn != nil {
		return s.saveFn(ctx, id, req)
	}
	return 0, nil
}

func (s *stubNoteService) UpdateTags(ctx context.Context, id string, tags []string) error {
	if s.tagsFn != nil {
		return s.tagsFn(ctx, id, tags)
	}
	return nil
}

func (s *stubNoteService) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubTaskService struct {
	syncFn func(ctx context.Context, req *services.SyncTasksRequest) ([]models.Task, error)
	listFn func(ctx context.Context, workspaceID string) ([]models.Task, error)
}

func (s *stubTaskService) Sync(ctx context.Context, req *services.SyncTasksRequest) ([]models.Task, error) {
	if s.syncFn != nil {
		return s.syncFn(ctx, req)
	}
	return nil, nil
}

func (s *stubTaskService) ListOpen(ctx context.Context, workspaceID string) ([]models.Task, error) {
	if s.listFn != nil {
		return s.listFn(ctx, workspaceID)
	}
	return nil, nil
}

type stubWorkspaceService struct {
	createFn func(ctx context.Context, req *services.CreateWorkspaceRequest) (*models.Workspace, error)
	listFn   func(ctx context.Context, orgID, userID string) ([]models.Workspace, error)
	updateFn func(ctx context.Context, id string, req *services.UpdateWorkspaceRequest) (*models.Workspace, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubWorkspaceService) Create(ctx context.Context, req *services.CreateWorkspaceRequest) (*models.Workspace, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &models.Workspace{}, nil
}

func (s *stubWorkspaceService) ListForUser(ctx context.Context, orgID, userID string) ([]models.Workspace, error) {
	if s.listFn != nil {
		return s.listFn(ctx, orgID, userID)
	}
	return nil, nil
}

func (s *stubWorkspaceService) Update(ctx context.Context, id string, req *services.UpdateWorkspaceRequest) (*models.Workspace, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, req)
	}
	return &models.Workspace{}, nil
}

func (s *stubWorkspaceService) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubChatService struct {
	relayFn   func(ctx context.Context, req *services.RelayRequest, w services.StreamWriter) error
	historyFn func(ctx context.Context, noteID string) ([]models.ChatMessage, error)
}

func (s *stubChatService) Relay(ctx context.Context, req *services.RelayRequest, w services.StreamWriter) error {
	if s.relayFn != nil {
		return s.relayFn(ctx, req, w)
	}
	return nil
}

func (s *stubChatService) History(ctx context.Context, noteID string) ([]models.ChatMessage, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, noteID)
	}
	return nil, nil
}
