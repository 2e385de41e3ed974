package service

import (
	"context"
	"io"
	"log/slog"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Function-field mocks. Tests set only the methods they expect to be
// called; anything else returns zero values.

type mockOrgRepo struct {
	createFn    func(ctx context.Context, org *models.Organization) error
	getByIDFn   func(ctx context.Context, id string) (*models.Organization, error)
	getBySlugFn func(ctx context.Context, slug string) (*models.Organization, error)
	listFn      func(ctx context.Context) ([]models.Organization, error)
	updateFn    func(ctx context.Context, org *models.Organization) error
}

func (m *mockOrgRepo) Create(ctx context.Context, org *models.Organization) error {
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrgRepo) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockOrgRepo) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *mockOrgRepo) List(ctx context.Context) ([]models.Organization, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockOrgRepo) Update(ctx context.Context, org *models.Organization) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, org)
	}
	return nil
}

type mockMemberRepo struct {
	addFn     func(ctx context.Context, member *models.OrganizationMember) error
	getFn     func(ctx context.Context, orgID, userID string) (*models.OrganizationMember, error)
	listOrgFn func(ctx context.Context, orgID string) ([]models.OrganizationMember, error)
	listUsrFn func(ctx context.Context, userID string) ([]models.OrganizationMember, error)
	updateFn  func(ctx context.Context, orgID, userID string, role models.Role) (*models.OrganizationMember, error)
	countFn   func(ctx context.Context, orgID string) (int, error)
}

func (m *mockMemberRepo) Add(ctx context.Context, member *models.OrganizationMember) error {
	if m.addFn != nil {
		return m.addFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) Get(ctx context.Context, orgID, userID string) (*models.OrganizationMember, error) {
	if m.getFn != nil {
		return m.getFn(ctx, orgID, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMemberRepo) ListByOrganization(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
	if m.listOrgFn != nil {
		return m.listOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockMemberRepo) ListByUser(ctx context.Context, userID string) ([]models.OrganizationMember, error) {
	if m.listUsrFn != nil {
		return m.listUsrFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockMemberRepo) UpdateRole(ctx context.Context, orgID, userID string, role models.Role) (*models.OrganizationMember, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, orgID, userID, role)
	}
	return &models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}, nil
}

func (m *mockMemberRepo) CountByOrganization(ctx context.Context, orgID string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, orgID)
	}
	return 0, nil
}

type mockWorkspaceRepo struct {
	createFn  func(ctx context.Context, ws *models.Workspace) error
	getByIDFn func(ctx context.Context, id string) (*models.Workspace, error)
	listFn    func(ctx context.Context, filter repositories.WorkspaceFilter) ([]models.Workspace, error)
	updateFn  func(ctx context.Context, ws *models.Workspace) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockWorkspaceRepo) Create(ctx context.Context, ws *models.Workspace) error {
	if m.createFn != nil {
		return m.createFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceRepo) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockWorkspaceRepo) List(ctx context.Context, filter repositories.WorkspaceFilter) ([]models.Workspace, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockWorkspaceRepo) Update(ctx context.Context, ws *models.Workspace) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ws)
	}
	return nil
}

func (m *mockWorkspaceRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockFolderRepo struct {
	createFn func(ctx context.Context, folder *models.WorkspaceFolder) error
	listFn   func(ctx context.Context, orgID string) ([]models.WorkspaceFolder, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockFolderRepo) Create(ctx context.Context, folder *models.WorkspaceFolder) error {
	if m.createFn != nil {
		return m.createFn(ctx, folder)
	}
	return nil
}

func (m *mockFolderRepo) ListByOrganization(ctx context.Context, orgID string) ([]models.WorkspaceFolder, error) {
	if m.listFn != nil {
		return m.listFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockFolderRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockNoteRepo struct {
	createFn  func(ctx context.Context, note *models.Note) error
	getByIDFn func(ctx context.Context, id string) (*models.Note, error)
	listFn    func(ctx context.Context, workspaceID string) ([]models.NoteSummary, error)
	updateFn  func(ctx context.Context, id string, update *repositories.NoteContentUpdate) (int, error)
	tagsFn    func(ctx context.Context, id string, tags []string) error
	searchFn  func(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockNoteRepo) Create(ctx context.Context, note *models.Note) error {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockNoteRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.NoteSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockNoteRepo) UpdateContent(ctx context.Context, id string, update *repositories.NoteContentUpdate) (int, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return 0, nil
}

func (m *mockNoteRepo) UpdateTags(ctx context.Context, id string, tags []string) error {
	if m.tagsFn != nil {
		return m.tagsFn(ctx, id, tags)
	}
	return nil
}

func (m *mockNoteRepo) SearchByTitle(ctx context.Context, workspaceID, query string) ([]models.NoteSummary, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, workspaceID, query)
	}
	return nil, nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockTaskRepo struct {
	upsertFn func(ctx context.Context, tasks []models.Task) ([]models.Task, error)
	listFn   func(ctx context.Context, workspaceID string) ([]models.Task, error)
}

func (m *mockTaskRepo) UpsertBatch(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, tasks)
	}
	return tasks, nil
}

func (m *mockTaskRepo) ListOpen(ctx context.Context, workspaceID string) ([]models.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID)
	}
	return nil, nil
}

type mockEventRepo struct {
	createFn   func(ctx context.Context, event *models.Event) error
	getByIDFn  func(ctx context.Context, id string) (*models.Event, error)
	listFn     func(ctx context.Context, workspaceID string) ([]models.Event, error)
	listWithFn func(ctx context.Context) ([]models.OrganizationEvent, error)
	updateFn   func(ctx context.Context, event *models.Event) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepo) List(ctx context.Context, workspaceID string) ([]models.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx, workspaceID)
	}
	return nil, nil
}

func (m *mockEventRepo) ListWithWorkspace(ctx context.Context) ([]models.OrganizationEvent, error) {
	if m.listWithFn != nil {
		return m.listWithFn(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProvider struct {
	signUpFn func(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error)
	signInFn func(ctx context.Context, email, password string) (*models.Session, error)
	getFn    func(ctx context.Context, userID string) (*models.AuthUser, error)
	updateFn func(ctx context.Context, userID string, metadata map[string]interface{}) (*models.AuthUser, error)
}

func (m *mockProvider) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error) {
	if m.signUpFn != nil {
		return m.signUpFn(ctx, email, password, metadata)
	}
	return &models.AuthUser{ID: "user-1", Email: email, Metadata: metadata}, nil
}

func (m *mockProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if m.signInFn != nil {
		return m.signInFn(ctx, email, password)
	}
	return &models.Session{AccessToken: "token", User: models.AuthUser{ID: "user-1", Email: email}}, nil
}

func (m *mockProvider) GetUser(ctx context.Context, userID string) (*models.AuthUser, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return &models.AuthUser{ID: userID}, nil
}

func (m *mockProvider) UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]interface{}) (*models.AuthUser, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, metadata)
	}
	return &models.AuthUser{ID: userID, Metadata: metadata}, nil
}

// mockMemberships returns a fixed role or error.
type mockMemberships struct {
	role models.Role
	err  error
}

func (m *mockMemberships) CheckMembership(ctx context.Context, orgID, userID string) (models.Role, error) {
	return m.role, m.err
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
