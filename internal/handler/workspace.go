package handler

import (
	"log/slog"
	"net/http"

	"luman/internal/domain/models"
	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// WorkspaceHandler handles workspace HTTP requests.
type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(workspaceService services.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           logger,
	}
}

// List returns workspaces visible to the caller
// GET /api/workspaces?orgId=:id
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("orgId")
	userID := httputil.GetUserID(r)

	workspaces, err := h.workspaceService.ListForUser(r.Context(), orgID, userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if workspaces == nil {
		workspaces = []models.Workspace{}
	}

	httputil.RespondJSON(w, http.StatusOK, workspaces)
}

// Create creates a workspace
// POST /api/workspaces
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateWorkspaceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.workspaceService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, ws)
}

// Update applies a partial update
// PATCH /api/workspaces/{id}
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Workspace ID")
	if !ok {
		return
	}

	var req services.UpdateWorkspaceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.workspaceService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ws)
}

// Delete removes a workspace
// DELETE /api/workspaces/{id}
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Workspace ID")
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FolderHandler handles workspace folder HTTP requests.
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// List returns an organization's folders
// GET /api/folders?orgId=:id
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("orgId")

	folders, err := h.folderService.ListByOrganization(r.Context(), orgID)
	if err != nil {
		handleError(w, err)
		return
	}
	if folders == nil {
		folders = []models.WorkspaceFolder{}
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// Create creates a folder
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.CreatedBy = httputil.GetUserID(r)

	folder, err := h.folderService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Delete removes a folder
// DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	if err := h.folderService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
