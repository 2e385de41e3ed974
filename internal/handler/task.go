package handler

import (
	"log/slog"
	"net/http"

	"luman/internal/domain/models"
	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// TaskHandler handles task sync and listing HTTP requests.
type TaskHandler struct {
	taskService services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// Sync upserts a batch of extracted tasks
// POST /api/tasks
func (h *TaskHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req services.SyncTasksRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tasks, err := h.taskService.Sync(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tasks":   tasks,
	})
}

// List returns open tasks
// GET /api/tasks?workspaceId=:id
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListOpen(r.Context(), r.URL.Query().Get("workspaceId"))
	if err != nil {
		handleError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}
