package handler

import (
	"log/slog"
	"net/http"

	"luman/internal/domain/models"
	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// NoteHandler handles note HTTP requests.
type NoteHandler struct {
	noteService services.NoteService
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService services.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// List returns a workspace's note summaries, newest first
// GET /api/notes?workspaceId=:id
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.URL.Query().Get("workspaceId")
	if workspaceID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "workspaceId query parameter is required")
		return
	}

	notes, err := h.noteService.ListByWorkspace(r.Context(), workspaceID)
	if err != nil {
		handleError(w, err)
		return
	}
	if notes == nil {
		notes = []models.NoteSummary{}
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// Create creates a note
// POST /api/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.noteService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// Get returns a single note
// GET /api/notes/{id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Note ID")
	if !ok {
		return
	}

	note, err := h.noteService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// Save overwrites a note's content
// PUT /api/notes/{id}
func (h *NoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Note ID")
	if !ok {
		return
	}

	var req services.SaveContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	revision, err := h.noteService.SaveContent(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"revision": revision,
	})
}

// UpdateTags replaces a note's tags
// PATCH /api/notes/{id}/tags
func (h *NoteHandler) UpdateTags(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Note ID")
	if !ok {
		return
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "tags must be an array")
		return
	}

	if err := h.noteService.UpdateTags(r.Context(), id, req.Tags); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tags":    req.Tags,
	})
}

// Delete removes a note
// DELETE /api/notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Note ID")
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
