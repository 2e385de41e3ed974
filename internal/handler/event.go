package handler

import (
	"log/slog"
	"net/http"

	"luman/internal/domain/models"
	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// EventHandler handles calendar event HTTP requests.
type EventHandler struct {
	eventService services.EventService
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService services.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// List returns events ordered by start time
// GET /api/events?workspaceId=:id
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context(), r.URL.Query().Get("workspaceId"))
	if err != nil {
		handleError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}

// Create creates an event
// POST /api/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateEventRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if userID := httputil.GetUserID(r); userID != "" {
		req.CreatedBy = &userID
	}

	event, err := h.eventService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, event)
}

// Get returns a single event
// GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Event ID")
	if !ok {
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, event)
}

// Update replaces an event's fields
// PUT /api/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Event ID")
	if !ok {
		return
	}

	var req services.UpdateEventRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, event)
}

// Delete removes an event
// DELETE /api/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Event ID")
	if !ok {
		return
	}

	if err := h.eventService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// OrganizationCalendar returns events joined with workspace owner names
// GET /api/calendar/organization
func (h *EventHandler) OrganizationCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.OrganizationCalendar(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if events == nil {
		events = []models.OrganizationEvent{}
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}
