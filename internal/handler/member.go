package handler

import (
	"log/slog"
	"net/http"

	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// MemberHandler handles organization member HTTP requests.
type MemberHandler struct {
	orgService services.OrganizationService
	logger     *slog.Logger
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(orgService services.OrganizationService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// List returns the members of an organization with profile details
// GET /api/organization/members?orgId=:id
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orgID := r.URL.Query().Get("orgId")
	if orgID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "orgId query parameter is required")
		return
	}

	members, err := h.orgService.ListMembers(r.Context(), orgID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// UpdateRole changes a member's role
// PATCH /api/organization/members
func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.UpdateMemberRoleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.CallerID = userID

	if err := h.orgService.UpdateMemberRole(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
