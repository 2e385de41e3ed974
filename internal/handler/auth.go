package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/services"
	"luman/internal/httputil"
)

// AuthHandler handles organization onboarding and account HTTP requests.
// Follows Clean Architecture: handlers only communicate with services,
// never repositories.
type AuthHandler struct {
	orgService     services.OrganizationService
	accountService services.AccountService
	logger         *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	orgService services.OrganizationService,
	accountService services.AccountService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		orgService:     orgService,
		accountService: accountService,
		logger:         logger,
	}
}

// CreateOrg creates a new organization
// POST /api/auth/org
func (h *AuthHandler) CreateOrg(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrganizationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	org, err := h.orgService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, org)
}

// ListOrgs lists all organizations
// GET /api/auth/org
func (h *AuthHandler) ListOrgs(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	httputil.RespondJSON(w, http.StatusOK, orgs)
}

// GetOrgBySlug checks whether an organization exists
// GET /api/auth/org/{slug}
func (h *AuthHandler) GetOrgBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := PathParam(w, r, "slug", "Organization slug")
	if !ok {
		return
	}

	org, err := h.orgService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondJSON(w, http.StatusNotFound, map[string]bool{"exists": false})
			return
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"exists": true,
		"id":     org.ID,
		"name":   org.Name,
		"slug":   org.Slug,
	})
}

// VerifyInvite checks an invitation code
// POST /api/auth/verify-invite
func (h *AuthHandler) VerifyInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrgSlug string `json:"orgSlug"`
		Code    string `json:"code"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	org, err := h.orgService.VerifyInvite(r.Context(), req.OrgSlug, req.Code)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"slug":    org.Slug,
	})
}

// Register creates an auth user and joins them to an organization
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.accountService.Register(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// Login performs a password grant
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.accountService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// SetRole upserts the caller's membership
// POST /api/auth/set-role
func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		OrgSlug string      `json:"orgSlug"`
		Role    models.Role `json:"role"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.accountService.SetRole(r.Context(), userID, req.OrgSlug, req.Role); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session describes the authenticated caller
// GET /api/auth/session?org=slug
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	info, err := h.accountService.Session(
		r.Context(),
		userID,
		httputil.GetUserEmail(r),
		httputil.GetUserName(r),
		r.URL.Query().Get("org"),
	)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, info)
}

// UpdateProfile renames the caller
// PATCH /api/user
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		FullName string `json:"fullName"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.accountService.UpdateProfile(r.Context(), userID, req.FullName); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
