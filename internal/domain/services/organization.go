package services

import (
	"context"

	"luman/internal/domain/models"
)

// OrganizationService handles organization business logic.
type OrganizationService interface {
	// Create creates an organization with a derived unique slug and a
	// fresh invitation code.
	Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error)

	// List returns all organizations ordered by creation time.
	List(ctx context.Context) ([]models.Organization, error)

	// GetBySlug looks an organization up by its slug.
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)

	// VerifyInvite checks an invitation code against an organization.
	VerifyInvite(ctx context.Context, orgSlug, code string) (*models.Organization, error)

	// ListMembers returns the organization's members enriched with
	// profile data from the auth provider. The caller must be a member.
	ListMembers(ctx context.Context, orgID, callerID string) ([]models.MemberProfile, error)

	// UpdateMemberRole changes a member's role. The caller must be a
	// founder or admin of the organization.
	UpdateMemberRole(ctx context.Context, req *UpdateMemberRoleRequest) error
}

// CreateOrganizationRequest represents an organization creation request.
type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

// UpdateMemberRoleRequest represents a member role change.
type UpdateMemberRoleRequest struct {
	OrganizationID string      `json:"orgId"`
	UserID         string      `json:"userId"`
	Role           models.Role `json:"role"`
	CallerID       string      `json:"-"`
}
