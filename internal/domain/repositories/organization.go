package repositories

import (
	"context"

	"luman/internal/domain/models"
)

// OrganizationRepository persists organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	// GetBySlug returns domain.ErrNotFound when no organization has the slug.
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
}

// MemberRepository persists organization memberships.
type MemberRepository interface {
	// Add inserts a membership; on (org, user) conflict the role is updated.
	Add(ctx context.Context, member *models.OrganizationMember) error
	// Get returns domain.ErrNotFound when the user is not a member.
	Get(ctx context.Context, orgID, userID string) (*models.OrganizationMember, error)
	ListByOrganization(ctx context.Context, orgID string) ([]models.OrganizationMember, error)
	ListByUser(ctx context.Context, userID string) ([]models.OrganizationMember, error)
	UpdateRole(ctx context.Context, orgID, userID string, role models.Role) (*models.OrganizationMember, error)
	CountByOrganization(ctx context.Context, orgID string) (int, error)
}
