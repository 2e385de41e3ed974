package models

import "time"

// Role governs visibility and permission checks within an organization.
type Role string

const (
	RoleFounder Role = "founder"
	RoleAdmin   Role = "admin"
	RoleIntern  Role = "intern"
)

// ValidRole reports whether s is one of the known member roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleFounder, RoleAdmin, RoleIntern:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may change other members' roles.
func (r Role) CanManageMembers() bool {
	return r == RoleFounder || r == RoleAdmin
}

// Organization is the top-level tenant; owns workspaces and members.
type Organization struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	InvitationCode string    `json:"invitation_code" db:"invitation_code"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// OrganizationMember links a user to an organization with a role.
type OrganizationMember struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Role           Role      `json:"role" db:"role"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// MemberProfile is a member row enriched with auth-provider user details.
type MemberProfile struct {
	OrganizationMember
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserOrganization summarizes one org a user belongs to, for session payloads.
type UserOrganization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	UserRole Role   `json:"userRole"`
}
