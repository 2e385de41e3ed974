package services

import (
	"context"

	"luman/internal/domain/models"
)

// AccountService handles user registration, login and profile updates.
// User records themselves live in the auth provider; this service owns
// the membership rows that tie users to organizations.
type AccountService interface {
	// Register creates an auth user and adds them to the organization.
	// The first member of an organization becomes its founder, later
	// joiners start as interns regardless of the requested role.
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error)

	// Login performs a password grant and verifies the user belongs to
	// the organization.
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)

	// SetRole upserts the caller's membership in an organization.
	SetRole(ctx context.Context, userID, orgSlug string, role models.Role) error

	// Session describes the caller: profile, organizations, and their
	// role in the selected organization.
	Session(ctx context.Context, userID, email, fullName, orgSlug string) (*SessionInfo, error)

	// UpdateProfile changes the caller's display name in the auth
	// provider metadata.
	UpdateProfile(ctx context.Context, userID, fullName string) error
}

// RegisterRequest represents a signup request.
type RegisterRequest struct {
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Password         string      `json:"password"`
	Role             models.Role `json:"role"`
	OrganizationSlug string      `json:"orgSlug"`
}

// RegisterResult is the outcome of a successful signup.
type RegisterResult struct {
	User         *models.AuthUser    `json:"user"`
	Organization models.Organization `json:"organization"`
	Role         models.Role         `json:"role"`
}

// LoginRequest represents a password login request.
type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationSlug string `json:"orgSlug"`
}

// LoginResult carries the session token plus the caller's role in the
// organization they logged into.
type LoginResult struct {
	Session      *models.Session     `json:"session"`
	Organization models.Organization `json:"organization"`
	Role         models.Role         `json:"role"`
}

// SessionInfo describes the authenticated caller.
type SessionInfo struct {
	UserID        string                     `json:"userId"`
	Email         string                     `json:"email"`
	FullName      string                     `json:"fullName"`
	Role          models.Role                `json:"role"`
	Organizations []models.UserOrganization `json:"organizations"`
}
