package services

import (
	"context"

	"luman/internal/domain/models"
)

// Memberships answers "what is this user inside this organization".
// Every gated operation goes through it instead of doing its own
// membership lookup.
type Memberships interface {
	// CheckMembership returns the caller's role in the organization, or
	// domain.ErrForbidden when the user is not a member.
	CheckMembership(ctx context.Context, orgID, userID string) (models.Role, error)
}
