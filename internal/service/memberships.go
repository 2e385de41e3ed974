package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

// membershipService implements the shared membership check used by every
// organization-gated operation.
type membershipService struct {
	memberRepo repositories.MemberRepository
	logger     *slog.Logger
}

// NewMembershipService creates a new membership authorizer.
func NewMembershipService(memberRepo repositories.MemberRepository, logger *slog.Logger) services.Memberships {
	return &membershipService{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (s *membershipService) CheckMembership(ctx context.Context, orgID, userID string) (models.Role, error) {
	if orgID == "" || userID == "" {
		return "", fmt.Errorf("%w: organization and user are required", domain.ErrValidation)
	}

	member, err := s.memberRepo.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: not a member of this organization", domain.ErrForbidden)
		}
		return "", err
	}

	return member.Role, nil
}
