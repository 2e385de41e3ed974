package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"luman/internal/auth"
	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// organizationService implements the OrganizationService interface.
type organizationService struct {
	orgRepo     repositories.OrganizationRepository
	memberRepo  repositories.MemberRepository
	memberships services.Memberships
	provider    auth.Provider
	logger      *slog.Logger
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(
	orgRepo repositories.OrganizationRepository,
	memberRepo repositories.MemberRepository,
	memberships services.Memberships,
	provider auth.Provider,
	logger *slog.Logger,
) services.OrganizationService {
	return &organizationService{
		orgRepo:     orgRepo,
		memberRepo:  memberRepo,
		memberships: memberships,
		provider:    provider,
		logger:      logger,
	}
}

// Create creates an organization with a derived unique slug and a fresh
// invitation code.
func (s *organizationService) Create(ctx context.Context, req *services.CreateOrganizationRequest) (*models.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if err := validation.Validate(name, validation.Required, validation.Length(3, 120)); err != nil {
		return nil, fmt.Errorf("%w: name must be at least 3 characters", domain.ErrValidation)
	}

	slug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation code: %w", err)
	}

	now := time.Now()
	org := &models.Organization{
		Name:           name,
		Slug:           slug,
		InvitationCode: code,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organization created", "id", org.ID, "slug", org.Slug)
	return org, nil
}

func (s *organizationService) List(ctx context.Context) ([]models.Organization, error) {
	return s.orgRepo.List(ctx)
}

func (s *organizationService) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	return s.orgRepo.GetBySlug(ctx, slug)
}

// VerifyInvite checks an invitation code against an organization. Codes
// are compared case-insensitively.
func (s *organizationService) VerifyInvite(ctx context.Context, orgSlug, code string) (*models.Organization, error) {
	if orgSlug == "" || code == "" {
		return nil, fmt.Errorf("%w: organization and code are required", domain.ErrValidation)
	}

	org, err := s.orgRepo.GetBySlug(ctx, orgSlug)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(org.InvitationCode, strings.TrimSpace(code)) {
		return nil, fmt.Errorf("%w: invalid invitation code", domain.ErrValidation)
	}

	return org, nil
}

// ListMembers returns the members of an organization with profile data
// pulled from the auth provider. Profile lookups that fail leave the
// name and email empty rather than failing the whole listing.
func (s *organizationService) ListMembers(ctx context.Context, orgID, callerID string) ([]models.MemberProfile, error) {
	if _, err := s.memberships.CheckMembership(ctx, orgID, callerID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.MemberProfile, 0, len(members))
	for _, member := range members {
		profile := models.MemberProfile{OrganizationMember: member}
		user, err := s.provider.GetUser(ctx, member.UserID)
		if err != nil {
			s.logger.Warn("failed to load member profile", "user_id", member.UserID, "error", err)
		} else {
			profile.Email = user.Email
			if name, ok := user.Metadata["full_name"].(string); ok {
				profile.FullName = name
			}
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// UpdateMemberRole changes a member's role. Only founders and admins may
// manage members.
func (s *organizationService) UpdateMemberRole(ctx context.Context, req *services.UpdateMemberRoleRequest) error {
	if !models.ValidRole(string(req.Role)) {
		return fmt.Errorf("%w: invalid role %q", domain.ErrValidation, req.Role)
	}

	callerRole, err := s.memberships.CheckMembership(ctx, req.OrganizationID, req.CallerID)
	if err != nil {
		return err
	}
	if !callerRole.CanManageMembers() {
		return fmt.Errorf("%w: only founders and admins can manage members", domain.ErrForbidden)
	}

	if _, err := s.memberRepo.UpdateRole(ctx, req.OrganizationID, req.UserID, req.Role); err != nil {
		return err
	}

	s.logger.Info("member role updated",
		"organization_id", req.OrganizationID,
		"user_id", req.UserID,
		"role", req.Role,
	)
	return nil
}

// uniqueSlug derives a URL slug from the organization name and appends a
// numeric suffix until it is free.
func (s *organizationService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slugify(name)

	slug := base
	for i := 2; ; i++ {
		_, err := s.orgRepo.GetBySlug(ctx, slug)
		if errors.Is(err, domain.ErrNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// slugify lowercases the name and replaces every non-alphanumeric run
// with a single dash.
func slugify(name string) string {
	var builder strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				builder.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.Trim(builder.String(), "-")
	if slug == "" {
		slug = "org"
	}
	return slug
}

func generateInviteCode() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
