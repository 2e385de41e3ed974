package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"luman/internal/auth"
	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

// accountService implements the AccountService interface.
type accountService struct {
	orgRepo    repositories.OrganizationRepository
	memberRepo repositories.MemberRepository
	provider   auth.Provider
	logger     *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	orgRepo repositories.OrganizationRepository,
	memberRepo repositories.MemberRepository,
	provider auth.Provider,
	logger *slog.Logger,
) services.AccountService {
	return &accountService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		provider:   provider,
		logger:     logger,
	}
}

// Register creates the auth user and the membership row. The requested
// role is validated but the effective role is assigned by seniority: the
// organization's first member becomes its founder, everyone after that
// starts as an intern.
func (s *accountService) Register(ctx context.Context, req *services.RegisterRequest) (*services.RegisterResult, error) {
	if err := s.validateRegister(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	org, err := s.orgRepo.GetBySlug(ctx, req.OrganizationSlug)
	if err != nil {
		return nil, err
	}

	memberCount, err := s.memberRepo.CountByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	role := models.RoleIntern
	if memberCount == 0 {
		role = models.RoleFounder
	}

	user, err := s.provider.SignUp(ctx, req.Email, req.Password, map[string]interface{}{
		"full_name": strings.TrimSpace(req.Name),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	member := &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"organization_id", org.ID,
		"role", role,
	)

	return &services.RegisterResult{
		User:         user,
		Organization: *org,
		Role:         role,
	}, nil
}

func (s *accountService) validateRegister(req *services.RegisterRequest) error {
	return validation.Errors{
		"name":     validation.Validate(strings.TrimSpace(req.Name), validation.Required),
		"email":    validation.Validate(req.Email, validation.Required, is.EmailFormat),
		"password": validation.Validate(req.Password, validation.Required, validation.Length(6, 0)),
		"role":     validation.Validate(string(req.Role), validation.Required, validation.By(roleRule)),
		"orgSlug":  validation.Validate(req.OrganizationSlug, validation.Required),
	}.Filter()
}

func roleRule(value interface{}) error {
	s, _ := value.(string)
	if !models.ValidRole(s) {
		return fmt.Errorf("must be founder, admin or intern")
	}
	return nil
}

// Login performs a password grant and requires an existing membership in
// the organization.
func (s *accountService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResult, error) {
	if req.Email == "" || req.Password == "" || req.OrganizationSlug == "" {
		return nil, fmt.Errorf("%w: email, password and orgSlug are required", domain.ErrValidation)
	}

	org, err := s.orgRepo.GetBySlug(ctx, req.OrganizationSlug)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.Get(ctx, org.ID, session.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: not a member of %s", domain.ErrForbidden, org.Slug)
		}
		return nil, err
	}

	return &services.LoginResult{
		Session:      session,
		Organization: *org,
		Role:         member.Role,
	}, nil
}

// SetRole upserts the caller's membership row.
func (s *accountService) SetRole(ctx context.Context, userID, orgSlug string, role models.Role) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if !models.ValidRole(string(role)) {
		return fmt.Errorf("%w: invalid role %q", domain.ErrValidation, role)
	}

	org, err := s.orgRepo.GetBySlug(ctx, orgSlug)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.memberRepo.Add(ctx, &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

// Session assembles the caller's profile, their organizations, and the
// role in the selected organization. Callers outside the selected
// organization get the intern view.
func (s *accountService) Session(ctx context.Context, userID, email, fullName, orgSlug string) (*services.SessionInfo, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	memberships, err := s.memberRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &services.SessionInfo{
		UserID:        userID,
		Email:         email,
		FullName:      fullName,
		Role:          models.RoleIntern,
		Organizations: make([]models.UserOrganization, 0, len(memberships)),
	}

	for _, m := range memberships {
		org, err := s.orgRepo.GetByID(ctx, m.OrganizationID)
		if err != nil {
			s.logger.Warn("failed to load organization for session", "organization_id", m.OrganizationID, "error", err)
			continue
		}
		info.Organizations = append(info.Organizations, models.UserOrganization{
			ID:       org.ID,
			Name:     org.Name,
			Slug:     org.Slug,
			UserRole: m.Role,
		})
		if orgSlug != "" && org.Slug == orgSlug {
			info.Role = m.Role
		}
	}

	return info, nil
}

// UpdateProfile renames the caller in the auth provider metadata.
func (s *accountService) UpdateProfile(ctx context.Context, userID, fullName string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	name := strings.TrimSpace(fullName)
	if name == "" {
		return fmt.Errorf("%w: fullName is required", domain.ErrValidation)
	}

	_, err := s.provider.UpdateUserMetadata(ctx, userID, map[string]interface{}{
		"full_name": name,
	})
	return err
}
