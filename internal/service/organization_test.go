package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/services"
)

func TestOrganizationCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		orgName string
		wantErr bool
	}{
		{"valid", "Acme Corp", false},
		{"too short", "ab", true},
		{"whitespace only", "   ", true},
		{"trimmed below minimum", "  ab  ", true},
		{"exactly three chars", "abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewOrganizationService(&mockOrgRepo{}, &mockMemberRepo{}, &mockMemberships{}, &mockProvider{}, testLogger())

			org, err := svc.Create(context.Background(), &services.CreateOrganizationRequest{Name: tt.orgName})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if org.Name != strings.TrimSpace(tt.orgName) {
				t.Errorf("name = %q, want %q", org.Name, strings.TrimSpace(tt.orgName))
			}
		})
	}
}

func TestOrganizationCreateSlugAndCode(t *testing.T) {
	svc := NewOrganizationService(&mockOrgRepo{}, &mockMemberRepo{}, &mockMemberships{}, &mockProvider{}, testLogger())

	org, err := svc.Create(context.Background(), &services.CreateOrganizationRequest{Name: "Näh & Design Studio!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.Slug != "n-h-design-studio" {
		t.Errorf("slug = %q, want %q", org.Slug, "n-h-design-studio")
	}
	if len(org.InvitationCode) != 6 {
		t.Errorf("invitation code length = %d, want 6", len(org.InvitationCode))
	}
	for _, r := range org.InvitationCode {
		if !strings.ContainsRune(inviteCodeAlphabet, r) {
			t.Errorf("invitation code contains %q outside the alphabet", r)
		}
	}
}

func TestOrganizationCreateSlugCollision(t *testing.T) {
	taken := map[string]bool{"acme": true, "acme-2": true}
	repo := &mockOrgRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*models.Organization, error) {
			if taken[slug] {
				return &models.Organization{Slug: slug}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := NewOrganizationService(repo, &mockMemberRepo{}, &mockMemberships{}, &mockProvider{}, testLogger())

	org, err := svc.Create(context.Background(), &services.CreateOrganizationRequest{Name: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if org.Slug != "acme-3" {
		t.Errorf("slug = %q, want %q", org.Slug, "acme-3")
	}
}

func TestVerifyInvite(t *testing.T) {
	repo := &mockOrgRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*models.Organization, error) {
			if slug == "acme" {
				return &models.Organization{ID: "org-1", Slug: "acme", InvitationCode: "AB12CD"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := NewOrganizationService(repo, &mockMemberRepo{}, &mockMemberships{}, &mockProvider{}, testLogger())

	tests := []struct {
		name    string
		slug    string
		code    string
		wantErr error
	}{
		{"exact match", "acme", "AB12CD", nil},
		{"case insensitive", "acme", "ab12cd", nil},
		{"surrounding whitespace", "acme", "  AB12CD ", nil},
		{"wrong code", "acme", "ZZZZZZ", domain.ErrValidation},
		{"missing code", "acme", "", domain.ErrValidation},
		{"unknown organization", "ghost", "AB12CD", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, err := svc.VerifyInvite(context.Background(), tt.slug, tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if org.ID != "org-1" {
				t.Errorf("org id = %q, want org-1", org.ID)
			}
		})
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	svc := NewOrganizationService(&mockOrgRepo{}, &mockMemberRepo{}, &mockMemberships{err: domain.ErrForbidden}, &mockProvider{}, testLogger())

	_, err := svc.ListMembers(context.Background(), "org-1", "outsider")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestListMembersProfileLookupFailureIsSoft(t *testing.T) {
	members := &mockMemberRepo{
		listOrgFn: func(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
			return []models.OrganizationMember{
				{OrganizationID: orgID, UserID: "user-1", Role: models.RoleFounder},
				{OrganizationID: orgID, UserID: "user-2", Role: models.RoleIntern},
			}, nil
		},
	}
	provider := &mockProvider{
		getFn: func(ctx context.Context, userID string) (*models.AuthUser, error) {
			if userID == "user-2" {
				return nil, errors.New("gotrue unavailable")
			}
			return &models.AuthUser{
				ID:       userID,
				Email:    "founder@acme.test",
				Metadata: map[string]interface{}{"full_name": "Ada Founder"},
			}, nil
		},
	}
	svc := NewOrganizationService(&mockOrgRepo{}, members, &mockMemberships{role: models.RoleFounder}, provider, testLogger())

	profiles, err := svc.ListMembers(context.Background(), "org-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles[0].FullName != "Ada Founder" || profiles[0].Email != "founder@acme.test" {
		t.Errorf("first profile = %+v, want resolved name and email", profiles[0])
	}
	if profiles[1].FullName != "" || profiles[1].Email != "" {
		t.Errorf("second profile = %+v, want empty profile fields on lookup failure", profiles[1])
	}
}

func TestUpdateMemberRole(t *testing.T) {
	tests := []struct {
		name       string
		callerRole models.Role
		role       models.Role
		wantErr    error
	}{
		{"founder promotes", models.RoleFounder, models.RoleAdmin, nil},
		{"admin demotes", models.RoleAdmin, models.RoleIntern, nil},
		{"intern forbidden", models.RoleIntern, models.RoleAdmin, domain.ErrForbidden},
		{"invalid role", models.RoleFounder, models.Role("owner"), domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated bool
			members := &mockMemberRepo{
				updateFn: func(ctx context.Context, orgID, userID string, role models.Role) (*models.OrganizationMember, error) {
					updated = true
					return &models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}, nil
				},
			}
			svc := NewOrganizationService(&mockOrgRepo{}, members, &mockMemberships{role: tt.callerRole}, &mockProvider{}, testLogger())

			err := svc.UpdateMemberRole(context.Background(), &services.UpdateMemberRoleRequest{
				OrganizationID: "org-1",
				UserID:         "user-2",
				Role:           tt.role,
				CallerID:       "caller",
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if updated {
					t.Error("role was updated despite the error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !updated {
				t.Error("expected the role update to reach the repository")
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"  --- Already -- Dashed ---  ", "already-dashed"},
		{"日本語のみ", "org"},
		{"MiXeD CaSe 42", "mixed-case-42"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
