package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luman/internal/domain"
	"luman/internal/domain/models"
)

func TestOrganizationCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("assigns the generated id and timestamps", func(t *testing.T) {
		mock, cfg := newMockConfig(t)

		mock.ExpectQuery("INSERT INTO organizations .+").
			WithArgs("Acme", "acme", "AB12CD").
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow("org-1", now, now),
			)

		repo := NewOrganizationRepository(cfg)
		org := &models.Organization{Name: "Acme", Slug: "acme", InvitationCode: "AB12CD"}
		err := repo.Create(ctx, org)

		require.NoError(t, err)
		assert.Equal(t, "org-1", org.ID)
		assert.Equal(t, now, org.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate slug becomes a conflict", func(t *testing.T) {
		mock, cfg := newMockConfig(t)

		mock.ExpectQuery("INSERT INTO organizations .+").
			WithArgs("Acme", "acme", "AB12CD").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "organizations_slug_key"})

		repo := NewOrganizationRepository(cfg)
		err := repo.Create(ctx, &models.Organization{Name: "Acme", Slug: "acme", InvitationCode: "AB12CD"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConflict)

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "organization", conflict.ResourceType)
		assert.Equal(t, "acme", conflict.ResourceID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrganizationGetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, cfg := newMockConfig(t)
		now := time.Now()

		mock.ExpectQuery("SELECT .+ FROM organizations").
			WithArgs("acme").
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "name", "slug", "invitation_code", "created_at", "updated_at"}).
					AddRow("org-1", "Acme", "acme", "AB12CD", now, now),
			)

		repo := NewOrganizationRepository(cfg)
		org, err := repo.GetBySlug(ctx, "acme")

		require.NoError(t, err)
		assert.Equal(t, "org-1", org.ID)
		assert.Equal(t, "AB12CD", org.InvitationCode)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown slug", func(t *testing.T) {
		mock, cfg := newMockConfig(t)

		mock.ExpectQuery("SELECT .+ FROM organizations").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		repo := NewOrganizationRepository(cfg)
		org, err := repo.GetBySlug(ctx, "ghost")

		assert.Nil(t, org)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemberUpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown membership", func(t *testing.T) {
		mock, cfg := newMockConfig(t)

		mock.ExpectQuery("UPDATE organization_members .+").
			WithArgs("org-1", "user-2", models.RoleAdmin).
			WillReturnError(pgx.ErrNoRows)

		repo := NewMemberRepository(cfg)
		member, err := repo.UpdateRole(ctx, "org-1", "user-2", models.RoleAdmin)

		assert.Nil(t, member)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updated", func(t *testing.T) {
		mock, cfg := newMockConfig(t)
		now := time.Now()

		mock.ExpectQuery("UPDATE organization_members .+").
			WithArgs("org-1", "user-2", models.RoleAdmin).
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "organization_id", "user_id", "role", "created_at", "updated_at"}).
					AddRow("mem-1", "org-1", "user-2", models.RoleAdmin, now, now),
			)

		repo := NewMemberRepository(cfg)
		member, err := repo.UpdateRole(ctx, "org-1", "user-2", models.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, member.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
