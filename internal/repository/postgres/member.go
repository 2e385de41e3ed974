package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

// PostgresMemberRepository implements the MemberRepository interface
type PostgresMemberRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(config *RepositoryConfig) repositories.MemberRepository {
	return &PostgresMemberRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Add inserts a membership; joining an organization twice updates the role
// instead of failing.
func (r *PostgresMemberRepository) Add(ctx context.Context, member *models.OrganizationMember) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (organization_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, user_id)
		DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, r.tables.Members)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		member.OrganizationID,
		member.UserID,
		member.Role,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("organization %s: %w", member.OrganizationID, domain.ErrNotFound)
		}
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

// Get retrieves a single membership row
func (r *PostgresMemberRepository) Get(ctx context.Context, orgID, userID string) (*models.OrganizationMember, error) {
	query := fmt.Sprintf(`
		SELECT id, organization_id, user_id, role, created_at, updated_at
		FROM %s
		WHERE organization_id = $1 AND user_id = $2
	`, r.tables.Members)

	var member models.OrganizationMember
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, orgID, userID).Scan(
		&member.ID,
		&member.OrganizationID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("membership for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}

	return &member, nil
}

// ListByOrganization retrieves all members of an organization
func (r *PostgresMemberRepository) ListByOrganization(ctx context.Context, orgID string) ([]models.OrganizationMember, error) {
	query := fmt.Sprintf(`
		SELECT id, organization_id, user_id, role, created_at, updated_at
		FROM %s
		WHERE organization_id = $1
		ORDER BY created_at ASC
	`, r.tables.Members)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// ListByUser retrieves all memberships a user holds
func (r *PostgresMemberRepository) ListByUser(ctx context.Context, userID string) ([]models.OrganizationMember, error) {
	query := fmt.Sprintf(`
		SELECT id, organization_id, user_id, role, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, r.tables.Members)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// UpdateRole changes a member's role
func (r *PostgresMemberRepository) UpdateRole(ctx context.Context, orgID, userID string, role models.Role) (*models.OrganizationMember, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET role = $3, updated_at = NOW()
		WHERE organization_id = $1 AND user_id = $2
		RETURNING id, organization_id, user_id, role, created_at, updated_at
	`, r.tables.Members)

	var member models.OrganizationMember
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, orgID, userID, role).Scan(
		&member.ID,
		&member.OrganizationID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("membership for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update member role: %w", err)
	}

	return &member, nil
}

// CountByOrganization counts members of an organization
func (r *PostgresMemberRepository) CountByOrganization(ctx context.Context, orgID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE organization_id = $1`, r.tables.Members)

	var count int
	executor := GetExecutor(ctx, r.db)
	if err := executor.QueryRow(ctx, query, orgID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}

	return count, nil
}

func scanMembers(rows pgx.Rows) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	for rows.Next() {
		var member models.OrganizationMember
		if err := rows.Scan(
			&member.ID,
			&member.OrganizationID,
			&member.UserID,
			&member.Role,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}
