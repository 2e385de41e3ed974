package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

// PostgresOrganizationRepository implements the OrganizationRepository interface
type PostgresOrganizationRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(config *RepositoryConfig) repositories.OrganizationRepository {
	return &PostgresOrganizationRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new organization
func (r *PostgresOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, invitation_code)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		org.Name,
		org.Slug,
		org.InvitationCode,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("organization with slug '%s' already exists", org.Slug),
				ResourceType: "organization",
				ResourceID:   org.Slug,
			}
		}
		return fmt.Errorf("create organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *PostgresOrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, invitation_code, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Organizations)

	var org models.Organization
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.InvitationCode,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("organization %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}

	return &org, nil
}

// GetBySlug retrieves an organization by slug
func (r *PostgresOrganizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, invitation_code, created_at, updated_at
		FROM %s
		WHERE slug = $1
	`, r.tables.Organizations)

	var org models.Organization
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, slug).Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.InvitationCode,
		&org.CreatedAt,
		&org.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("organization '%s': %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get organization by slug: %w", err)
	}

	return &org, nil
}

// List retrieves all organizations ordered by creation time
func (r *PostgresOrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, invitation_code, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		var org models.Organization
		if err := rows.Scan(
			&org.ID,
			&org.Name,
			&org.Slug,
			&org.InvitationCode,
			&org.CreatedAt,
			&org.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate organizations: %w", err)
	}

	return orgs, nil
}

// Update updates an organization's name and slug
func (r *PostgresOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, slug = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, r.tables.Organizations)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query, org.ID, org.Name, org.Slug).Scan(&org.UpdatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("organization %s: %w", org.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update organization: %w", err)
	}

	return nil
}
