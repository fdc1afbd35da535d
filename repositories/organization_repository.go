package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/hackathon-platform/models"
)

var (
	ErrOrganizationNotFound     = errors.New("organization not found")
	ErrOrganizationSlugConflict = errors.New("organization slug conflict")
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	UpdateMembers(ctx context.Context, org *models.Organization) error
	UniqueSlug(ctx context.Context, base string) (string, error)
}

type postgresOrganizationRepository struct {
	db *sql.DB
}

func NewPostgresOrganizationRepository(db *sql.DB) OrganizationRepository {
	return &postgresOrganizationRepository{db: db}
}

func (r *postgresOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (id, name, slug, owner_id, admins, members)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		org.ID, org.Name, org.Slug, org.OwnerID, pq.Array(nonNil(org.Admins)), pq.Array(nonNil(org.Members)),
	).Scan(&org.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "organizations_slug_key") {
			return ErrOrganizationSlugConflict
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *postgresOrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := `SELECT id, name, slug, owner_id, admins, members, created_at FROM organizations WHERE id = $1`

	var org models.Organization
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Slug, &org.OwnerID, pq.Array(&org.Admins), pq.Array(&org.Members), &org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

func (r *postgresOrganizationRepository) UpdateMembers(ctx context.Context, org *models.Organization) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE organizations SET admins = $1, members = $2 WHERE id = $3`,
		pq.Array(nonNil(org.Admins)), pq.Array(nonNil(org.Members)), org.ID)
	if err != nil {
		return fmt.Errorf("failed to update organization members: %w", err)
	}
	return checkAffectedRows(result, ErrOrganizationNotFound)
}

func (r *postgresOrganizationRepository) UniqueSlug(ctx context.Context, base string) (string, error) {
	return uniqueSlug(ctx, base, func(ctx context.Context, slug string) (bool, error) {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM organizations WHERE slug = $1)`, slug).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check organization slug: %w", err)
		}
		return exists, nil
	})
}
