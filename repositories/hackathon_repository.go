package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-platform/models"
)

var (
	ErrHackathonNotFound     = errors.New("hackathon not found")
	ErrHackathonSlugConflict = errors.New("hackathon slug conflict")
	ErrHackathonOrgInvalid   = errors.New("hackathon organization invalid")
)

type HackathonFilter struct {
	Status models.HackathonStatus
	// PublishedOnly hides drafts from the public listing.
	PublishedOnly bool
	Limit         int
	Offset        int
}

type HackathonRepository interface {
	Create(ctx context.Context, h *models.Hackathon) error
	GetByID(ctx context.Context, id string) (*models.Hackathon, error)
	GetBySlug(ctx context.Context, slug string) (*models.Hackathon, error)
	List(ctx context.Context, filter HackathonFilter) ([]*models.Hackathon, error)
	// UpdateIfVersion saves h only if the stored version still equals h.Version,
	// then bumps h.Version.
	UpdateIfVersion(ctx context.Context, h *models.Hackathon) error
	UniqueSlug(ctx context.Context, base string) (string, error)
}

type postgresHackathonRepository struct {
	db *sql.DB
}

func NewPostgresHackathonRepository(db *sql.DB) HackathonRepository {
	return &postgresHackathonRepository{db: db}
}

func (r *postgresHackathonRepository) Create(ctx context.Context, h *models.Hackathon) error {
	doc, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to encode hackathon: %w", err)
	}
	query := `
		INSERT INTO hackathons (id, slug, status, organization_id, doc, version, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, 1, $6, $7)`

	_, err = r.db.ExecContext(ctx, query, h.ID, h.Slug, h.Status, h.OrganizationID, doc, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "hackathons_slug_key") {
			return ErrHackathonSlugConflict
		}
		if isForeignKeyViolation(err) {
			return ErrHackathonOrgInvalid
		}
		return fmt.Errorf("failed to create hackathon: %w", err)
	}
	h.Version = 1
	return nil
}

func (r *postgresHackathonRepository) GetByID(ctx context.Context, id string) (*models.Hackathon, error) {
	return r.scanOne(ctx, `SELECT doc, version FROM hackathons WHERE id = $1`, id)
}

func (r *postgresHackathonRepository) GetBySlug(ctx context.Context, slug string) (*models.Hackathon, error) {
	return r.scanOne(ctx, `SELECT doc, version FROM hackathons WHERE slug = $1`, slug)
}

func (r *postgresHackathonRepository) List(ctx context.Context, filter HackathonFilter) ([]*models.Hackathon, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `
		SELECT doc, version FROM hackathons
		WHERE ($1 = '' OR status = $1)
		  AND (NOT $2 OR status <> 'draft')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, string(filter.Status), filter.PublishedOnly, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list hackathons: %w", err)
	}
	defer rows.Close()

	hackathons := make([]*models.Hackathon, 0)
	for rows.Next() {
		h, err := decodeHackathon(rows)
		if err != nil {
			return nil, err
		}
		hackathons = append(hackathons, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hackathons: %w", err)
	}
	return hackathons, nil
}

func (r *postgresHackathonRepository) UpdateIfVersion(ctx context.Context, h *models.Hackathon) error {
	doc, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to encode hackathon: %w", err)
	}
	query := `
		UPDATE hackathons SET doc = $1, status = $2, updated_at = $3, version = version + 1
		WHERE id = $4 AND version = $5`

	result, err := r.db.ExecContext(ctx, query, doc, h.Status, h.UpdatedAt, h.ID, h.Version)
	if err != nil {
		return fmt.Errorf("failed to update hackathon %s: %w", h.ID, err)
	}
	if err := checkAffectedRows(result, ErrVersionConflict); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return r.conflictOrMissing(ctx, h.ID)
		}
		return err
	}
	h.Version++
	return nil
}

func (r *postgresHackathonRepository) UniqueSlug(ctx context.Context, base string) (string, error) {
	return uniqueSlug(ctx, base, func(ctx context.Context, slug string) (bool, error) {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM hackathons WHERE slug = $1)`, slug).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check hackathon slug: %w", err)
		}
		return exists, nil
	})
}

// conflictOrMissing tells a moved row apart from a deleted one.
func (r *postgresHackathonRepository) conflictOrMissing(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM hackathons WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check hackathon %s: %w", id, err)
	}
	if !exists {
		return ErrHackathonNotFound
	}
	return ErrVersionConflict
}

func (r *postgresHackathonRepository) scanOne(ctx context.Context, query string, arg any) (*models.Hackathon, error) {
	h, err := decodeHackathon(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHackathonNotFound
		}
		return nil, err
	}
	return h, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func decodeHackathon(row scanner) (*models.Hackathon, error) {
	var (
		doc     []byte
		version int
	)
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan hackathon: %w", err)
	}
	var h models.Hackathon
	if err := json.Unmarshal(doc, &h); err != nil {
		return nil, fmt.Errorf("failed to decode hackathon document: %w", err)
	}
	h.Version = version
	return &h, nil
}
