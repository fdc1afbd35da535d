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
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamSlugConflict     = errors.New("team slug conflict")
	ErrTeamHackathonInvalid = errors.New("team hackathon conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByHackathon(ctx context.Context, hackathonID string) ([]*models.Team, error)
	// FindByMember returns the user's team in a hackathon, or ErrTeamNotFound.
	FindByMember(ctx context.Context, hackathonID, userID string) (*models.Team, error)
	ListByMember(ctx context.Context, userID string) ([]*models.Team, error)
	FindByInvitationToken(ctx context.Context, token string) (*models.Team, error)
	// ListInvitedTeams returns teams holding a pending invitation for the user id or email.
	ListInvitedTeams(ctx context.Context, userID, email string) ([]*models.Team, error)
	UpdateIfVersion(ctx context.Context, team *models.Team) error
	UniqueSlug(ctx context.Context, base string) (string, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	doc, err := json.Marshal(team)
	if err != nil {
		return fmt.Errorf("failed to encode team: %w", err)
	}
	query := `
		INSERT INTO teams (id, hackathon_id, slug, doc, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, $6)`

	_, err = r.db.ExecContext(ctx, query, team.ID, team.HackathonID, team.Slug, doc, team.CreatedAt, team.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "teams_slug_key") {
			return ErrTeamSlugConflict
		}
		if isForeignKeyViolation(err) {
			return ErrTeamHackathonInvalid
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	team.Version = 1
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	return r.scanOne(ctx, `SELECT doc, version FROM teams WHERE id = $1`, id)
}

func (r *postgresTeamRepository) ListByHackathon(ctx context.Context, hackathonID string) ([]*models.Team, error) {
	return r.scanMany(ctx, `SELECT doc, version FROM teams WHERE hackathon_id = $1 ORDER BY created_at`, hackathonID)
}

func (r *postgresTeamRepository) FindByMember(ctx context.Context, hackathonID, userID string) (*models.Team, error) {
	query := `
		SELECT doc, version FROM teams
		WHERE hackathon_id = $1
		  AND doc->'members' @> jsonb_build_array(jsonb_build_object('user_id', $2::text))
		  AND doc->>'status' <> 'withdrawn'
		LIMIT 1`
	return r.scanOne(ctx, query, hackathonID, userID)
}

func (r *postgresTeamRepository) ListByMember(ctx context.Context, userID string) ([]*models.Team, error) {
	query := `
		SELECT doc, version FROM teams
		WHERE doc->'members' @> jsonb_build_array(jsonb_build_object('user_id', $1::text))
		ORDER BY created_at DESC`
	return r.scanMany(ctx, query, userID)
}

func (r *postgresTeamRepository) FindByInvitationToken(ctx context.Context, token string) (*models.Team, error) {
	query := `
		SELECT doc, version FROM teams
		WHERE doc->'invitations' @> jsonb_build_array(jsonb_build_object('token', $1::text))
		LIMIT 1`
	return r.scanOne(ctx, query, token)
}

func (r *postgresTeamRepository) ListInvitedTeams(ctx context.Context, userID, email string) ([]*models.Team, error) {
	query := `
		SELECT doc, version FROM teams
		WHERE doc->'invitations' @> jsonb_build_array(jsonb_build_object('invitee_id', $1::text, 'status', 'pending'))
		   OR doc->'invitations' @> jsonb_build_array(jsonb_build_object('invitee_email', lower($2::text), 'status', 'pending'))
		ORDER BY created_at DESC`
	return r.scanMany(ctx, query, userID, email)
}

func (r *postgresTeamRepository) UpdateIfVersion(ctx context.Context, team *models.Team) error {
	doc, err := json.Marshal(team)
	if err != nil {
		return fmt.Errorf("failed to encode team: %w", err)
	}
	query := `
		UPDATE teams SET doc = $1, slug = $2, updated_at = $3, version = version + 1
		WHERE id = $4 AND version = $5`

	result, err := r.db.ExecContext(ctx, query, doc, team.Slug, team.UpdatedAt, team.ID, team.Version)
	if err != nil {
		if isUniqueViolation(err, "teams_slug_key") {
			return ErrTeamSlugConflict
		}
		return fmt.Errorf("failed to update team %s: %w", team.ID, err)
	}
	if err := checkAffectedRows(result, ErrVersionConflict); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return r.conflictOrMissing(ctx, team.ID)
		}
		return err
	}
	team.Version++
	return nil
}

func (r *postgresTeamRepository) UniqueSlug(ctx context.Context, base string) (string, error) {
	return uniqueSlug(ctx, base, func(ctx context.Context, slug string) (bool, error) {
		var exists bool
		err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE slug = $1)`, slug).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check team slug: %w", err)
		}
		return exists, nil
	})
}

func (r *postgresTeamRepository) conflictOrMissing(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check team %s: %w", id, err)
	}
	if !exists {
		return ErrTeamNotFound
	}
	return ErrVersionConflict
}

func (r *postgresTeamRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Team, error) {
	team, err := decodeTeam(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) scanMany(ctx context.Context, query string, args ...any) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, err := decodeTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

func decodeTeam(row scanner) (*models.Team, error) {
	var (
		doc     []byte
		version int
	)
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	var team models.Team
	if err := json.Unmarshal(doc, &team); err != nil {
		return nil, fmt.Errorf("failed to decode team document: %w", err)
	}
	team.Version = version
	return &team, nil
}
