package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
)

// maxCASAttempts bounds load → apply → save retries when another writer bumped
// the document version in between.
const maxCASAttempts = 5

// errUnchanged lets an apply step report that nothing needs saving.
var errUnchanged = errors.New("unchanged")

// EventPublisher fans hackathon events out to subscribers (the websocket hub).
type EventPublisher interface {
	Publish(hackathonID string, event realtime.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, realtime.Event) {}

// mutate runs apply against a freshly loaded document and saves it with a version
// check, reloading and re-applying on conflict. A failure that still changed the
// document (expired invitation) is saved before it is returned.
func mutate[T any](
	ctx context.Context,
	load func(ctx context.Context) (T, error),
	save func(ctx context.Context, doc T) error,
	apply func(doc T) error,
) (T, error) {
	var zero T
	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		doc, err := load(ctx)
		if err != nil {
			return zero, err
		}

		applyErr := apply(doc)
		if errors.Is(applyErr, errUnchanged) {
			return doc, nil
		}
		if applyErr != nil && !apperrors.PersistsState(applyErr) {
			return zero, applyErr
		}

		if err := save(ctx, doc); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return zero, err
		}
		if applyErr != nil {
			return doc, applyErr
		}
		return doc, nil
	}
	return zero, apperrors.ErrConcurrentUpdate
}

func mutateTeam(ctx context.Context, repo repositories.TeamRepository, teamID string, apply func(t *models.Team) error) (*models.Team, error) {
	return mutate(ctx,
		func(ctx context.Context) (*models.Team, error) { return loadTeam(ctx, repo, teamID) },
		func(ctx context.Context, t *models.Team) error { return mapTeamRepoError(repo.UpdateIfVersion(ctx, t)) },
		apply,
	)
}

func mutateHackathon(ctx context.Context, repo repositories.HackathonRepository, hackathonID string, apply func(h *models.Hackathon) error) (*models.Hackathon, error) {
	return mutate(ctx,
		func(ctx context.Context) (*models.Hackathon, error) { return loadHackathon(ctx, repo, hackathonID) },
		func(ctx context.Context, h *models.Hackathon) error { return mapHackathonRepoError(repo.UpdateIfVersion(ctx, h)) },
		apply,
	)
}

func loadTeam(ctx context.Context, repo repositories.TeamRepository, teamID string) (*models.Team, error) {
	t, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	return t, nil
}

func loadHackathon(ctx context.Context, repo repositories.HackathonRepository, hackathonID string) (*models.Hackathon, error) {
	h, err := repo.GetByID(ctx, hackathonID)
	if err != nil {
		return nil, mapHackathonRepoError(err)
	}
	return h, nil
}

func loadUser(ctx context.Context, repo repositories.UserRepository, userID string) (*models.User, error) {
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return u, nil
}

// mapTeamRepoError turns repository sentinels into tagged failures. Version
// conflicts pass through untouched so mutate can retry them.
func mapTeamRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrVersionConflict):
		return err
	case errors.Is(err, repositories.ErrTeamNotFound):
		return apperrors.ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamHackathonInvalid):
		return apperrors.ErrHackathonNotFound
	default:
		return fmt.Errorf("team store: %w", err)
	}
}

func mapHackathonRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrVersionConflict):
		return err
	case errors.Is(err, repositories.ErrHackathonNotFound):
		return apperrors.ErrHackathonNotFound
	case errors.Is(err, repositories.ErrHackathonOrgInvalid):
		return apperrors.ErrOrganizationNotFound
	default:
		return fmt.Errorf("hackathon store: %w", err)
	}
}

// organizerChecker answers "may userID manage h": creator, listed organizer, or
// an admin of the owning organization.
type organizerChecker struct {
	orgRepo repositories.OrganizationRepository
	logger  *slog.Logger
}

func (c organizerChecker) isOrganizer(ctx context.Context, h *models.Hackathon, userID string) bool {
	if h.IsOrganizer(userID) {
		return true
	}
	if h.OrganizationID == "" || c.orgRepo == nil {
		return false
	}
	org, err := c.orgRepo.GetByID(ctx, h.OrganizationID)
	if err != nil {
		if !errors.Is(err, repositories.ErrOrganizationNotFound) && c.logger != nil {
			c.logger.WarnContext(ctx, "organization lookup failed",
				slog.String("organization_id", h.OrganizationID), slog.Any("error", err))
		}
		return false
	}
	return org.IsAdmin(userID)
}

func (c organizerChecker) requireOrganizer(ctx context.Context, h *models.Hackathon, userID string) error {
	if !c.isOrganizer(ctx, h, userID) {
		return apperrors.ErrOrganizerOnly
	}
	return nil
}

func publishTeamEvent(p EventPublisher, eventType string, t *models.Team, extra map[string]any) {
	if p == nil || t == nil {
		return
	}
	payload := map[string]any{
		"team_id":   t.ID,
		"team_name": t.Name,
		"status":    t.Status,
	}
	for k, v := range extra {
		payload[k] = v
	}
	p.Publish(t.HackathonID, realtime.Event{Type: eventType, Payload: payload})
}

func systemClock() time.Time {
	return time.Now().UTC()
}
