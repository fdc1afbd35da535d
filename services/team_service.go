package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/cache"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/roster"
	"github.com/Dosada05/hackathon-platform/storage"
	"github.com/Dosada05/hackathon-platform/utils"
)

const maxSlugRetries = 3

type TeamService interface {
	Create(ctx context.Context, hackathonID, leaderID string, input CreateTeamInput) (*TeamView, error)
	Get(ctx context.Context, teamID, viewerID string) (*TeamView, error)
	ListByHackathon(ctx context.Context, hackathonID, viewerID string) ([]TeamView, error)
	AddMember(ctx context.Context, teamID, actorID string, input AddMemberInput) (*TeamView, error)
	RemoveMember(ctx context.Context, teamID, actorID, userID string) (bool, error)
	TransferLeadership(ctx context.Context, teamID, actorID, newLeaderID string) (*TeamView, error)

	SendInvitation(ctx context.Context, teamID, actorID string, input InviteInput) (*InvitationView, error)
	AcceptInvitation(ctx context.Context, teamID, userID string) (*TeamView, error)
	AcceptInvitationByToken(ctx context.Context, token, userID string) (*TeamView, error)
	DeclineInvitation(ctx context.Context, teamID, userID string) error
	ListMyInvitations(ctx context.Context, userID string) ([]PendingInvitation, error)

	AddNote(ctx context.Context, teamID, actorID string, input roster.NoteInput) (*models.TeamNote, error)
	Withdraw(ctx context.Context, teamID, actorID string) (*TeamView, error)
	Disqualify(ctx context.Context, teamID, actorID, reason string) (*TeamView, error)
	AwardPrize(ctx context.Context, teamID, actorID, award string) (*TeamView, error)
	UploadLogo(ctx context.Context, teamID, actorID, contentType string, body io.Reader) (*TeamView, error)
}

type CreateTeamInput struct {
	Name             string   `json:"team_name"`
	Tagline          string   `json:"tagline"`
	Description      string   `json:"description"`
	LookingForSkills []string `json:"looking_for_skills"`
}

type AddMemberInput struct {
	UserID      string            `json:"user_id"`
	Role        models.MemberRole `json:"role"`
	ProjectRole string            `json:"project_role"`
}

// TeamServiceDeps groups what the team service talks to. Mailer, Uploader,
// Leaderboard and Events are optional.
type TeamServiceDeps struct {
	Hackathons    repositories.HackathonRepository
	Teams         repositories.TeamRepository
	Users         repositories.UserRepository
	Organizations repositories.OrganizationRepository
	XP            UserService
	Mailer        InvitationMailer
	Uploader      storage.FileUploader
	Leaderboard   cache.LeaderboardCache
	Events        EventPublisher
	PublicURL     string
	Logger        *slog.Logger
}

type teamService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	userRepo      repositories.UserRepository
	xp            UserService
	mailer        InvitationMailer
	uploader      storage.FileUploader
	leaderboard   cache.LeaderboardCache
	events        EventPublisher
	organizers    organizerChecker
	publicURL     string
	logger        *slog.Logger
	now           func() time.Time
	newToken      func() (string, error)
}

func NewTeamService(deps TeamServiceDeps) TeamService {
	s := &teamService{
		hackathonRepo: deps.Hackathons,
		teamRepo:      deps.Teams,
		userRepo:      deps.Users,
		xp:            deps.XP,
		mailer:        deps.Mailer,
		uploader:      deps.Uploader,
		leaderboard:   deps.Leaderboard,
		events:        deps.Events,
		organizers:    organizerChecker{orgRepo: deps.Organizations, logger: deps.Logger},
		publicURL:     deps.PublicURL,
		logger:        deps.Logger,
		now:           systemClock,
		newToken:      utils.NewInvitationToken,
	}
	if s.mailer == nil {
		s.mailer = NewLogMailer(deps.Logger)
	}
	if s.leaderboard == nil {
		s.leaderboard = cache.Noop{}
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if s.xp == nil {
		s.xp = NewUserService(deps.Users, deps.Logger)
	}
	return s
}

func (s *teamService) Create(ctx context.Context, hackathonID, leaderID string, input CreateTeamInput) (*TeamView, error) {
	h, err := loadHackathon(ctx, s.hackathonRepo, hackathonID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotInTeam(ctx, hackathonID, leaderID); err != nil {
		return nil, err
	}

	var team *models.Team
	for attempt := 1; attempt <= maxSlugRetries; attempt++ {
		slug, err := s.teamRepo.UniqueSlug(ctx, utils.Slugify(input.Name, "team"))
		if err != nil {
			return nil, fmt.Errorf("failed to reserve team slug: %w", err)
		}
		team, err = roster.NewTeam(h, leaderID, roster.NewTeamInput{
			ID:               utils.NewID(),
			Name:             input.Name,
			Slug:             slug,
			Tagline:          input.Tagline,
			Description:      input.Description,
			LookingForSkills: nonNilStrings(input.LookingForSkills),
		}, s.now())
		if err != nil {
			return nil, err
		}

		err = s.teamRepo.Create(ctx, team)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrTeamSlugConflict) || attempt == maxSlugRetries {
			return nil, mapTeamRepoError(err)
		}
		// слаг заняли между проверкой и вставкой, пробуем еще раз
	}

	if _, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if !h.AddTeam(team.ID) {
			return errUnchanged
		}
		h.UpdatedAt = s.now()
		return nil
	}); err != nil {
		s.logger.ErrorContext(ctx, "team created but not linked to hackathon",
			slog.String("team_id", team.ID), slog.String("hackathon_id", hackathonID), slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "team created", slog.String("team_id", team.ID), slog.String("hackathon_id", hackathonID))
	publishTeamEvent(s.events, realtime.EventTeamCreated, team, nil)
	return s.view(ctx, team, leaderID)
}

func (s *teamService) Get(ctx context.Context, teamID, viewerID string) (*TeamView, error) {
	team, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	// только для отображения, сохраняется при accept/decline
	roster.ExpireStale(team, s.now())
	return s.view(ctx, team, viewerID)
}

func (s *teamService) ListByHackathon(ctx context.Context, hackathonID, viewerID string) ([]TeamView, error) {
	var (
		h     *models.Hackathon
		teams []*models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		h, err = loadHackathon(gctx, s.hackathonRepo, hackathonID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByHackathon(gctx, hackathonID)
		if err != nil {
			return fmt.Errorf("failed to list teams: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ids []string
	for _, t := range teams {
		ids = append(ids, t.MemberIDs()...)
	}
	users, err := s.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	organizer := s.organizers.isOrganizer(ctx, h, viewerID)
	now := s.now()
	views := make([]TeamView, 0, len(teams))
	for _, t := range teams {
		roster.ExpireStale(t, now)
		views = append(views, newTeamView(t, users, viewerID, organizer))
	}
	return views, nil
}

func (s *teamService) AddMember(ctx context.Context, teamID, actorID string, input AddMemberInput) (*TeamView, error) {
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if !current.IsLeader(actorID) {
		return nil, apperrors.ErrLeaderOnly
	}
	if err := s.ensureCanJoin(ctx, current.HackathonID, input.UserID); err != nil {
		return nil, err
	}

	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if !t.IsLeader(actorID) {
			return apperrors.ErrLeaderOnly
		}
		return roster.AddMember(t, input.UserID, input.Role, input.ProjectRole, s.now())
	})
	if err != nil {
		return nil, err
	}

	publishTeamEvent(s.events, realtime.EventMemberJoined, team, map[string]any{"user_id": input.UserID})
	return s.view(ctx, team, actorID)
}

// RemoveMember: the leader removes anyone but themselves, a member can leave.
func (s *teamService) RemoveMember(ctx context.Context, teamID, actorID, userID string) (bool, error) {
	removed := false
	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if !t.IsLeader(actorID) && actorID != userID {
			return apperrors.ErrLeaderOnly.WithMessage("only the team leader or the member themselves can do this")
		}
		ok, err := roster.RemoveMember(t, userID, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return errUnchanged
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		publishTeamEvent(s.events, realtime.EventMemberLeft, team, map[string]any{"user_id": userID})
	}
	return removed, nil
}

func (s *teamService) TransferLeadership(ctx context.Context, teamID, actorID, newLeaderID string) (*TeamView, error) {
	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if !t.IsLeader(actorID) {
			return apperrors.ErrLeaderOnly
		}
		if t.LeaderID == newLeaderID {
			return errUnchanged
		}
		return roster.TransferLeadership(t, newLeaderID, s.now())
	})
	if err != nil {
		return nil, err
	}

	publishTeamEvent(s.events, realtime.EventTeamUpdated, team, map[string]any{"leader_id": team.LeaderID})
	return s.view(ctx, team, actorID)
}

func (s *teamService) AddNote(ctx context.Context, teamID, actorID string, input roster.NoteInput) (*models.TeamNote, error) {
	input.AuthorID = actorID
	input.ID = utils.NewID()

	var note models.TeamNote
	_, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		n, err := roster.AddNote(t, input, s.now())
		if err != nil {
			return err
		}
		note = *n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *teamService) Withdraw(ctx context.Context, teamID, actorID string) (*TeamView, error) {
	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if !t.IsLeader(actorID) {
			return apperrors.ErrLeaderOnly
		}
		return roster.Withdraw(t, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(ctx, team.HackathonID)
	publishTeamEvent(s.events, realtime.EventTeamUpdated, team, nil)
	return s.view(ctx, team, actorID)
}

func (s *teamService) Disqualify(ctx context.Context, teamID, actorID, reason string) (*TeamView, error) {
	team, err := s.organizerMutation(ctx, teamID, actorID, func(t *models.Team) error {
		return roster.Disqualify(t, reason, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team disqualified", slog.String("team_id", team.ID), slog.String("reason", reason))
	s.invalidateLeaderboard(ctx, team.HackathonID)
	publishTeamEvent(s.events, realtime.EventTeamUpdated, team, map[string]any{"is_disqualified": true})
	return s.view(ctx, team, actorID)
}

func (s *teamService) AwardPrize(ctx context.Context, teamID, actorID, award string) (*TeamView, error) {
	awarded := false
	team, err := s.organizerMutation(ctx, teamID, actorID, func(t *models.Team) error {
		ok, err := roster.AwardPrize(t, award, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return errUnchanged
		}
		awarded = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if awarded {
		s.xp.AwardXP(ctx, team.MemberIDs(), XPAward)
		s.invalidateLeaderboard(ctx, team.HackathonID)
		publishTeamEvent(s.events, realtime.EventTeamUpdated, team, map[string]any{"awards": team.Awards})
	}
	return s.view(ctx, team, actorID)
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, actorID, contentType string, body io.Reader) (*TeamView, error) {
	if s.uploader == nil {
		return nil, ErrUploadUnavailable
	}
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if !current.IsLeader(actorID) {
		return nil, apperrors.ErrLeaderOnly
	}

	key, err := storage.TeamLogoKey(teamID, contentType)
	if err != nil {
		return nil, apperrors.ErrValidationFailed.Wrap("logo must be a png, jpeg, webp or gif image", err)
	}
	result, err := s.uploader.Upload(ctx, key, contentType, io.LimitReader(body, storage.MaxImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		t.LogoURL = result.Location
		t.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, team, actorID)
}

// organizerMutation applies an organizer verdict to a team.
func (s *teamService) organizerMutation(ctx context.Context, teamID, actorID string, apply func(t *models.Team) error) (*models.Team, error) {
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	h, err := loadHackathon(ctx, s.hackathonRepo, current.HackathonID)
	if err != nil {
		return nil, err
	}
	if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
		return nil, err
	}
	return mutateTeam(ctx, s.teamRepo, teamID, apply)
}

// ensureCanJoin: the user must be registered for the hackathon, team formation
// must be open and the user can't already be in a team there.
func (s *teamService) ensureCanJoin(ctx context.Context, hackathonID, userID string) error {
	h, err := loadHackathon(ctx, s.hackathonRepo, hackathonID)
	if err != nil {
		return err
	}
	if !lifecycle.AllowsTeamFormation(h) {
		return apperrors.ErrTeamFormationClosed
	}
	if !h.IsRegistered(userID) {
		return apperrors.ErrNotRegistered
	}
	return s.ensureNotInTeam(ctx, hackathonID, userID)
}

func (s *teamService) ensureNotInTeam(ctx context.Context, hackathonID, userID string) error {
	existing, err := s.teamRepo.FindByMember(ctx, hackathonID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up team membership: %w", err)
	}
	if existing != nil {
		return apperrors.ErrAlreadyInTeam
	}
	return nil
}

func (s *teamService) invalidateLeaderboard(ctx context.Context, hackathonID string) {
	if err := s.leaderboard.Invalidate(ctx, hackathonID); err != nil {
		s.logger.WarnContext(ctx, "leaderboard cache invalidation failed", slog.String("hackathon_id", hackathonID), slog.Any("error", err))
	}
}

// view resolves member profiles and the viewer's organizer rights concurrently.
func (s *teamService) view(ctx context.Context, team *models.Team, viewerID string) (*TeamView, error) {
	var (
		users     map[string]models.UserSummary
		organizer bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userSummaries(gctx, team.MemberIDs())
		return err
	})
	g.Go(func() error {
		if team.IsMember(viewerID) {
			return nil
		}
		h, err := s.hackathonRepo.GetByID(gctx, team.HackathonID)
		if err != nil {
			if errors.Is(err, repositories.ErrHackathonNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load hackathon %s: %w", team.HackathonID, err)
		}
		organizer = s.organizers.isOrganizer(gctx, h, viewerID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	v := newTeamView(team, users, viewerID, organizer)
	return &v, nil
}

func (s *teamService) userSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team members: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
