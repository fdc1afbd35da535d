package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/cache"
	"github.com/Dosada05/hackathon-platform/config"
	"github.com/Dosada05/hackathon-platform/judging"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/utils"
)

const defaultCriteriaPreset = "default"

var (
	ErrHackathonNameRequired = apperrors.ErrValidationFailed.WithMessage("hackathon name is required")
	ErrHackathonDates        = apperrors.ErrValidationFailed.WithMessage("hackathon dates are inconsistent")
	ErrHackathonTeamSize     = apperrors.ErrValidationFailed.WithMessage("team size limits are invalid")
	ErrUnknownCriteriaPreset = apperrors.ErrValidationFailed.WithMessage("unknown judging criteria preset")
	ErrHackathonFinished     = apperrors.ErrInvalidStatusTransition.WithMessage("hackathon is completed or cancelled")
)

type HackathonService interface {
	Create(ctx context.Context, creatorID string, input CreateHackathonInput) (*HackathonView, error)
	Get(ctx context.Context, hackathonID, viewerID string) (*HackathonView, error)
	List(ctx context.Context, filter repositories.HackathonFilter) ([]HackathonView, error)
	Update(ctx context.Context, hackathonID, actorID string, input UpdateHackathonInput) (*HackathonView, error)
	ChangeStatus(ctx context.Context, hackathonID, actorID string, status models.HackathonStatus) (*HackathonView, error)
	Publish(ctx context.Context, hackathonID, actorID string) (*HackathonView, error)
	AddJudge(ctx context.Context, hackathonID, actorID, judgeID string) (*HackathonView, error)
	Leaderboard(ctx context.Context, hackathonID string) ([]judging.Standing, error)
}

type CreateHackathonInput struct {
	Name                 string                    `json:"name"`
	Tagline              string                    `json:"tagline"`
	Description          string                    `json:"description"`
	Theme                string                    `json:"theme"`
	OrganizationID       string                    `json:"organization_id"`
	Organizers           []string                  `json:"organizers"`
	Mode                 models.HackathonMode      `json:"mode"`
	RegistrationStart    *time.Time                `json:"registration_start"`
	RegistrationDeadline time.Time                 `json:"registration_deadline"`
	StartDate            time.Time                 `json:"start_date"`
	EndDate              time.Time                 `json:"end_date"`
	SubmissionDeadline   *time.Time                `json:"submission_deadline"`
	ResultDate           *time.Time                `json:"result_date"`
	MaxParticipants      int                       `json:"max_participants"`
	MinTeamSize          int                       `json:"min_team_size"`
	MaxTeamSize          int                       `json:"max_team_size"`
	AllowTeamFormation   *bool                     `json:"allow_team_formation"`
	RequireApproval      bool                      `json:"require_approval"`
	JudgingCriteria      []models.JudgingCriterion `json:"judging_criteria"`
	CriteriaPreset       string                    `json:"criteria_preset"`
}

// UpdateHackathonInput: nil fields are left unchanged.
type UpdateHackathonInput struct {
	Name                 *string                   `json:"name,omitempty"`
	Tagline              *string                   `json:"tagline,omitempty"`
	Description          *string                   `json:"description,omitempty"`
	Theme                *string                   `json:"theme,omitempty"`
	Mode                 *models.HackathonMode     `json:"mode,omitempty"`
	RegistrationStart    *time.Time                `json:"registration_start,omitempty"`
	RegistrationDeadline *time.Time                `json:"registration_deadline,omitempty"`
	StartDate            *time.Time                `json:"start_date,omitempty"`
	EndDate              *time.Time                `json:"end_date,omitempty"`
	SubmissionDeadline   *time.Time                `json:"submission_deadline,omitempty"`
	ResultDate           *time.Time                `json:"result_date,omitempty"`
	MaxParticipants      *int                      `json:"max_participants,omitempty"`
	MinTeamSize          *int                      `json:"min_team_size,omitempty"`
	MaxTeamSize          *int                      `json:"max_team_size,omitempty"`
	AllowTeamFormation   *bool                     `json:"allow_team_formation,omitempty"`
	RequireApproval      *bool                     `json:"require_approval,omitempty"`
	Organizers           []string                  `json:"organizers,omitempty"`
	JudgingCriteria      []models.JudgingCriterion `json:"judging_criteria,omitempty"`
}

type hackathonService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	userRepo      repositories.UserRepository
	leaderboard   cache.LeaderboardCache
	presets       config.JudgingPresets
	events        EventPublisher
	organizers    organizerChecker
	logger        *slog.Logger
	now           func() time.Time
}

func NewHackathonService(
	hackathonRepo repositories.HackathonRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	orgRepo repositories.OrganizationRepository,
	leaderboard cache.LeaderboardCache,
	presets config.JudgingPresets,
	events EventPublisher,
	logger *slog.Logger,
) HackathonService {
	if leaderboard == nil {
		leaderboard = cache.Noop{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &hackathonService{
		hackathonRepo: hackathonRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		leaderboard:   leaderboard,
		presets:       presets,
		events:        events,
		organizers:    organizerChecker{orgRepo: orgRepo, logger: logger},
		logger:        logger,
		now:           systemClock,
	}
}

func (s *hackathonService) Create(ctx context.Context, creatorID string, input CreateHackathonInput) (*HackathonView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHackathonNameRequired
	}
	if err := validateHackathonDates(input.RegistrationStart, input.RegistrationDeadline, input.StartDate, input.EndDate, input.SubmissionDeadline); err != nil {
		return nil, err
	}
	if input.MaxParticipants < 0 {
		return nil, apperrors.ErrValidationFailed.WithMessage("max participants cannot be negative")
	}
	minSize, maxSize, err := teamSizeLimits(input.MinTeamSize, input.MaxTeamSize)
	if err != nil {
		return nil, err
	}

	criteria, err := s.resolveCriteria(input.JudgingCriteria, input.CriteriaPreset)
	if err != nil {
		return nil, err
	}

	if input.OrganizationID != "" {
		org, err := s.organizers.orgRepo.GetByID(ctx, input.OrganizationID)
		if err != nil {
			if errors.Is(err, repositories.ErrOrganizationNotFound) {
				return nil, apperrors.ErrOrganizationNotFound
			}
			return nil, fmt.Errorf("failed to get organization %s: %w", input.OrganizationID, err)
		}
		if !org.IsAdmin(creatorID) {
			return nil, apperrors.ErrForbidden.WithMessage("only organization admins can host hackathons for it")
		}
	}

	mode := input.Mode
	if mode == "" {
		mode = models.ModeOnline
	}
	allowTeams := true
	if input.AllowTeamFormation != nil {
		allowTeams = *input.AllowTeamFormation
	}

	slug, err := s.hackathonRepo.UniqueSlug(ctx, utils.Slugify(name, "hackathon"))
	if err != nil {
		return nil, fmt.Errorf("failed to reserve hackathon slug: %w", err)
	}

	now := s.now()
	h := &models.Hackathon{
		ID:                   utils.NewID(),
		Name:                 name,
		Slug:                 slug,
		Tagline:              input.Tagline,
		Description:          input.Description,
		Theme:                input.Theme,
		OrganizationID:       input.OrganizationID,
		CreatedBy:            creatorID,
		Organizers:           appendUnique([]string{creatorID}, input.Organizers...),
		Mode:                 mode,
		Status:               models.HackathonDraft,
		RegistrationStart:    input.RegistrationStart,
		RegistrationDeadline: input.RegistrationDeadline,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		SubmissionDeadline:   input.SubmissionDeadline,
		ResultDate:           input.ResultDate,
		MaxParticipants:      input.MaxParticipants,
		MinTeamSize:          minSize,
		MaxTeamSize:          maxSize,
		AllowTeamFormation:   allowTeams,
		RequireApproval:      input.RequireApproval,
		Participants:         []string{},
		PendingParticipants:  []string{},
		Teams:                []string{},
		Judges:               []string{},
		JudgingCriteria:      criteria,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.hackathonRepo.Create(ctx, h); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHackathonSlugConflict):
			return nil, apperrors.ErrConcurrentUpdate.WithMessage("hackathon slug was taken, retry the request")
		case errors.Is(err, repositories.ErrHackathonOrgInvalid):
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to create hackathon: %w", err)
	}

	s.logger.InfoContext(ctx, "hackathon created", slog.String("hackathon_id", h.ID), slog.String("slug", h.Slug))
	view := newHackathonView(h, true, now)
	return &view, nil
}

// Get hides drafts from everyone but organizers.
func (s *hackathonService) Get(ctx context.Context, hackathonID, viewerID string) (*HackathonView, error) {
	h, err := loadHackathon(ctx, s.hackathonRepo, hackathonID)
	if err != nil {
		return nil, err
	}
	organizer := s.organizers.isOrganizer(ctx, h, viewerID)
	if h.Status == models.HackathonDraft && !organizer {
		return nil, apperrors.ErrHackathonNotFound
	}
	view := newHackathonView(h, organizer, s.now())
	return &view, nil
}

func (s *hackathonService) List(ctx context.Context, filter repositories.HackathonFilter) ([]HackathonView, error) {
	hackathons, err := s.hackathonRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list hackathons: %w", err)
	}
	now := s.now()
	views := make([]HackathonView, 0, len(hackathons))
	for _, h := range hackathons {
		views = append(views, newHackathonView(h, false, now))
	}
	return views, nil
}

func (s *hackathonService) Update(ctx context.Context, hackathonID, actorID string, input UpdateHackathonInput) (*HackathonView, error) {
	if input.JudgingCriteria != nil {
		criteria, err := s.resolveCriteria(input.JudgingCriteria, "")
		if err != nil {
			return nil, err
		}
		input.JudgingCriteria = criteria
	}

	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
			return err
		}
		if lifecycle.IsTerminal(h.Status) {
			return ErrHackathonFinished
		}
		return applyHackathonUpdate(h, input, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(h)
	view := newHackathonView(h, true, s.now())
	return &view, nil
}

func (s *hackathonService) ChangeStatus(ctx context.Context, hackathonID, actorID string, status models.HackathonStatus) (*HackathonView, error) {
	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
			return err
		}
		changed, err := lifecycle.Transition(h, status, s.now())
		if err != nil {
			return err
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "hackathon status changed",
		slog.String("hackathon_id", h.ID), slog.String("status", string(h.Status)))
	if h.Status == models.HackathonJudging || h.Status == models.HackathonCompleted {
		s.invalidateLeaderboard(ctx, h.ID)
	}
	s.publishUpdated(h)
	view := newHackathonView(h, true, s.now())
	return &view, nil
}

func (s *hackathonService) Publish(ctx context.Context, hackathonID, actorID string) (*HackathonView, error) {
	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
			return err
		}
		return lifecycle.Publish(h, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.publishUpdated(h)
	view := newHackathonView(h, true, s.now())
	return &view, nil
}

func (s *hackathonService) AddJudge(ctx context.Context, hackathonID, actorID, judgeID string) (*HackathonView, error) {
	if _, err := loadUser(ctx, s.userRepo, judgeID); err != nil {
		return nil, err
	}
	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
			return err
		}
		if lifecycle.IsTerminal(h.Status) {
			return ErrHackathonFinished
		}
		if !h.AddJudge(judgeID) {
			return errUnchanged
		}
		h.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	view := newHackathonView(h, true, s.now())
	return &view, nil
}

// Leaderboard serves the cached ranking when there is one. Drafts are hidden
// whether or not a snapshot is cached.
func (s *hackathonService) Leaderboard(ctx context.Context, hackathonID string) ([]judging.Standing, error) {
	h, err := loadHackathon(ctx, s.hackathonRepo, hackathonID)
	if err != nil {
		return nil, err
	}
	if h.Status == models.HackathonDraft {
		return nil, apperrors.ErrHackathonNotFound
	}

	standings, err := s.leaderboard.Get(ctx, hackathonID)
	if err == nil {
		return standings, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.WarnContext(ctx, "leaderboard cache read failed", slog.String("hackathon_id", hackathonID), slog.Any("error", err))
	}

	teams, err := s.teamRepo.ListByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for hackathon %s: %w", hackathonID, err)
	}

	standings = judging.Rank(teams)
	if err := s.leaderboard.Set(ctx, hackathonID, standings); err != nil {
		s.logger.WarnContext(ctx, "leaderboard cache write failed", slog.String("hackathon_id", hackathonID), slog.Any("error", err))
	}
	return standings, nil
}

func (s *hackathonService) invalidateLeaderboard(ctx context.Context, hackathonID string) {
	if err := s.leaderboard.Invalidate(ctx, hackathonID); err != nil {
		s.logger.WarnContext(ctx, "leaderboard cache invalidation failed", slog.String("hackathon_id", hackathonID), slog.Any("error", err))
	}
}

func (s *hackathonService) publishUpdated(h *models.Hackathon) {
	s.events.Publish(h.ID, realtime.Event{
		Type: realtime.EventHackathonUpdated,
		Payload: map[string]any{
			"hackathon_id": h.ID,
			"status":       h.Status,
		},
	})
}

// resolveCriteria picks explicit criteria over a named preset, and the default
// preset when neither is given.
func (s *hackathonService) resolveCriteria(criteria []models.JudgingCriterion, preset string) ([]models.JudgingCriterion, error) {
	if len(criteria) > 0 {
		seen := make(map[string]bool, len(criteria))
		out := make([]models.JudgingCriterion, 0, len(criteria))
		for _, c := range criteria {
			c.Name = strings.TrimSpace(c.Name)
			if c.Name == "" || seen[c.Name] {
				return nil, apperrors.ErrInvalidCriteria.WithMessage("judging criteria need unique, non-empty names")
			}
			seen[c.Name] = true
			if c.Weight <= 0 {
				c.Weight = 1
			}
			out = append(out, c)
		}
		return out, nil
	}

	if preset == "" {
		preset = defaultCriteriaPreset
	}
	if found, ok := s.presets.Get(preset); ok {
		return found, nil
	}
	if preset != defaultCriteriaPreset {
		return nil, ErrUnknownCriteriaPreset
	}
	return []models.JudgingCriterion{}, nil
}

func applyHackathonUpdate(h *models.Hackathon, in UpdateHackathonInput, now time.Time) error {
	next := *h
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ErrHackathonNameRequired
		}
		next.Name = name
	}
	if in.Tagline != nil {
		next.Tagline = *in.Tagline
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Theme != nil {
		next.Theme = *in.Theme
	}
	if in.Mode != nil {
		next.Mode = *in.Mode
	}
	if in.RegistrationStart != nil {
		next.RegistrationStart = in.RegistrationStart
	}
	if in.RegistrationDeadline != nil {
		next.RegistrationDeadline = *in.RegistrationDeadline
	}
	if in.StartDate != nil {
		next.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		next.EndDate = *in.EndDate
	}
	if in.SubmissionDeadline != nil {
		next.SubmissionDeadline = in.SubmissionDeadline
	}
	if in.ResultDate != nil {
		next.ResultDate = in.ResultDate
	}
	if in.MaxParticipants != nil {
		if *in.MaxParticipants < 0 {
			return apperrors.ErrValidationFailed.WithMessage("max participants cannot be negative")
		}
		next.MaxParticipants = *in.MaxParticipants
	}
	if in.MinTeamSize != nil || in.MaxTeamSize != nil {
		minSize, maxSize := next.MinTeamSize, next.MaxTeamSize
		if in.MinTeamSize != nil {
			minSize = *in.MinTeamSize
		}
		if in.MaxTeamSize != nil {
			maxSize = *in.MaxTeamSize
		}
		var err error
		if next.MinTeamSize, next.MaxTeamSize, err = teamSizeLimits(minSize, maxSize); err != nil {
			return err
		}
	}
	if in.AllowTeamFormation != nil {
		next.AllowTeamFormation = *in.AllowTeamFormation
	}
	if in.RequireApproval != nil {
		next.RequireApproval = *in.RequireApproval
	}
	if in.Organizers != nil {
		next.Organizers = appendUnique([]string{h.CreatedBy}, in.Organizers...)
	}
	if in.JudgingCriteria != nil {
		next.JudgingCriteria = in.JudgingCriteria
	}

	if err := validateHackathonDates(next.RegistrationStart, next.RegistrationDeadline, next.StartDate, next.EndDate, next.SubmissionDeadline); err != nil {
		return err
	}
	next.UpdatedAt = now
	*h = next
	return nil
}

func validateHackathonDates(regStart *time.Time, regDeadline, start, end time.Time, submission *time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrHackathonDates.WithMessage("start and end dates are required")
	}
	if !start.Before(end) {
		return ErrHackathonDates.WithMessage("start date must be before end date")
	}
	if !regDeadline.IsZero() && regDeadline.After(end) {
		return ErrHackathonDates.WithMessage("registration deadline cannot be after the end date")
	}
	if regStart != nil && !regDeadline.IsZero() && regStart.After(regDeadline) {
		return ErrHackathonDates.WithMessage("registration start cannot be after the deadline")
	}
	if submission != nil && submission.Before(start) {
		return ErrHackathonDates.WithMessage("submission deadline cannot be before the start date")
	}
	return nil
}

func teamSizeLimits(minSize, maxSize int) (int, int, error) {
	if minSize == 0 {
		minSize = models.DefaultMinTeamSize
	}
	if maxSize == 0 {
		maxSize = models.DefaultMaxTeamSize
	}
	if minSize < 1 || maxSize < 1 || minSize > maxSize {
		return 0, 0, ErrHackathonTeamSize
	}
	return minSize, maxSize, nil
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
