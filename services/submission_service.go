package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/storage"
	"github.com/Dosada05/hackathon-platform/submission"
)

type SubmissionService interface {
	Update(ctx context.Context, teamID, actorID string, patch submission.Patch) (*models.ProjectSubmission, error)
	Finalize(ctx context.Context, teamID, actorID string) (*models.ProjectSubmission, error)
	UploadMedia(ctx context.Context, teamID, actorID, contentType string, body io.Reader) (*models.ProjectSubmission, error)
}

type submissionService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	xp            UserService
	uploader      storage.FileUploader
	events        EventPublisher
	logger        *slog.Logger
	now           func() time.Time
}

func NewSubmissionService(
	hackathonRepo repositories.HackathonRepository,
	teamRepo repositories.TeamRepository,
	xp UserService,
	uploader storage.FileUploader,
	events EventPublisher,
	logger *slog.Logger,
) SubmissionService {
	if events == nil {
		events = noopPublisher{}
	}
	return &submissionService{
		hackathonRepo: hackathonRepo,
		teamRepo:      teamRepo,
		xp:            xp,
		uploader:      uploader,
		events:        events,
		logger:        logger,
		now:           systemClock,
	}
}

// Update edits the draft. Any member may edit until the project is finalized.
func (s *submissionService) Update(ctx context.Context, teamID, actorID string, patch submission.Patch) (*models.ProjectSubmission, error) {
	if err := s.ensureOpen(ctx, teamID); err != nil {
		return nil, err
	}

	var out models.ProjectSubmission
	_, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if err := ensureActiveMember(t, actorID); err != nil {
			return err
		}
		sub, err := submission.Update(t, patch, s.now())
		if err != nil {
			return err
		}
		out = *sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Finalize locks the project. Only the leader submits.
func (s *submissionService) Finalize(ctx context.Context, teamID, actorID string) (*models.ProjectSubmission, error) {
	if err := s.ensureOpen(ctx, teamID); err != nil {
		return nil, err
	}

	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if err := ensureActiveMember(t, actorID); err != nil {
			return err
		}
		if !t.IsLeader(actorID) {
			return apperrors.ErrLeaderOnly
		}
		return submission.Finalize(t, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "project submitted",
		slog.String("team_id", team.ID), slog.String("project", team.Submission.ProjectName))
	if s.xp != nil {
		s.xp.AwardXP(ctx, team.MemberIDs(), XPProjectSubmitted)
	}
	publishTeamEvent(s.events, realtime.EventProjectSubmitted, team, map[string]any{
		"project_name": team.Submission.ProjectName,
	})
	out := *team.Submission
	return &out, nil
}

func (s *submissionService) UploadMedia(ctx context.Context, teamID, actorID, contentType string, body io.Reader) (*models.ProjectSubmission, error) {
	if s.uploader == nil {
		return nil, ErrUploadUnavailable
	}
	if err := s.ensureOpen(ctx, teamID); err != nil {
		return nil, err
	}
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := ensureActiveMember(current, actorID); err != nil {
		return nil, err
	}
	if current.IsSubmitted() {
		return nil, apperrors.ErrSubmissionLocked
	}

	key, err := storage.SubmissionMediaKey(teamID, contentType, s.now())
	if err != nil {
		return nil, apperrors.ErrValidationFailed.Wrap("media must be a png, jpeg, webp or gif image", err)
	}
	result, err := s.uploader.Upload(ctx, key, contentType, io.LimitReader(body, storage.MaxImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to upload submission media: %w", err)
	}

	var out models.ProjectSubmission
	_, err = mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		sub, err := submission.AddImage(t, result.Location, s.now())
		if err != nil {
			return err
		}
		out = *sub
		return nil
	})
	if err != nil {
		// файл уже в бакете, но к проекту не привязан
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete orphaned upload", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, err
	}
	return &out, nil
}

// ensureOpen applies the hackathon gate: submissions are accepted while the
// hackathon runs and before its submission deadline.
func (s *submissionService) ensureOpen(ctx context.Context, teamID string) error {
	team, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return err
	}
	h, err := loadHackathon(ctx, s.hackathonRepo, team.HackathonID)
	if err != nil {
		return err
	}
	if !lifecycle.AllowsSubmission(h, s.now()) {
		return apperrors.ErrSubmissionClosed
	}
	return nil
}

func ensureActiveMember(t *models.Team, userID string) error {
	if !t.IsMember(userID) {
		return apperrors.ErrNotAMember
	}
	if t.Status == models.TeamWithdrawn {
		return apperrors.ErrTeamWithdrawn
	}
	if t.IsDisqualified {
		return apperrors.ErrTeamDisqualified
	}
	return nil
}
