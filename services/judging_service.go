package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/cache"
	"github.com/Dosada05/hackathon-platform/judging"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
)

type JudgingService interface {
	Score(ctx context.Context, teamID, judgeID string, input judging.ScoreInput) (*models.JudgeScore, error)
}

type judgingService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	leaderboard   cache.LeaderboardCache
	events        EventPublisher
	logger        *slog.Logger
	now           func() time.Time
}

func NewJudgingService(
	hackathonRepo repositories.HackathonRepository,
	teamRepo repositories.TeamRepository,
	leaderboard cache.LeaderboardCache,
	events EventPublisher,
	logger *slog.Logger,
) JudgingService {
	if leaderboard == nil {
		leaderboard = cache.Noop{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &judgingService{
		hackathonRepo: hackathonRepo,
		teamRepo:      teamRepo,
		leaderboard:   leaderboard,
		events:        events,
		logger:        logger,
		now:           systemClock,
	}
}

// Score upserts the judge's score. Concurrent judges on the same team each keep
// their slot: the upsert is re-applied on a fresh copy after a version conflict.
func (s *judgingService) Score(ctx context.Context, teamID, judgeID string, input judging.ScoreInput) (*models.JudgeScore, error) {
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	h, err := loadHackathon(ctx, s.hackathonRepo, current.HackathonID)
	if err != nil {
		return nil, err
	}
	if !h.IsJudge(judgeID) {
		return nil, apperrors.ErrNotAJudge
	}
	if !lifecycle.AllowsJudging(h) {
		return nil, apperrors.ErrJudgingClosed
	}

	var score models.JudgeScore
	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if !t.IsSubmitted() {
			return apperrors.ErrNoSubmission.WithMessage("team has not submitted a project")
		}
		js, err := judging.Score(t, judgeID, input, h.JudgingCriteria, s.now())
		if err != nil {
			return err
		}
		score = *js
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.leaderboard.Invalidate(ctx, h.ID); err != nil {
		s.logger.WarnContext(ctx, "leaderboard cache invalidation failed", slog.String("hackathon_id", h.ID), slog.Any("error", err))
	}
	s.events.Publish(h.ID, realtime.Event{
		Type: realtime.EventScoreUpdated,
		Payload: map[string]any{
			"team_id":      team.ID,
			"final_score":  team.FinalScore,
			"judges_count": len(team.JudgeScores),
		},
	})
	return &score, nil
}
