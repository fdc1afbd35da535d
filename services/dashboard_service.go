package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/roster"
)

type DashboardService interface {
	GetStats(ctx context.Context, hackathonID, actorID string) (models.DashboardStats, error)
}

type dashboardService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	organizers    organizerChecker
	now           func() time.Time
}

func NewDashboardService(
	hackathonRepo repositories.HackathonRepository,
	teamRepo repositories.TeamRepository,
	orgRepo repositories.OrganizationRepository,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		hackathonRepo: hackathonRepo,
		teamRepo:      teamRepo,
		organizers:    organizerChecker{orgRepo: orgRepo, logger: logger},
		now:           systemClock,
	}
}

// GetStats is organizer-only.
func (s *dashboardService) GetStats(ctx context.Context, hackathonID, actorID string) (models.DashboardStats, error) {
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
		return models.DashboardStats{}, err
	}
	if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
		return models.DashboardStats{}, err
	}

	return buildStats(h, teams, s.now()), nil
}

func buildStats(h *models.Hackathon, teams []*models.Team, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		HackathonID:       h.ID,
		Status:            string(h.Status),
		DisplayStatus:     lifecycle.DisplayStatus(h, now),
		ParticipantsTotal: h.RegistrationCount(),
		PendingApprovals:  len(h.PendingParticipants),
		JudgesTotal:       len(h.Judges),
		TeamsByStatus:     make(map[string]int),
	}

	inTeam := make(map[string]bool)
	for _, t := range teams {
		stats.TeamsTotal++
		stats.TeamsByStatus[string(t.Status)]++
		if t.IsSubmitted() {
			stats.SubmissionsTotal++
		}
		if t.IsDisqualified {
			stats.DisqualifiedTeams++
		}
		stats.ScoresTotal += len(t.JudgeScores)
		if t.Status == models.TeamWithdrawn {
			continue
		}
		for _, id := range t.MemberIDs() {
			inTeam[id] = true
		}
		for _, inv := range roster.PendingInvitations(t) {
			if !now.After(inv.ExpiresAt) {
				stats.PendingInvitations++
			}
		}
	}
	for _, p := range h.Participants {
		if !inTeam[p] {
			stats.UnassignedSolo++
		}
	}
	return stats
}
