package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/roster"
	"github.com/Dosada05/hackathon-platform/utils"
)

type InviteInput struct {
	Email   string `json:"email"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// SendInvitation is leader-only. The invitee is resolved to an account when one
// exists; otherwise the invitation waits for that email to sign up.
func (s *teamService) SendInvitation(ctx context.Context, teamID, actorID string, input InviteInput) (*InvitationView, error) {
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if !current.IsLeader(actorID) {
		return nil, apperrors.ErrLeaderOnly
	}
	h, err := loadHackathon(ctx, s.hackathonRepo, current.HackathonID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.AllowsTeamFormation(h) {
		return nil, apperrors.ErrTeamFormationClosed
	}

	email, inviteeID, err := s.resolveInvitee(ctx, input)
	if err != nil {
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	var invitation models.TeamInvitation
	team, err := mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		if !t.IsLeader(actorID) {
			return apperrors.ErrLeaderOnly
		}
		inv, err := roster.SendInvitation(t, roster.InvitationRequest{
			ID:           utils.NewID(),
			Token:        token,
			InviterID:    actorID,
			InviteeEmail: email,
			InviteeID:    inviteeID,
			Message:      strings.TrimSpace(input.Message),
		}, s.now())
		if err != nil {
			return err
		}
		invitation = *inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	link := s.inviteLink(token)
	inviterName := actorID
	if inviter, err := s.userRepo.GetByID(ctx, actorID); err == nil {
		inviterName = inviter.Username
	}
	if err := s.mailer.SendTeamInvitation(ctx, TeamInvitationEmail{
		To:            invitation.InviteeEmail,
		TeamName:      team.Name,
		HackathonName: h.Name,
		InviterName:   inviterName,
		Message:       invitation.Message,
		InviteLink:    link,
	}); err != nil {
		// приглашение уже сохранено, ссылку лидер получит в ответе
		s.logger.WarnContext(ctx, "failed to send invitation email",
			slog.String("team_id", team.ID), slog.String("invitation_id", invitation.ID), slog.Any("error", err))
	}

	invitation.Token = ""
	return &InvitationView{TeamInvitation: invitation, InviteLink: link}, nil
}

func (s *teamService) AcceptInvitation(ctx context.Context, teamID, userID string) (*TeamView, error) {
	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, teamID, userID,
		func(t *models.Team) error { return roster.CheckInvitation(t, userID, user.Email, s.now()) },
		func(t *models.Team) error { return roster.AcceptInvitation(t, userID, user.Email, s.now()) },
	)
}

func (s *teamService) AcceptInvitationByToken(ctx context.Context, token, userID string) (*TeamView, error) {
	if token == "" {
		return nil, apperrors.ErrInvitationNotFound
	}
	team, err := s.teamRepo.FindByInvitationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}
	return s.accept(ctx, team.ID, userID,
		func(t *models.Team) error { return roster.CheckInvitationByToken(t, token, userID, s.now()) },
		func(t *models.Team) error { return roster.AcceptInvitationByToken(t, token, userID, s.now()) },
	)
}

// accept looks the invitation up first, then runs the join checks that live
// outside the team document, then the invitation transition itself. An expired
// invitation is saved as expired whatever the join checks would say.
func (s *teamService) accept(ctx context.Context, teamID, userID string, check, apply func(t *models.Team) error) (*TeamView, error) {
	current, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := check(current); err != nil {
		if !apperrors.PersistsState(err) {
			return nil, err
		}
	} else if err := s.ensureCanJoin(ctx, current.HackathonID, userID); err != nil {
		return nil, err
	}

	team, err := mutateTeam(ctx, s.teamRepo, teamID, apply)
	if err != nil {
		if apperrors.PersistsState(err) {
			s.logger.InfoContext(ctx, "invitation expired on accept", slog.String("team_id", teamID), slog.String("user_id", userID))
		}
		return nil, err
	}

	publishTeamEvent(s.events, realtime.EventMemberJoined, team, map[string]any{"user_id": userID})
	return s.view(ctx, team, userID)
}

func (s *teamService) DeclineInvitation(ctx context.Context, teamID, userID string) error {
	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}
	_, err = mutateTeam(ctx, s.teamRepo, teamID, func(t *models.Team) error {
		return roster.DeclineInvitation(t, userID, user.Email, s.now())
	})
	return err
}

// ListMyInvitations returns pending, unexpired invitations addressed to the user.
func (s *teamService) ListMyInvitations(ctx context.Context, userID string) ([]PendingInvitation, error) {
	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListInvitedTeams(ctx, userID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := s.now()
	out := make([]PendingInvitation, 0)
	for _, t := range teams {
		roster.ExpireStale(t, now)
		for _, inv := range roster.PendingInvitations(t) {
			if !inv.Matches(userID, user.Email) {
				continue
			}
			inv.Token = ""
			out = append(out, PendingInvitation{
				TeamID:      t.ID,
				TeamName:    t.Name,
				HackathonID: t.HackathonID,
				Invitation:  inv,
			})
		}
	}
	return out, nil
}

func (s *teamService) resolveInvitee(ctx context.Context, input InviteInput) (string, string, error) {
	if input.UserID != "" {
		u, err := loadUser(ctx, s.userRepo, input.UserID)
		if err != nil {
			return "", "", err
		}
		return u.Email, u.ID, nil
	}

	email := utils.NormalizeEmail(input.Email)
	if !utils.IsValidEmail(email) {
		return "", "", apperrors.ErrInvalidInvitee
	}
	u, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return email, u.ID, nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return email, "", nil
	default:
		return "", "", fmt.Errorf("failed to look up invitee: %w", err)
	}
}

func (s *teamService) inviteLink(token string) string {
	return fmt.Sprintf("%s/invitations/%s", strings.TrimRight(s.publicURL, "/"), url.PathEscape(token))
}
