// Package roster manages team membership: formation, leadership, invitations,
// the team board and the organizer-side verdicts (awards, disqualification).
//
// Every function mutates the team in memory only; persisting it is up to the caller.
package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
)

// NewTeamInput carries the identifiers and profile of a team being formed. ID and
// Slug are allocated by the caller (slug uniqueness is a store concern).
type NewTeamInput struct {
	ID               string
	Name             string
	Slug             string
	Tagline          string
	Description      string
	LookingForSkills []string
}

// NewTeam forms a team for h with leaderID as its only member.
func NewTeam(h *models.Hackathon, leaderID string, in NewTeamInput, now time.Time) (*models.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.ErrTeamNameRequired
	}
	if !lifecycle.AllowsTeamFormation(h) {
		return nil, apperrors.ErrTeamFormationClosed
	}
	if !h.IsRegistered(leaderID) {
		return nil, apperrors.ErrNotRegistered
	}

	maxSize := h.MaxTeamSize
	if maxSize <= 0 {
		maxSize = models.DefaultMaxTeamSize
	}
	minSize := h.MinTeamSize
	if minSize <= 0 {
		minSize = models.DefaultMinTeamSize
	}
	if minSize > maxSize {
		minSize = maxSize
	}

	t := &models.Team{
		ID:               in.ID,
		HackathonID:      h.ID,
		Name:             name,
		Slug:             in.Slug,
		Tagline:          in.Tagline,
		Description:      in.Description,
		LeaderID:         leaderID,
		MinSize:          minSize,
		MaxSize:          maxSize,
		Members:          []models.TeamMember{},
		Invitations:      []models.TeamInvitation{},
		Notes:            []models.TeamNote{},
		JudgeScores:      []models.JudgeScore{},
		Awards:           []string{},
		LookingForSkills: in.LookingForSkills,
		IsRecruiting:     true,
		Status:           models.TeamForming,
		CreatedAt:        now,
		UpdatedAt:        now,
		LastActivity:     now,
	}
	t.Members = append(t.Members, models.TeamMember{
		UserID:            leaderID,
		Role:              models.RoleLeader,
		ContributionLevel: models.ContributionMedium,
		JoinedAt:          now,
	})
	refreshStatus(t)
	return t, nil
}

// AddMember appends userID as a member. The leader changes only through
// TransferLeadership and pending invitees are not members yet, so role must be
// empty or member.
func AddMember(t *models.Team, userID string, role models.MemberRole, projectRole string, now time.Time) error {
	if role != "" && role != models.RoleMember {
		return apperrors.ErrValidationFailed.WithMessage(fmt.Sprintf("role %q cannot be assigned to a new member", role))
	}
	if err := ensureOpen(t); err != nil {
		return err
	}
	if t.IsFull() {
		return apperrors.ErrTeamFull
	}
	if t.IsMember(userID) {
		return apperrors.ErrAlreadyMember
	}
	t.Members = append(t.Members, models.TeamMember{
		UserID:            userID,
		Role:              models.RoleMember,
		ProjectRole:       projectRole,
		ContributionLevel: models.ContributionMedium,
		JoinedAt:          now,
	})
	touch(t, now)
	refreshStatus(t)
	return nil
}

// RemoveMember filters userID out of the roster. It reports false when userID was
// not a member. The leader can't be removed.
func RemoveMember(t *models.Team, userID string, now time.Time) (bool, error) {
	if t.IsLeader(userID) {
		return false, apperrors.ErrCannotRemoveLeader
	}
	idx := t.MemberIndex(userID)
	if idx < 0 {
		return false, nil
	}
	t.Members = append(t.Members[:idx], t.Members[idx+1:]...)
	touch(t, now)
	refreshStatus(t)
	return true, nil
}

// TransferLeadership hands the leader role to another member. Roles are only
// rewritten once newLeaderID is known to be a member.
func TransferLeadership(t *models.Team, newLeaderID string, now time.Time) error {
	idx := t.MemberIndex(newLeaderID)
	if idx < 0 {
		return apperrors.ErrNotAMember
	}
	if t.LeaderID == newLeaderID {
		return nil
	}
	for i := range t.Members {
		if t.Members[i].UserID == t.LeaderID {
			t.Members[i].Role = models.RoleMember
		}
	}
	t.Members[idx].Role = models.RoleLeader
	t.LeaderID = newLeaderID
	touch(t, now)
	return nil
}

func ensureOpen(t *models.Team) error {
	if t.Status == models.TeamWithdrawn {
		return apperrors.ErrTeamWithdrawn
	}
	if t.IsDisqualified {
		return apperrors.ErrTeamDisqualified
	}
	return nil
}

func touch(t *models.Team, now time.Time) {
	t.LastActivity = now
	t.UpdatedAt = now
}

// refreshStatus moves a team between forming and active as the roster crosses
// the minimum size. Later statuses are left alone.
func refreshStatus(t *models.Team) {
	if t.Status != models.TeamForming && t.Status != models.TeamActive {
		return
	}
	if len(t.Members) >= t.MinSize {
		t.Status = models.TeamActive
	} else {
		t.Status = models.TeamForming
	}
	t.IsRecruiting = !t.IsFull()
}
