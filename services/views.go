package services

import (
	"time"

	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
)

// HackathonView adds the derived fields clients display.
type HackathonView struct {
	*models.Hackathon
	RegistrationCount int    `json:"registration_count"`
	DisplayStatus     string `json:"display_status"`
}

func newHackathonView(h *models.Hackathon, organizer bool, now time.Time) HackathonView {
	view := *h
	if !organizer {
		view.PendingParticipants = nil
	}
	return HackathonView{
		Hackathon:         &view,
		RegistrationCount: h.RegistrationCount(),
		DisplayStatus:     lifecycle.DisplayStatus(h, now),
	}
}

type MemberView struct {
	models.TeamMember
	User *models.UserSummary `json:"user,omitempty"`
}

// TeamView resolves member references and hides what the viewer shouldn't see:
// invitation tokens always, the board and invitations from non-members, and
// other judges' private notes.
type TeamView struct {
	*models.Team
	Members []MemberView `json:"members"`
}

func newTeamView(t *models.Team, users map[string]models.UserSummary, viewerID string, organizer bool) TeamView {
	team := *t
	member := t.IsMember(viewerID)

	invitations := make([]models.TeamInvitation, 0, len(t.Invitations))
	if member || organizer {
		for _, inv := range t.Invitations {
			inv.Token = ""
			invitations = append(invitations, inv)
		}
	}
	team.Invitations = invitations

	if !member {
		team.Notes = []models.TeamNote{}
	}

	scores := make([]models.JudgeScore, 0, len(t.JudgeScores))
	for _, s := range t.JudgeScores {
		if s.JudgeID != viewerID && !organizer {
			s.PrivateNotes = ""
		}
		scores = append(scores, s)
	}
	team.JudgeScores = scores

	members := make([]MemberView, 0, len(t.Members))
	for _, m := range t.Members {
		mv := MemberView{TeamMember: m}
		if u, ok := users[m.UserID]; ok {
			u := u
			mv.User = &u
		}
		members = append(members, mv)
	}

	return TeamView{Team: &team, Members: members}
}

// InvitationView is what the inviting leader gets back; the link carries the token.
type InvitationView struct {
	models.TeamInvitation
	InviteLink string `json:"invite_link,omitempty"`
}

// PendingInvitation is an invitation addressed to the current user.
type PendingInvitation struct {
	TeamID      string                `json:"team_id"`
	TeamName    string                `json:"team_name"`
	HackathonID string                `json:"hackathon_id"`
	Invitation  models.TeamInvitation `json:"invitation"`
}
