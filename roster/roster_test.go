package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func teamWithLeader(maxSize int) *models.Team {
	return &models.Team{
		ID:       "t1",
		LeaderID: "lead",
		MinSize:  1,
		MaxSize:  maxSize,
		Status:   models.TeamActive,
		Members: []models.TeamMember{
			{UserID: "lead", Role: models.RoleLeader},
		},
	}
}

// assertRosterInvariants checks capacity and the single-leader rule.
func assertRosterInvariants(t *testing.T, team *models.Team) {
	t.Helper()
	assert.LessOrEqual(t, len(team.Members), team.MaxSize)
	leaders := 0
	for _, m := range team.Members {
		if m.Role == models.RoleLeader {
			leaders++
			assert.Equal(t, team.LeaderID, m.UserID)
		}
	}
	assert.Equal(t, 1, leaders)
}

func TestNewTeam(t *testing.T) {
	h := &models.Hackathon{
		ID:                 "h1",
		Status:             models.HackathonRegistrationOpen,
		AllowTeamFormation: true,
		MinTeamSize:        2,
		MaxTeamSize:        3,
		Participants:       []string{"u1"},
	}

	team, err := NewTeam(h, "u1", NewTeamInput{ID: "t1", Name: "  Rocket  ", Slug: "rocket"}, now)
	require.NoError(t, err)
	assert.Equal(t, "Rocket", team.Name)
	assert.Equal(t, "h1", team.HackathonID)
	assert.Equal(t, 3, team.MaxSize)
	assert.Equal(t, models.TeamForming, team.Status)
	assertRosterInvariants(t, team)

	require.NoError(t, AddMember(team, "u2", "", "backend", now))
	assert.Equal(t, models.TeamActive, team.Status)

	_, err = NewTeam(h, "stranger", NewTeamInput{Name: "x"}, now)
	assert.ErrorIs(t, err, apperrors.ErrNotRegistered)

	_, err = NewTeam(h, "u1", NewTeamInput{Name: " "}, now)
	assert.ErrorIs(t, err, apperrors.ErrTeamNameRequired)

	h.AllowTeamFormation = false
	_, err = NewTeam(h, "u1", NewTeamInput{Name: "x"}, now)
	assert.ErrorIs(t, err, apperrors.ErrTeamFormationClosed)
}

func TestAddMember(t *testing.T) {
	team := teamWithLeader(2)

	require.NoError(t, AddMember(team, "u2", models.RoleMember, "design", now))
	assert.Equal(t, models.RoleMember, team.Members[1].Role)
	assert.Equal(t, "design", team.Members[1].ProjectRole)
	assert.Equal(t, now, team.LastActivity)

	assert.ErrorIs(t, AddMember(team, "u3", "", "", now), apperrors.ErrTeamFull)

	_, err := RemoveMember(team, "u2", now)
	require.NoError(t, err)
	assert.ErrorIs(t, AddMember(team, "lead", "", "", now), apperrors.ErrAlreadyMember)
	assertRosterInvariants(t, team)
}

func TestAddMember_RejectsOtherRoles(t *testing.T) {
	tests := []struct {
		name string
		role models.MemberRole
	}{
		{"leader", models.RoleLeader},
		{"pending", models.RolePending},
		{"unknown", "superuser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := teamWithLeader(3)

			err := AddMember(team, "u2", tt.role, "", now)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Len(t, team.Members, 1)
			assert.False(t, team.IsMember("u2"))
			assert.ErrorIs(t, TransferLeadership(team, "u2", now), apperrors.ErrNotAMember)
			assertRosterInvariants(t, team)
		})
	}
}

func TestRemoveMember(t *testing.T) {
	team := teamWithLeader(3)
	require.NoError(t, AddMember(team, "u2", "", "", now))

	_, err := RemoveMember(team, "lead", now)
	assert.ErrorIs(t, err, apperrors.ErrCannotRemoveLeader)

	removed, err := RemoveMember(team, "u2", now)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveMember(team, "nobody", now)
	require.NoError(t, err)
	assert.False(t, removed)
	assertRosterInvariants(t, team)
}

func TestTransferLeadership(t *testing.T) {
	team := teamWithLeader(3)
	require.NoError(t, AddMember(team, "u2", "", "", now))

	err := TransferLeadership(team, "outsider", now)
	assert.ErrorIs(t, err, apperrors.ErrNotAMember)
	assert.Equal(t, "lead", team.LeaderID)
	assert.Equal(t, models.RoleLeader, team.Members[0].Role)
	assert.Equal(t, models.RoleMember, team.Members[1].Role)

	require.NoError(t, TransferLeadership(team, "u2", now))
	assert.Equal(t, "u2", team.LeaderID)
	assert.Equal(t, models.RoleMember, team.Members[0].Role)
	assert.Equal(t, models.RoleLeader, team.Members[1].Role)
	assertRosterInvariants(t, team)

	// the old leader can now leave
	removed, err := RemoveMember(team, "lead", now)
	require.NoError(t, err)
	assert.True(t, removed)
	assertRosterInvariants(t, team)
}

func TestWithdrawnTeamRejectsMembers(t *testing.T) {
	team := teamWithLeader(3)
	team.Invitations = []models.TeamInvitation{
		{InviteeEmail: "a@b.c", Status: models.InvitationPending, ExpiresAt: now.Add(time.Hour)},
	}

	require.NoError(t, Withdraw(team, now))
	assert.Equal(t, models.InvitationExpired, team.Invitations[0].Status)
	assert.ErrorIs(t, Withdraw(team, now), apperrors.ErrTeamWithdrawn)
	assert.ErrorIs(t, AddMember(team, "u2", "", "", now), apperrors.ErrTeamWithdrawn)
}
