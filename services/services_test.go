package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/admission"
	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/judging"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/roster"
	"github.com/Dosada05/hackathon-platform/submission"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	hackathons *fakeHackathonRepo
	teams      *fakeTeamRepo
	users      *fakeUserRepo
	orgs       *fakeOrgRepo
	events     *recordingPublisher
	mailer     *recordingMailer
	board      *memoryLeaderboard

	hackathon *models.Hackathon

	registration RegistrationService
	team         *teamService
	submissions  *submissionService
	judgingSvc   *judgingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		hackathons: newFakeHackathonRepo(),
		teams:      newFakeTeamRepo(),
		users: newFakeUserRepo(
			&models.User{ID: "org", Username: "org", Email: "org@example.com", Role: models.RoleOrganizer},
			&models.User{ID: "alice", Username: "alice", Email: "alice@example.com", Role: models.RoleParticipant},
			&models.User{ID: "bob", Username: "bob", Email: "bob@example.com", Role: models.RoleParticipant},
			&models.User{ID: "carol", Username: "carol", Email: "carol@example.com", Role: models.RoleParticipant},
			&models.User{ID: "judge", Username: "judge", Email: "judge@example.com", Role: models.RoleParticipant},
		),
		orgs:   &fakeOrgRepo{},
		events: &recordingPublisher{},
		mailer: &recordingMailer{},
		board:  &memoryLeaderboard{},
	}

	f.hackathon = &models.Hackathon{
		ID:                   "h1",
		Name:                 "Spring Hack",
		Slug:                 "spring-hack",
		CreatedBy:            "org",
		Organizers:           []string{"org"},
		Status:               models.HackathonRegistrationOpen,
		IsPublished:          true,
		RegistrationDeadline: testNow.Add(7 * 24 * time.Hour),
		StartDate:            testNow.Add(8 * 24 * time.Hour),
		EndDate:              testNow.Add(10 * 24 * time.Hour),
		MinTeamSize:          2,
		MaxTeamSize:          3,
		AllowTeamFormation:   true,
		Participants:         []string{"alice", "bob", "carol"},
		PendingParticipants:  []string{},
		Teams:                []string{},
		Judges:               []string{"judge"},
		JudgingCriteria: []models.JudgingCriterion{
			{Name: "innovation", Weight: 1},
			{Name: "execution", Weight: 1},
		},
	}
	f.hackathons.put(f.hackathon)

	logger := discardLogger()
	clock := fixedClock(testNow)

	reg := NewRegistrationService(f.hackathons, f.teams, f.users, f.orgs, f.events, logger).(*registrationService)
	reg.now = clock
	f.registration = reg

	ts := NewTeamService(TeamServiceDeps{
		Hackathons:    f.hackathons,
		Teams:         f.teams,
		Users:         f.users,
		Organizations: f.orgs,
		Mailer:        f.mailer,
		Leaderboard:   f.board,
		Events:        f.events,
		PublicURL:     "https://hack.example.com/",
		Logger:        logger,
	}).(*teamService)
	ts.now = clock
	tokens := 0
	ts.newToken = func() (string, error) {
		tokens++
		return "token-" + string(rune('a'+tokens)), nil
	}
	f.team = ts

	subs := NewSubmissionService(f.hackathons, f.teams, NewUserService(f.users, logger), nil, f.events, logger).(*submissionService)
	subs.now = clock
	f.submissions = subs

	js := NewJudgingService(f.hackathons, f.teams, f.board, f.events, logger).(*judgingService)
	js.now = clock
	f.judgingSvc = js
	return f
}

func (f *fixture) createTeam(t *testing.T, leaderID, name string) *TeamView {
	t.Helper()
	v, err := f.team.Create(context.Background(), f.hackathon.ID, leaderID, CreateTeamInput{Name: name})
	require.NoError(t, err)
	return v
}

func (f *fixture) setHackathonStatus(t *testing.T, status models.HackathonStatus) {
	t.Helper()
	_, err := mutateHackathon(context.Background(), f.hackathons, f.hackathon.ID, func(h *models.Hackathon) error {
		h.Status = status
		return nil
	})
	require.NoError(t, err)
}

func TestMutateTeam_RetriesAfterVersionConflict(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "alice", "Rocket")

	conflicts := 0
	f.teams.beforeUpdate = func(id string) {
		if conflicts > 0 {
			return
		}
		conflicts++
		f.teams.touch(id, func(t *models.Team) { t.Tagline = "written concurrently" })
	}

	note, err := f.team.AddNote(context.Background(), team.ID, "alice", roster.NoteInput{Content: "ship it"})
	require.NoError(t, err)
	assert.Equal(t, "ship it", note.Content)

	stored, err := f.teams.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, "written concurrently", stored.Tagline, "the concurrent write must survive the retry")
	require.Len(t, stored.Notes, 1)
	assert.Equal(t, 1, conflicts)
}

func TestMutateTeam_GivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "alice", "Rocket")

	f.teams.beforeUpdate = func(id string) {
		f.teams.touch(id, func(*models.Team) {})
	}

	_, err := f.team.AddNote(context.Background(), team.ID, "alice", roster.NoteInput{Content: "ship it"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConcurrentUpdate)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestAddMember_ConcurrentJoinCannotOverfillTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")

	f.teams.beforeUpdate = func(id string) {
		f.teams.beforeUpdate = nil
		f.teams.touch(id, func(tm *models.Team) {
			require.NoError(t, roster.AddMember(tm, "x1", "", "", testNow))
			require.NoError(t, roster.AddMember(tm, "x2", "", "", testNow))
		})
	}

	_, err := f.team.AddMember(ctx, team.ID, "alice", AddMemberInput{UserID: "bob"})
	assert.ErrorIs(t, err, apperrors.ErrTeamFull)

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Members, stored.MaxSize)
	assert.False(t, stored.IsMember("bob"))
}

func TestJudging_ConcurrentJudgesKeepBothScores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")
	f.setHackathonStatus(t, models.HackathonOngoing)
	submitProject(t, f, team.ID)
	f.setHackathonStatus(t, models.HackathonJudging)

	f.teams.beforeUpdate = func(id string) {
		f.teams.beforeUpdate = nil
		f.teams.touch(id, func(tm *models.Team) {
			_, err := judging.Score(tm, "judge2", judging.ScoreInput{
				Scores: map[string]float64{"innovation": 5, "execution": 5},
			}, f.hackathon.JudgingCriteria, testNow)
			require.NoError(t, err)
		})
	}

	_, err := f.judgingSvc.Score(ctx, team.ID, "judge", judging.ScoreInput{
		Scores: map[string]float64{"innovation": 8, "execution": 6},
	})
	require.NoError(t, err)

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, stored.JudgeScores, 2)
	judges := []string{stored.JudgeScores[0].JudgeID, stored.JudgeScores[1].JudgeID}
	assert.ElementsMatch(t, []string{"judge", "judge2"}, judges)
	assert.InDelta(t, 60.0, stored.FinalScore, 0.001)
}

func TestRegistration_DirectAndApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	outcome, err := f.registration.Register(ctx, f.hackathon.ID, "judge")
	require.NoError(t, err)
	assert.Equal(t, admission.Registered, outcome)

	_, err = f.registration.Register(ctx, f.hackathon.ID, "judge")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

	_, err = mutateHackathon(ctx, f.hackathons, f.hackathon.ID, func(h *models.Hackathon) error {
		h.RequireApproval = true
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, f.users.Create(ctx, &models.User{ID: "dave", Username: "dave", Email: "dave@example.com"}))

	outcome, err = f.registration.Register(ctx, f.hackathon.ID, "dave")
	require.NoError(t, err)
	assert.Equal(t, admission.PendingApproval, outcome)

	status, err := f.registration.Status(ctx, f.hackathon.ID, "dave")
	require.NoError(t, err)
	assert.Equal(t, RegistrationPending, status.Status)

	err = f.registration.Approve(ctx, f.hackathon.ID, "alice", "dave")
	assert.ErrorIs(t, err, apperrors.ErrOrganizerOnly)

	require.NoError(t, f.registration.Approve(ctx, f.hackathon.ID, "org", "dave"))
	err = f.registration.Approve(ctx, f.hackathon.ID, "org", "dave")
	assert.ErrorIs(t, err, apperrors.ErrNotPending)

	h, err := f.hackathons.GetByID(ctx, f.hackathon.ID)
	require.NoError(t, err)
	assert.True(t, h.IsRegistered("dave"))
	assert.False(t, h.IsPending("dave"))
	assert.Contains(t, f.events.types(), realtime.EventParticipantsUpdate)
}

func TestRegistration_ApproveRespectsCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := mutateHackathon(ctx, f.hackathons, f.hackathon.ID, func(h *models.Hackathon) error {
		h.RequireApproval = true
		return nil
	})
	require.NoError(t, err)
	for _, id := range []string{"dave", "erin"} {
		require.NoError(t, f.users.Create(ctx, &models.User{ID: id, Username: id, Email: id + "@example.com"}))
		_, err := f.registration.Register(ctx, f.hackathon.ID, id)
		require.NoError(t, err)
	}
	_, err = mutateHackathon(ctx, f.hackathons, f.hackathon.ID, func(h *models.Hackathon) error {
		h.MaxParticipants = 4
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, f.registration.Approve(ctx, f.hackathon.ID, "org", "dave"))
	err = f.registration.Approve(ctx, f.hackathon.ID, "org", "erin")
	assert.ErrorIs(t, err, apperrors.ErrCapacityReached)

	h, err := f.hackathons.GetByID(ctx, f.hackathon.ID)
	require.NoError(t, err)
	assert.Len(t, h.Participants, 4)
	assert.Equal(t, []string{"erin"}, h.PendingParticipants)
}

func TestRegistration_DraftIsHidden(t *testing.T) {
	f := newFixture(t)
	f.setHackathonStatus(t, models.HackathonDraft)

	_, err := f.registration.Register(context.Background(), f.hackathon.ID, "judge")
	assert.ErrorIs(t, err, apperrors.ErrHackathonNotFound)
}

func TestRegistration_UnregisterBlockedWhileInTeam(t *testing.T) {
	f := newFixture(t)
	f.createTeam(t, "alice", "Rocket")

	err := f.registration.Unregister(context.Background(), f.hackathon.ID, "alice")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)

	require.NoError(t, f.registration.Unregister(context.Background(), f.hackathon.ID, "bob"))
	err = f.registration.Unregister(context.Background(), f.hackathon.ID, "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotRegistered)
}

func TestTeamCreate_LinksTeamAndRejectsSecondTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	team := f.createTeam(t, "alice", "Rocket Science")
	assert.Equal(t, "rocket-science", team.Slug)
	assert.Equal(t, models.TeamForming, team.Status)
	require.Len(t, team.Members, 1)
	require.NotNil(t, team.Members[0].User)
	assert.Equal(t, "alice", team.Members[0].User.Username)

	h, err := f.hackathons.GetByID(ctx, f.hackathon.ID)
	require.NoError(t, err)
	assert.True(t, h.HasTeam(team.ID))

	_, err = f.team.Create(ctx, f.hackathon.ID, "alice", CreateTeamInput{Name: "Another"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)

	_, err = f.team.Create(ctx, f.hackathon.ID, "judge", CreateTeamInput{Name: "Judges"})
	assert.ErrorIs(t, err, apperrors.ErrNotRegistered)
}

func TestInvitation_SendAndAcceptByToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")

	_, err := f.team.SendInvitation(ctx, team.ID, "bob", InviteInput{Email: "carol@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrLeaderOnly)

	inv, err := f.team.SendInvitation(ctx, team.ID, "alice", InviteInput{Email: " Bob@Example.com ", Message: "join us"})
	require.NoError(t, err)
	assert.Empty(t, inv.Token)
	assert.Equal(t, "bob", inv.InviteeID)
	assert.True(t, strings.HasPrefix(inv.InviteLink, "https://hack.example.com/invitations/"))
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "bob@example.com", f.mailer.sent[0].To)
	assert.Equal(t, "alice", f.mailer.sent[0].InviterName)

	pending, err := f.team.ListMyInvitations(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, team.ID, pending[0].TeamID)
	assert.Empty(t, pending[0].Invitation.Token)

	token := strings.TrimPrefix(inv.InviteLink, "https://hack.example.com/invitations/")

	_, err = f.team.AcceptInvitationByToken(ctx, token, "carol")
	assert.ErrorIs(t, err, apperrors.ErrNoPendingInvitation)

	view, err := f.team.AcceptInvitationByToken(ctx, token, "bob")
	require.NoError(t, err)
	assert.True(t, view.IsMember("bob"))
	assert.Equal(t, models.TeamActive, view.Status)
	for _, i := range view.Invitations {
		assert.Empty(t, i.Token)
	}
	assert.Contains(t, f.events.types(), realtime.EventMemberJoined)

	_, err = f.team.AcceptInvitationByToken(ctx, "missing", "bob")
	assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound)
}

func TestInvitation_MailFailureStillSaves(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp down")
	team := f.createTeam(t, "alice", "Rocket")

	_, err := f.team.SendInvitation(context.Background(), team.ID, "alice", InviteInput{UserID: "bob"})
	require.NoError(t, err)

	stored, err := f.teams.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	require.Len(t, stored.Invitations, 1)
	assert.Equal(t, models.InvitationPending, stored.Invitations[0].Status)
}

func TestInvitation_ExpiredAcceptIsPersisted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")

	_, err := f.team.SendInvitation(ctx, team.ID, "alice", InviteInput{UserID: "bob"})
	require.NoError(t, err)

	f.team.now = fixedClock(testNow.Add(roster.InvitationTTL + time.Hour))
	_, err = f.team.AcceptInvitation(ctx, team.ID, "bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvitationExpired)
	assert.Equal(t, apperrors.KindExpired, apperrors.KindOf(err))

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, stored.Invitations, 1)
	assert.Equal(t, models.InvitationExpired, stored.Invitations[0].Status)
	assert.False(t, stored.IsMember("bob"))
}

func TestInvitation_LookupComesBeforeJoinChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")
	require.NoError(t, f.users.Create(ctx, &models.User{ID: "dave", Username: "dave", Email: "dave@example.com"}))

	_, err := f.team.AcceptInvitation(ctx, team.ID, "dave")
	assert.ErrorIs(t, err, apperrors.ErrNoPendingInvitation, "dave is not registered but has no invitation either")

	_, err = f.team.SendInvitation(ctx, team.ID, "alice", InviteInput{UserID: "bob"})
	require.NoError(t, err)
	_, err = mutateHackathon(ctx, f.hackathons, f.hackathon.ID, func(h *models.Hackathon) error {
		h.AllowTeamFormation = false
		return nil
	})
	require.NoError(t, err)

	f.team.now = fixedClock(testNow.Add(roster.InvitationTTL + time.Hour))
	_, err = f.team.AcceptInvitation(ctx, team.ID, "bob")
	assert.ErrorIs(t, err, apperrors.ErrInvitationExpired)

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, stored.Invitations, 1)
	assert.Equal(t, models.InvitationExpired, stored.Invitations[0].Status)
}

func TestInvitation_AcceptRequiresNoOtherTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")
	f.createTeam(t, "bob", "Other")

	_, err := f.team.SendInvitation(ctx, team.ID, "alice", InviteInput{UserID: "bob"})
	require.NoError(t, err)

	_, err = f.team.AcceptInvitation(ctx, team.ID, "bob")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)
}

func TestTeamView_HidesBoardFromOutsiders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")

	_, err := f.team.AddNote(ctx, team.ID, "alice", roster.NoteInput{Content: "secret plan"})
	require.NoError(t, err)
	_, err = f.team.SendInvitation(ctx, team.ID, "alice", InviteInput{UserID: "bob"})
	require.NoError(t, err)

	outsider, err := f.team.Get(ctx, team.ID, "carol")
	require.NoError(t, err)
	assert.Empty(t, outsider.Notes)
	assert.Empty(t, outsider.Invitations)

	organizer, err := f.team.Get(ctx, team.ID, "org")
	require.NoError(t, err)
	assert.Len(t, organizer.Invitations, 1)
	assert.Empty(t, organizer.Invitations[0].Token)

	member, err := f.team.Get(ctx, team.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, member.Notes, 1)
}

func TestRemoveMember_NonMemberIsNoop(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "alice", "Rocket")

	removed, err := f.team.RemoveMember(context.Background(), team.ID, "alice", "carol")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = f.team.RemoveMember(context.Background(), team.ID, "bob", "alice")
	assert.ErrorIs(t, err, apperrors.ErrLeaderOnly)
}

func submitProject(t *testing.T, f *fixture, teamID string) {
	t.Helper()
	ctx := context.Background()
	name, desc := "Rocket", "A rocket for hackers"
	_, err := f.submissions.Update(ctx, teamID, "alice", submission.Patch{ProjectName: &name, Description: &desc})
	require.NoError(t, err)
	_, err = f.submissions.Finalize(ctx, teamID, "alice")
	require.NoError(t, err)
}

func TestSubmission_FinalizeAwardsXP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")

	_, err := f.submissions.Finalize(ctx, team.ID, "carol")
	assert.ErrorIs(t, err, apperrors.ErrNotAMember)

	submitProject(t, f, team.ID)

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSubmitted())
	assert.Equal(t, models.TeamSubmitted, stored.Status)

	alice, err := f.users.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, XPProjectSubmitted, alice.XP)
	assert.Contains(t, f.events.types(), realtime.EventProjectSubmitted)

	title := "changed"
	_, err = f.submissions.Update(ctx, team.ID, "alice", submission.Patch{ProjectName: &title})
	assert.ErrorIs(t, err, apperrors.ErrSubmissionLocked)
}

func TestSubmission_ClosedAfterDeadline(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "alice", "Rocket")

	deadline := testNow.Add(-time.Hour)
	_, err := mutateHackathon(context.Background(), f.hackathons, f.hackathon.ID, func(h *models.Hackathon) error {
		h.SubmissionDeadline = &deadline
		return nil
	})
	require.NoError(t, err)

	name := "late"
	_, err = f.submissions.Update(context.Background(), team.ID, "alice", submission.Patch{ProjectName: &name})
	assert.ErrorIs(t, err, apperrors.ErrSubmissionClosed)
}

func TestSubmission_UploadWithoutStorage(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, "alice", "Rocket")

	_, err := f.submissions.UploadMedia(context.Background(), team.ID, "alice", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrUploadUnavailable)
}

func TestJudging_ScoreFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	team := f.createTeam(t, "alice", "Rocket")
	input := judging.ScoreInput{Scores: map[string]float64{"innovation": 8, "execution": 6}}

	_, err := f.judgingSvc.Score(ctx, team.ID, "alice", input)
	assert.ErrorIs(t, err, apperrors.ErrNotAJudge)

	_, err = f.judgingSvc.Score(ctx, team.ID, "judge", input)
	assert.ErrorIs(t, err, apperrors.ErrJudgingClosed)

	f.setHackathonStatus(t, models.HackathonJudging)
	_, err = f.judgingSvc.Score(ctx, team.ID, "judge", input)
	assert.ErrorIs(t, err, apperrors.ErrNoSubmission)

	f.setHackathonStatus(t, models.HackathonOngoing)
	submitProject(t, f, team.ID)
	f.setHackathonStatus(t, models.HackathonJudging)

	require.NoError(t, f.board.Set(ctx, f.hackathon.ID, []judging.Standing{{TeamID: "stale"}}))

	score, err := f.judgingSvc.Score(ctx, team.ID, "judge", input)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, score.TotalScore, 0.001)

	stored, err := f.teams.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, stored.FinalScore, 0.001)
	assert.Equal(t, models.TeamJudging, stored.Status)

	_, cached := f.board.data[f.hackathon.ID]
	assert.False(t, cached, "scoring must invalidate the cached leaderboard")
	assert.Contains(t, f.events.types(), realtime.EventScoreUpdated)
}

func TestLeaderboard_DraftHiddenEvenWhenCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hs := NewHackathonService(f.hackathons, f.teams, f.users, f.orgs, f.board, nil, f.events, discardLogger())

	require.NoError(t, f.board.Set(ctx, f.hackathon.ID, []judging.Standing{{TeamID: "cached"}}))
	standings, err := hs.Leaderboard(ctx, f.hackathon.ID)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "cached", standings[0].TeamID)

	f.setHackathonStatus(t, models.HackathonDraft)
	_, err = hs.Leaderboard(ctx, f.hackathon.ID)
	assert.ErrorIs(t, err, apperrors.ErrHackathonNotFound)
}

func TestBuildStats(t *testing.T) {
	h := &models.Hackathon{
		ID:                  "h1",
		Status:              models.HackathonOngoing,
		StartDate:           testNow.Add(-time.Hour),
		EndDate:             testNow.Add(time.Hour),
		Participants:        []string{"a", "b", "c", "d"},
		PendingParticipants: []string{"e"},
		Judges:              []string{"j1", "j2"},
	}
	submittedAt := testNow
	teams := []*models.Team{
		{
			ID:     "t1",
			Status: models.TeamJudging,
			Members: []models.TeamMember{
				{UserID: "a", Role: models.RoleLeader},
				{UserID: "b", Role: models.RoleMember},
			},
			Submission:  &models.ProjectSubmission{IsSubmitted: true, SubmittedAt: &submittedAt},
			JudgeScores: []models.JudgeScore{{JudgeID: "j1"}, {JudgeID: "j2"}},
			Invitations: []models.TeamInvitation{
				{Status: models.InvitationPending, ExpiresAt: testNow.Add(time.Hour)},
				{Status: models.InvitationPending, ExpiresAt: testNow.Add(-time.Hour)},
			},
		},
		{
			ID:             "t2",
			Status:         models.TeamWithdrawn,
			IsDisqualified: true,
			Members:        []models.TeamMember{{UserID: "c", Role: models.RoleLeader}},
		},
	}

	stats := buildStats(h, teams, testNow)

	assert.Equal(t, 4, stats.ParticipantsTotal)
	assert.Equal(t, 1, stats.PendingApprovals)
	assert.Equal(t, 2, stats.TeamsTotal)
	assert.Equal(t, 1, stats.TeamsByStatus[string(models.TeamJudging)])
	assert.Equal(t, 1, stats.TeamsByStatus[string(models.TeamWithdrawn)])
	assert.Equal(t, 1, stats.SubmissionsTotal)
	assert.Equal(t, 1, stats.DisqualifiedTeams)
	assert.Equal(t, 2, stats.ScoresTotal)
	assert.Equal(t, 2, stats.JudgesTotal)
	assert.Equal(t, 2, stats.UnassignedSolo, "c left with a withdrawn team, d never joined one")
	assert.Equal(t, 1, stats.PendingInvitations)
}
