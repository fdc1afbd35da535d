package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

func TestAddNote(t *testing.T) {
	team := teamWithLeader(3)

	note, err := AddNote(team, NoteInput{ID: "n1", AuthorID: "lead", Content: " ship it ", Type: models.NoteDecision}, now)
	require.NoError(t, err)
	assert.Equal(t, "ship it", note.Content)
	assert.Equal(t, models.NoteDecision, note.Type)
	assert.NotNil(t, note.Tags)

	note, err = AddNote(team, NoteInput{AuthorID: "lead", Content: "x"}, now)
	require.NoError(t, err)
	assert.Equal(t, models.NoteGeneral, note.Type)

	_, err = AddNote(team, NoteInput{AuthorID: "outsider", Content: "x"}, now)
	assert.ErrorIs(t, err, apperrors.ErrNotAMember)

	_, err = AddNote(team, NoteInput{AuthorID: "lead", Content: ""}, now)
	assert.ErrorIs(t, err, apperrors.ErrNoteContentRequired)

	_, err = AddNote(team, NoteInput{AuthorID: "lead", Content: "x", Type: "rant"}, now)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	assert.Len(t, team.Notes, 2)
}

func TestAwardsAndDisqualification(t *testing.T) {
	team := teamWithLeader(3)

	added, err := AwardPrize(team, "Best UI", now)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = AwardPrize(team, "Best UI", now)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"Best UI"}, team.Awards)

	require.NoError(t, Disqualify(team, "plagiarism", now))
	assert.True(t, team.IsDisqualified)
	assert.Equal(t, "plagiarism", team.DisqualificationReason)
	assert.ErrorIs(t, Disqualify(team, "again", now), apperrors.ErrTeamDisqualified)

	_, err = AwardPrize(team, "Grand Prize", now)
	assert.ErrorIs(t, err, apperrors.ErrTeamDisqualified)
}
