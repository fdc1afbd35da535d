package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.HackathonStatus
		to      models.HackathonStatus
		changed bool
		wantErr error
	}{
		{"draft to published", models.HackathonDraft, models.HackathonPublished, true, nil},
		{"reopen registration", models.HackathonRegistrationClosed, models.HackathonRegistrationOpen, true, nil},
		{"ongoing to judging", models.HackathonOngoing, models.HackathonJudging, true, nil},
		{"same status is a no-op", models.HackathonOngoing, models.HackathonOngoing, false, nil},
		{"skip ahead", models.HackathonDraft, models.HackathonOngoing, false, apperrors.ErrInvalidStatusTransition},
		{"cancelled is terminal", models.HackathonCancelled, models.HackathonDraft, false, apperrors.ErrInvalidStatusTransition},
		{"judging cannot be cancelled", models.HackathonJudging, models.HackathonCancelled, false, apperrors.ErrInvalidStatusTransition},
		{"unknown status", models.HackathonDraft, models.HackathonStatus("paused"), false, apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &models.Hackathon{Status: tt.from}
			changed, err := Transition(h, tt.to, now)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, tt.from, h.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.to, h.Status)
		})
	}
}

func TestTransitionToPublishedStampsPublishedAt(t *testing.T) {
	h := &models.Hackathon{Status: models.HackathonDraft}

	_, err := Transition(h, models.HackathonPublished, now)
	require.NoError(t, err)

	assert.True(t, h.IsPublished)
	require.NotNil(t, h.PublishedAt)
	assert.Equal(t, now, *h.PublishedAt)
}

func TestPublish(t *testing.T) {
	h := &models.Hackathon{Status: models.HackathonDraft}

	require.NoError(t, Publish(h, now))
	assert.Equal(t, models.HackathonRegistrationOpen, h.Status)
	assert.True(t, h.IsPublished)

	h.Status = models.HackathonOngoing
	err := Publish(h, now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
}

func TestGates(t *testing.T) {
	deadline := now.Add(-time.Hour)
	h := &models.Hackathon{Status: models.HackathonOngoing, AllowTeamFormation: true}

	assert.True(t, AllowsTeamFormation(h))
	assert.True(t, AllowsSubmission(h, now))
	assert.False(t, AllowsJudging(h))
	assert.False(t, AllowsRegistration(h))

	h.AllowTeamFormation = false
	assert.False(t, AllowsTeamFormation(h))

	h.SubmissionDeadline = &deadline
	assert.False(t, AllowsSubmission(h, now))

	h.Status = models.HackathonJudging
	assert.True(t, AllowsJudging(h))
	assert.False(t, AllowsSubmission(h, deadline.Add(-time.Hour)))
}

func TestDisplayStatus(t *testing.T) {
	h := &models.Hackathon{
		Status:    models.HackathonOngoing,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	assert.Equal(t, DisplayOngoing, DisplayStatus(h, now))
	assert.Equal(t, DisplayUpcoming, DisplayStatus(h, now.Add(-2*time.Hour)))
	assert.Equal(t, DisplayEnded, DisplayStatus(h, now.Add(2*time.Hour)))

	h.Status = models.HackathonCancelled
	assert.Equal(t, DisplayCancelled, DisplayStatus(h, now))
	h.Status = models.HackathonCompleted
	assert.Equal(t, DisplayCompleted, DisplayStatus(h, now))
}
