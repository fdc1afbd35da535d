package judging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var weighted = []models.JudgingCriterion{
	{Name: "innovation", Weight: 2},
	{Name: "design", Weight: 1},
	{Name: "impact"},
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name    string
		scores  map[string]float64
		weights map[string]float64
		want    float64
	}{
		{"weighted", map[string]float64{"innovation": 8, "design": 6}, map[string]float64{"innovation": 2, "design": 1}, 100 * 22.0 / 30.0},
		{"unweighted uses the same scale", map[string]float64{"innovation": 8, "design": 6}, nil, 70},
		{"missing criteria are excluded", map[string]float64{"innovation": 10}, map[string]float64{"innovation": 2, "design": 1}, 100},
		{"unknown weight defaults to one", map[string]float64{"design": 5, "impact": 10}, map[string]float64{"design": 1}, 75},
		{"empty", map[string]float64{}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Total(tt.scores, tt.weights), 1e-9)
		})
	}
}

func TestScoreUpsert(t *testing.T) {
	team := &models.Team{Status: models.TeamSubmitted}

	s, err := Score(team, "judge1", ScoreInput{Scores: map[string]float64{"innovation": 8, "design": 6}}, weighted, now)
	require.NoError(t, err)
	assert.InDelta(t, 73.333, s.TotalScore, 0.001)
	assert.Equal(t, models.TeamJudging, team.Status)

	_, err = Score(team, "judge1", ScoreInput{Scores: map[string]float64{"innovation": 10, "design": 10}}, weighted, now)
	require.NoError(t, err)
	require.Len(t, team.JudgeScores, 1)
	assert.InDelta(t, 100, team.JudgeScores[0].TotalScore, 1e-9)
	assert.InDelta(t, 100, team.FinalScore, 1e-9)
}

func TestFinalScoreIsMeanOfJudges(t *testing.T) {
	team := &models.Team{}

	_, err := Score(team, "judge1", ScoreInput{Scores: map[string]float64{"innovation": 8}}, nil, now)
	require.NoError(t, err)
	assert.InDelta(t, 80, team.FinalScore, 1e-9)

	_, err = Score(team, "judge2", ScoreInput{Scores: map[string]float64{"innovation": 6}}, nil, now)
	require.NoError(t, err)
	assert.InDelta(t, 70, team.FinalScore, 1e-9)

	_, err = Score(team, "judge2", ScoreInput{Scores: map[string]float64{"innovation": 4}}, nil, now)
	require.NoError(t, err)
	assert.Len(t, team.JudgeScores, 2)
	assert.InDelta(t, 60, team.FinalScore, 1e-9)

	assert.Equal(t, 0.0, FinalScore(nil))
}

func TestScoreValidation(t *testing.T) {
	team := &models.Team{}

	tests := []struct {
		name     string
		scores   map[string]float64
		criteria []models.JudgingCriterion
	}{
		{"empty map", map[string]float64{}, nil},
		{"above range", map[string]float64{"innovation": 11}, nil},
		{"negative", map[string]float64{"innovation": -1}, nil},
		{"unknown criterion", map[string]float64{"speed": 5}, weighted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(team, "judge1", ScoreInput{Scores: tt.scores}, tt.criteria, now)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCriteria)
			assert.Empty(t, team.JudgeScores)
		})
	}
}

func TestScoreDisqualified(t *testing.T) {
	team := &models.Team{IsDisqualified: true}
	_, err := Score(team, "judge1", ScoreInput{Scores: map[string]float64{"x": 5}}, nil, now)
	assert.ErrorIs(t, err, apperrors.ErrTeamDisqualified)
}

func TestRank(t *testing.T) {
	early, late := now, now.Add(time.Hour)
	teams := []*models.Team{
		{ID: "a", Name: "Alpha", FinalScore: 70, Submission: &models.ProjectSubmission{SubmittedAt: &late}},
		{ID: "b", Name: "Beta", FinalScore: 70, Submission: &models.ProjectSubmission{SubmittedAt: &early}},
		{ID: "c", Name: "Gamma", FinalScore: 90},
		{ID: "d", Name: "Delta", FinalScore: 99, IsDisqualified: true},
		{ID: "e", Name: "Echo", FinalScore: 10},
	}

	standings := Rank(teams)
	require.Len(t, standings, 4)
	ids := make([]string, 0, len(standings))
	for _, s := range standings {
		ids = append(ids, s.TeamID)
	}
	assert.Equal(t, []string{"c", "b", "a", "e"}, ids)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 4, standings[3].Rank)
}
