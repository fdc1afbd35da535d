// Package judging records per-judge scores on a team and derives the team's
// final score and standing.
//
// All totals are on a 0-100 scale. Each criterion is scored 0-10.
package judging

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

const (
	MinCriterionScore = 0
	MaxCriterionScore = 10
	defaultWeight     = 1
)

type ScoreInput struct {
	Scores       map[string]float64 `json:"scores"`
	Feedback     string             `json:"feedback"`
	PrivateNotes string             `json:"private_notes"`
}

// Validate checks the score map against the hackathon's criteria (if any).
func Validate(scores map[string]float64, criteria []models.JudgingCriterion) error {
	if len(scores) == 0 {
		return apperrors.ErrInvalidCriteria.WithMessage("at least one criterion score is required")
	}
	known := make(map[string]struct{}, len(criteria))
	for _, c := range criteria {
		known[c.Name] = struct{}{}
	}
	for name, v := range scores {
		if math.IsNaN(v) || v < MinCriterionScore || v > MaxCriterionScore {
			return apperrors.ErrInvalidCriteria.WithMessage(
				fmt.Sprintf("score for %q must be between %d and %d", name, MinCriterionScore, MaxCriterionScore))
		}
		if len(known) > 0 {
			if _, ok := known[name]; !ok {
				return apperrors.ErrInvalidCriteria.WithMessage(fmt.Sprintf("unknown criterion %q", name))
			}
		}
	}
	return nil
}

// Total normalizes a score map to 0-100. With weights, criteria missing from
// scores are left out of both sums and criteria without a weight count as 1.
// Without weights it is ten times the mean.
func Total(scores map[string]float64, weights map[string]float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	if len(weights) == 0 {
		var sum float64
		for _, v := range scores {
			sum += v
		}
		return sum / float64(len(scores)) * (100 / MaxCriterionScore)
	}

	var num, den float64
	for name, v := range scores {
		w, ok := weights[name]
		if !ok || w <= 0 {
			w = defaultWeight
		}
		num += v * w
		den += MaxCriterionScore * w
	}
	return 100 * num / den
}

// FinalScore is the mean of all judge totals, 0 when nobody has scored.
func FinalScore(scores []models.JudgeScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.TotalScore
	}
	return sum / float64(len(scores))
}

// Score upserts judgeID's score on t and recomputes the final score.
func Score(t *models.Team, judgeID string, in ScoreInput, criteria []models.JudgingCriterion, now time.Time) (*models.JudgeScore, error) {
	if t.IsDisqualified {
		return nil, apperrors.ErrTeamDisqualified
	}
	if err := Validate(in.Scores, criteria); err != nil {
		return nil, err
	}

	var weights map[string]float64
	if len(criteria) > 0 {
		weights = make(map[string]float64, len(criteria))
		for _, c := range criteria {
			weights[c.Name] = c.Weight
		}
	}

	scores := make(map[string]float64, len(in.Scores))
	for k, v := range in.Scores {
		scores[k] = v
	}
	entry := models.JudgeScore{
		JudgeID:      judgeID,
		Scores:       scores,
		TotalScore:   Total(scores, weights),
		Feedback:     in.Feedback,
		PrivateNotes: in.PrivateNotes,
		ScoredAt:     now,
	}

	idx := -1
	for i := range t.JudgeScores {
		if t.JudgeScores[i].JudgeID == judgeID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		t.JudgeScores[idx] = entry
	} else {
		t.JudgeScores = append(t.JudgeScores, entry)
		idx = len(t.JudgeScores) - 1
	}

	t.FinalScore = FinalScore(t.JudgeScores)
	if t.Status == models.TeamSubmitted {
		t.Status = models.TeamJudging
	}
	t.UpdatedAt = now
	return &t.JudgeScores[idx], nil
}

// Standing is a team's place on the leaderboard.
type Standing struct {
	Rank        int      `json:"rank"`
	TeamID      string   `json:"team_id"`
	TeamName    string   `json:"team_name"`
	FinalScore  float64  `json:"final_score"`
	JudgesCount int      `json:"judges_count"`
	Awards      []string `json:"awards"`
}

// Rank orders non-disqualified teams by final score, then by who submitted first,
// then by name. Equal scores share no rank; positions are 1..n.
func Rank(teams []*models.Team) []Standing {
	eligible := make([]*models.Team, 0, len(teams))
	for _, t := range teams {
		if t != nil && !t.IsDisqualified && t.Status != models.TeamWithdrawn {
			eligible = append(eligible, t)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		as, bs := submittedAt(a), submittedAt(b)
		if !as.Equal(bs) {
			if as.IsZero() {
				return false
			}
			if bs.IsZero() {
				return true
			}
			return as.Before(bs)
		}
		return a.Name < b.Name
	})

	out := make([]Standing, 0, len(eligible))
	for i, t := range eligible {
		awards := t.Awards
		if awards == nil {
			awards = []string{}
		}
		out = append(out, Standing{
			Rank:        i + 1,
			TeamID:      t.ID,
			TeamName:    t.Name,
			FinalScore:  t.FinalScore,
			JudgesCount: len(t.JudgeScores),
			Awards:      awards,
		})
	}
	return out
}

func submittedAt(t *models.Team) time.Time {
	if t.Submission == nil || t.Submission.SubmittedAt == nil {
		return time.Time{}
	}
	return *t.Submission.SubmittedAt
}
