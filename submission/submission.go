// Package submission tracks a team's project from editable draft to the
// finalized, judgeable artifact.
package submission

import (
	"strings"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

// Patch lists the draft fields to change. Nil fields are left as they are.
type Patch struct {
	ProjectName      *string             `json:"project_name,omitempty"`
	Tagline          *string             `json:"tagline,omitempty"`
	Description      *string             `json:"description,omitempty"`
	ProblemStatement *string             `json:"problem_statement,omitempty"`
	Solution         *string             `json:"solution,omitempty"`
	Technologies     []string            `json:"technologies,omitempty"`
	Track            *string             `json:"track,omitempty"`
	GithubURL        *string             `json:"github_url,omitempty"`
	DemoURL          *string             `json:"demo_url,omitempty"`
	VideoURL         *string             `json:"video_url,omitempty"`
	PresentationURL  *string             `json:"presentation_url,omitempty"`
	Images           []string            `json:"images,omitempty"`
	Files            []map[string]string `json:"files,omitempty"`
}

// Update merges p into the team's draft, creating it on first use.
// A finalized submission is immutable.
func Update(t *models.Team, p Patch, now time.Time) (*models.ProjectSubmission, error) {
	if t.IsSubmitted() {
		return nil, apperrors.ErrSubmissionLocked
	}
	if t.Submission == nil {
		t.Submission = &models.ProjectSubmission{
			Technologies: []string{},
			Images:       []string{},
			Files:        []map[string]string{},
		}
	}
	s := t.Submission

	setString(&s.ProjectName, p.ProjectName)
	setString(&s.Tagline, p.Tagline)
	setString(&s.Description, p.Description)
	setString(&s.ProblemStatement, p.ProblemStatement)
	setString(&s.Solution, p.Solution)
	setString(&s.Track, p.Track)
	setString(&s.GithubURL, p.GithubURL)
	setString(&s.DemoURL, p.DemoURL)
	setString(&s.VideoURL, p.VideoURL)
	setString(&s.PresentationURL, p.PresentationURL)
	if p.Technologies != nil {
		s.Technologies = p.Technologies
	}
	if p.Images != nil {
		s.Images = p.Images
	}
	if p.Files != nil {
		s.Files = p.Files
	}

	s.LastUpdated = now
	t.LastActivity = now
	t.UpdatedAt = now
	return s, nil
}

// AddImage appends an uploaded media URL to the draft.
func AddImage(t *models.Team, url string, now time.Time) (*models.ProjectSubmission, error) {
	if t.IsSubmitted() {
		return nil, apperrors.ErrSubmissionLocked
	}
	var images []string
	if t.Submission != nil {
		images = append(images, t.Submission.Images...)
	}
	return Update(t, Patch{Images: append(images, url)}, now)
}

// Finalize locks the submission and marks the team submitted. A second call fails
// with ErrAlreadySubmitted and leaves submitted_at untouched.
func Finalize(t *models.Team, now time.Time) error {
	s := t.Submission
	if s == nil {
		return apperrors.ErrNoSubmission
	}
	if s.IsSubmitted {
		return apperrors.ErrAlreadySubmitted
	}
	if strings.TrimSpace(s.ProjectName) == "" {
		return apperrors.ErrMissingProjectName
	}
	if strings.TrimSpace(s.Description) == "" {
		return apperrors.ErrMissingDescription
	}

	s.IsSubmitted = true
	submittedAt := now
	s.SubmittedAt = &submittedAt
	s.LastUpdated = now
	t.Status = models.TeamSubmitted
	t.LastActivity = now
	t.UpdatedAt = now
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
