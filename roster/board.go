package roster

import (
	"slices"
	"strings"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

type NoteInput struct {
	ID       string
	AuthorID string
	Content  string
	Type     models.NoteType
	Tags     []string
	IsPinned bool
}

// AddNote pins a note to the team board. Only members may write.
func AddNote(t *models.Team, in NoteInput, now time.Time) (*models.TeamNote, error) {
	if !t.IsMember(in.AuthorID) {
		return nil, apperrors.ErrNotAMember
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperrors.ErrNoteContentRequired
	}
	noteType := in.Type
	switch noteType {
	case models.NoteGeneral, models.NoteTodo, models.NoteIdea, models.NoteBug, models.NoteDecision:
	case "":
		noteType = models.NoteGeneral
	default:
		return nil, apperrors.ErrValidationFailed.WithMessage("unknown note type " + string(noteType))
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	t.Notes = append(t.Notes, models.TeamNote{
		ID:        in.ID,
		AuthorID:  in.AuthorID,
		Content:   content,
		Type:      noteType,
		IsPinned:  in.IsPinned,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	})
	touch(t, now)
	return &t.Notes[len(t.Notes)-1], nil
}

// Disqualify flags the team. It is independent of status.
func Disqualify(t *models.Team, reason string, now time.Time) error {
	if t.IsDisqualified {
		return apperrors.ErrTeamDisqualified
	}
	t.IsDisqualified = true
	t.DisqualificationReason = strings.TrimSpace(reason)
	t.UpdatedAt = now
	return nil
}

// AwardPrize adds an award once; false if the team already holds it.
func AwardPrize(t *models.Team, award string, now time.Time) (bool, error) {
	award = strings.TrimSpace(award)
	if award == "" {
		return false, apperrors.ErrValidationFailed.WithMessage("award name is required")
	}
	if t.IsDisqualified {
		return false, apperrors.ErrTeamDisqualified
	}
	if slices.Contains(t.Awards, award) {
		return false, nil
	}
	t.Awards = append(t.Awards, award)
	t.UpdatedAt = now
	return true, nil
}

// Withdraw pulls the team out of the hackathon. Pending invitations are expired
// so nobody can join a withdrawn team.
func Withdraw(t *models.Team, now time.Time) error {
	switch t.Status {
	case models.TeamWithdrawn:
		return apperrors.ErrTeamWithdrawn
	case models.TeamCompleted:
		return apperrors.ErrInvalidStatusTransition.WithMessage("completed teams cannot withdraw")
	}
	for i := range t.Invitations {
		if t.Invitations[i].Status == models.InvitationPending {
			t.Invitations[i].Status = models.InvitationExpired
		}
	}
	t.Status = models.TeamWithdrawn
	t.IsRecruiting = false
	touch(t, now)
	return nil
}
