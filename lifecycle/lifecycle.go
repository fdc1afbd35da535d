// Package lifecycle holds the hackathon status machine and the gates it places
// on registration, team formation, submission and judging.
package lifecycle

import (
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

var transitions = map[models.HackathonStatus][]models.HackathonStatus{
	models.HackathonDraft:              {models.HackathonPublished, models.HackathonCancelled},
	models.HackathonPublished:          {models.HackathonRegistrationOpen, models.HackathonCancelled},
	models.HackathonRegistrationOpen:   {models.HackathonRegistrationClosed, models.HackathonCancelled},
	models.HackathonRegistrationClosed: {models.HackathonRegistrationOpen, models.HackathonOngoing, models.HackathonCancelled},
	models.HackathonOngoing:            {models.HackathonJudging, models.HackathonCancelled},
	models.HackathonJudging:            {models.HackathonCompleted},
	models.HackathonCompleted:          {},
	models.HackathonCancelled:          {},
}

// CanTransition reports whether current -> next is allowed. Same status is a no-op and allowed.
func CanTransition(current, next models.HackathonStatus) bool {
	if current == next {
		return true
	}
	for _, s := range transitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Transition moves h to next. It returns false without error when h is already in next.
func Transition(h *models.Hackathon, next models.HackathonStatus, now time.Time) (bool, error) {
	if !next.Valid() {
		return false, apperrors.ErrInvalidStatus
	}
	if h.Status == next {
		return false, nil
	}
	if !CanTransition(h.Status, next) {
		return false, apperrors.ErrInvalidStatusTransition.WithMessage(
			"cannot change hackathon status from " + string(h.Status) + " to " + string(next))
	}
	if next == models.HackathonPublished || next == models.HackathonRegistrationOpen {
		markPublished(h, now)
	}
	h.Status = next
	h.UpdatedAt = now
	return true, nil
}

// Publish makes a draft hackathon visible and opens registration in one step.
func Publish(h *models.Hackathon, now time.Time) error {
	switch h.Status {
	case models.HackathonDraft, models.HackathonPublished:
	default:
		return apperrors.ErrInvalidStatusTransition.WithMessage("only draft hackathons can be published")
	}
	markPublished(h, now)
	h.Status = models.HackathonRegistrationOpen
	h.UpdatedAt = now
	return nil
}

func markPublished(h *models.Hackathon, now time.Time) {
	if h.IsPublished {
		return
	}
	h.IsPublished = true
	t := now
	h.PublishedAt = &t
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s models.HackathonStatus) bool {
	return s == models.HackathonCompleted || s == models.HackathonCancelled
}

func AllowsRegistration(h *models.Hackathon) bool {
	return h.Status == models.HackathonPublished || h.Status == models.HackathonRegistrationOpen
}

// AllowsTeamFormation gates team creation and roster changes.
func AllowsTeamFormation(h *models.Hackathon) bool {
	if !h.AllowTeamFormation {
		return false
	}
	switch h.Status {
	case models.HackathonPublished, models.HackathonRegistrationOpen,
		models.HackathonRegistrationClosed, models.HackathonOngoing:
		return true
	}
	return false
}

// AllowsSubmission gates draft edits and finalization.
func AllowsSubmission(h *models.Hackathon, now time.Time) bool {
	switch h.Status {
	case models.HackathonRegistrationOpen, models.HackathonRegistrationClosed, models.HackathonOngoing:
	default:
		return false
	}
	if h.SubmissionDeadline != nil && now.After(*h.SubmissionDeadline) {
		return false
	}
	return true
}

func AllowsJudging(h *models.Hackathon) bool {
	return h.Status == models.HackathonJudging
}

// Display labels shown to clients.
const (
	DisplayUpcoming  = "Upcoming"
	DisplayOngoing   = "Ongoing"
	DisplayEnded     = "Ended"
	DisplayCompleted = "Completed"
	DisplayCancelled = "Cancelled"
)

// DisplayStatus derives a calendar label from the dates, overridden by terminal statuses.
func DisplayStatus(h *models.Hackathon, now time.Time) string {
	switch h.Status {
	case models.HackathonCancelled:
		return DisplayCancelled
	case models.HackathonCompleted:
		return DisplayCompleted
	}
	switch {
	case now.Before(h.StartDate):
		return DisplayUpcoming
	case !now.After(h.EndDate):
		return DisplayOngoing
	default:
		return DisplayEnded
	}
}
