// Package admission decides whether a user may join a hackathon and applies the
// registration, approval and withdrawal rules to the participant lists.
package admission

import (
	"slices"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/lifecycle"
	"github.com/Dosada05/hackathon-platform/models"
)

// Outcome of a successful registration request.
type Outcome string

const (
	Registered      Outcome = "registered"
	PendingApproval Outcome = "pending_approval"
)

// CanRegister checks, in order: deadline, start, capacity, status.
// The first failing check wins.
func CanRegister(h *models.Hackathon, now time.Time) error {
	if !h.RegistrationDeadline.IsZero() && now.After(h.RegistrationDeadline) {
		return apperrors.ErrDeadlinePassed
	}
	if h.RegistrationStart != nil && now.Before(*h.RegistrationStart) {
		return apperrors.ErrNotYetOpen
	}
	if IsFull(h) {
		return apperrors.ErrCapacityReached
	}
	if !lifecycle.AllowsRegistration(h) {
		return apperrors.ErrRegistrationClosed
	}
	return nil
}

// Register admits userID directly or queues it for approval. h is untouched on failure.
func Register(h *models.Hackathon, userID string, now time.Time) (Outcome, error) {
	if err := CanRegister(h, now); err != nil {
		return "", err
	}
	if h.IsRegistered(userID) {
		return "", apperrors.ErrAlreadyRegistered
	}

	if h.RequireApproval {
		if h.IsPending(userID) {
			return "", apperrors.ErrApprovalAlreadyPending
		}
		h.PendingParticipants = append(h.PendingParticipants, userID)
		h.UpdatedAt = now
		return PendingApproval, nil
	}

	// approval может быть выключен после подачи заявки
	h.PendingParticipants = remove(h.PendingParticipants, userID)
	h.Participants = append(h.Participants, userID)
	h.UpdatedAt = now
	return Registered, nil
}

// IsFull reports whether max_participants is set and reached. Pending users
// don't hold a seat.
func IsFull(h *models.Hackathon) bool {
	return h.MaxParticipants > 0 && len(h.Participants) >= h.MaxParticipants
}

// Approve moves userID from pending to participants. It reports false if the user
// was not pending.
func Approve(h *models.Hackathon, userID string) bool {
	if !h.IsPending(userID) {
		return false
	}
	h.PendingParticipants = remove(h.PendingParticipants, userID)
	if !h.IsRegistered(userID) {
		h.Participants = append(h.Participants, userID)
	}
	return true
}

// Reject drops a pending application.
func Reject(h *models.Hackathon, userID string) bool {
	if !h.IsPending(userID) {
		return false
	}
	h.PendingParticipants = remove(h.PendingParticipants, userID)
	return true
}

// Unregister removes userID from participants only.
func Unregister(h *models.Hackathon, userID string) bool {
	if !h.IsRegistered(userID) {
		return false
	}
	h.Participants = remove(h.Participants, userID)
	return true
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
