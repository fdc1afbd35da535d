package roster

import (
	"strings"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
)

// InvitationTTL is how long a pending invitation can be accepted.
const InvitationTTL = 7 * 24 * time.Hour

// InvitationRequest describes an invitation being sent. ID and Token are
// allocated by the caller.
type InvitationRequest struct {
	ID           string
	Token        string
	InviterID    string
	InviteeEmail string
	InviteeID    string
	Message      string
}

// SendInvitation records a pending invitation. Team capacity is not checked here:
// a team may over-invite, acceptance is what is capacity-gated.
func SendInvitation(t *models.Team, req InvitationRequest, now time.Time) (*models.TeamInvitation, error) {
	if err := ensureOpen(t); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.InviteeEmail))
	if email == "" {
		return nil, apperrors.ErrInvalidInvitee
	}
	for i := range t.Invitations {
		inv := &t.Invitations[i]
		if inv.Status == models.InvitationPending && strings.EqualFold(inv.InviteeEmail, email) {
			return nil, apperrors.ErrDuplicatePending
		}
	}
	if req.InviteeID != "" && t.IsMember(req.InviteeID) {
		return nil, apperrors.ErrAlreadyMember
	}

	t.Invitations = append(t.Invitations, models.TeamInvitation{
		ID:           req.ID,
		InviterID:    req.InviterID,
		InviteeEmail: email,
		InviteeID:    req.InviteeID,
		Message:      req.Message,
		Token:        req.Token,
		Status:       models.InvitationPending,
		InvitedAt:    now,
		ExpiresAt:    now.Add(InvitationTTL),
	})
	touch(t, now)
	return &t.Invitations[len(t.Invitations)-1], nil
}

// AcceptInvitation joins userID to the team through its pending invitation. An
// expired invitation is marked expired and ErrInvitationExpired is returned: the
// team has changed and must still be saved. If the roster rejects the user the
// invitation stays pending.
func AcceptInvitation(t *models.Team, userID, email string, now time.Time) error {
	inv := findPending(t, userID, email)
	if inv == nil {
		return apperrors.ErrNoPendingInvitation
	}
	return accept(t, inv, userID, now)
}

// AcceptInvitationByToken is AcceptInvitation for an emailed link: the token
// identifies the invitation and binds it to userID.
func AcceptInvitationByToken(t *models.Team, token, userID string, now time.Time) error {
	inv := findPendingByToken(t, token, userID)
	if inv == nil {
		return apperrors.ErrNoPendingInvitation
	}
	return accept(t, inv, userID, now)
}

// CheckInvitation reports what AcceptInvitation would say about the invitation
// itself (missing or expired) without changing t.
func CheckInvitation(t *models.Team, userID, email string, now time.Time) error {
	return checkPending(findPending(t, userID, email), now)
}

// CheckInvitationByToken is CheckInvitation for AcceptInvitationByToken.
func CheckInvitationByToken(t *models.Team, token, userID string, now time.Time) error {
	return checkPending(findPendingByToken(t, token, userID), now)
}

func checkPending(inv *models.TeamInvitation, now time.Time) error {
	if inv == nil {
		return apperrors.ErrNoPendingInvitation
	}
	if isExpired(inv, now) {
		return apperrors.ErrInvitationExpired
	}
	return nil
}

func accept(t *models.Team, inv *models.TeamInvitation, userID string, now time.Time) error {
	if expire(inv, now) {
		touch(t, now)
		return apperrors.ErrInvitationExpired
	}
	if err := AddMember(t, userID, models.RoleMember, "", now); err != nil {
		return err
	}
	inv.InviteeID = userID
	inv.Status = models.InvitationAccepted
	responded := now
	inv.RespondedAt = &responded
	return nil
}

// DeclineInvitation marks the caller's pending invitation declined, unless it has
// already expired.
func DeclineInvitation(t *models.Team, userID, email string, now time.Time) error {
	inv := findPending(t, userID, email)
	if inv == nil {
		return apperrors.ErrNoPendingInvitation
	}
	if expire(inv, now) {
		touch(t, now)
		return apperrors.ErrInvitationExpired
	}
	inv.Status = models.InvitationDeclined
	responded := now
	inv.RespondedAt = &responded
	touch(t, now)
	return nil
}

// ExpireStale marks every pending invitation past its deadline as expired and
// returns how many changed.
func ExpireStale(t *models.Team, now time.Time) int {
	n := 0
	for i := range t.Invitations {
		if t.Invitations[i].Status == models.InvitationPending && expire(&t.Invitations[i], now) {
			n++
		}
	}
	return n
}

// PendingInvitations lists invitations still awaiting an answer.
func PendingInvitations(t *models.Team) []models.TeamInvitation {
	var out []models.TeamInvitation
	for _, inv := range t.Invitations {
		if inv.Status == models.InvitationPending {
			out = append(out, inv)
		}
	}
	return out
}

func findPending(t *models.Team, userID, email string) *models.TeamInvitation {
	for i := range t.Invitations {
		inv := &t.Invitations[i]
		if inv.Status == models.InvitationPending && inv.Matches(userID, email) {
			return inv
		}
	}
	return nil
}

func findPendingByToken(t *models.Team, token, userID string) *models.TeamInvitation {
	inv := t.InvitationByToken(token)
	if inv == nil || inv.Status != models.InvitationPending {
		return nil
	}
	if inv.InviteeID != "" && inv.InviteeID != userID {
		return nil
	}
	return inv
}

func isExpired(inv *models.TeamInvitation, now time.Time) bool {
	return !inv.ExpiresAt.IsZero() && now.After(inv.ExpiresAt)
}

func expire(inv *models.TeamInvitation, now time.Time) bool {
	if !isExpired(inv, now) {
		return false
	}
	inv.Status = models.InvitationExpired
	return true
}
