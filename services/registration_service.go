package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/hackathon-platform/admission"
	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
)

// Registration states reported to the user.
const (
	RegistrationNone       = "none"
	RegistrationPending    = "pending"
	RegistrationRegistered = "registered"
)

type RegistrationStatus struct {
	HackathonID string `json:"hackathon_id"`
	Status      string `json:"status"`
	TeamID      string `json:"team_id,omitempty"`
	CanRegister bool   `json:"can_register"`
	Reason      string `json:"reason,omitempty"`
}

type RegistrationService interface {
	Register(ctx context.Context, hackathonID, userID string) (admission.Outcome, error)
	Unregister(ctx context.Context, hackathonID, userID string) error
	Approve(ctx context.Context, hackathonID, actorID, userID string) error
	Reject(ctx context.Context, hackathonID, actorID, userID string) error
	Status(ctx context.Context, hackathonID, userID string) (*RegistrationStatus, error)
}

type registrationService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	userRepo      repositories.UserRepository
	events        EventPublisher
	organizers    organizerChecker
	logger        *slog.Logger
	now           func() time.Time
}

func NewRegistrationService(
	hackathonRepo repositories.HackathonRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	orgRepo repositories.OrganizationRepository,
	events EventPublisher,
	logger *slog.Logger,
) RegistrationService {
	if events == nil {
		events = noopPublisher{}
	}
	return &registrationService{
		hackathonRepo: hackathonRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		events:        events,
		organizers:    organizerChecker{orgRepo: orgRepo, logger: logger},
		logger:        logger,
		now:           systemClock,
	}
}

func (s *registrationService) Register(ctx context.Context, hackathonID, userID string) (admission.Outcome, error) {
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return "", err
	}

	var outcome admission.Outcome
	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if h.Status == models.HackathonDraft {
			return apperrors.ErrHackathonNotFound
		}
		var err error
		outcome, err = admission.Register(h, userID, s.now())
		if err != nil {
			return err
		}
		h.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "user registered for hackathon",
		slog.String("hackathon_id", h.ID), slog.String("user_id", userID), slog.String("outcome", string(outcome)))
	s.publishParticipants(h)
	return outcome, nil
}

// Unregister withdraws a registration or a pending application. Team members must
// leave their team first.
func (s *registrationService) Unregister(ctx context.Context, hackathonID, userID string) error {
	team, err := s.teamRepo.FindByMember(ctx, hackathonID, userID)
	if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("failed to look up team membership: %w", err)
	}
	if team != nil {
		return apperrors.ErrAlreadyInTeam.WithMessage("leave your team before unregistering")
	}

	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if admission.Unregister(h, userID) || admission.Reject(h, userID) {
			h.UpdatedAt = s.now()
			return nil
		}
		return apperrors.ErrNotRegistered
	})
	if err != nil {
		return err
	}
	s.publishParticipants(h)
	return nil
}

func (s *registrationService) Approve(ctx context.Context, hackathonID, actorID, userID string) error {
	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
			return err
		}
		if !h.IsPending(userID) {
			return apperrors.ErrNotPending
		}
		// заявка остается в очереди, пока не освободится место
		if admission.IsFull(h) {
			return apperrors.ErrCapacityReached
		}
		admission.Approve(h, userID)
		h.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "registration approved", slog.String("hackathon_id", h.ID), slog.String("user_id", userID))
	s.publishParticipants(h)
	return nil
}

func (s *registrationService) Reject(ctx context.Context, hackathonID, actorID, userID string) error {
	h, err := mutateHackathon(ctx, s.hackathonRepo, hackathonID, func(h *models.Hackathon) error {
		if err := s.organizers.requireOrganizer(ctx, h, actorID); err != nil {
			return err
		}
		if !admission.Reject(h, userID) {
			return apperrors.ErrNotPending
		}
		h.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}
	s.publishParticipants(h)
	return nil
}

func (s *registrationService) Status(ctx context.Context, hackathonID, userID string) (*RegistrationStatus, error) {
	h, err := loadHackathon(ctx, s.hackathonRepo, hackathonID)
	if err != nil {
		return nil, err
	}

	status := &RegistrationStatus{HackathonID: h.ID, Status: RegistrationNone}
	switch {
	case h.IsRegistered(userID):
		status.Status = RegistrationRegistered
		team, err := s.teamRepo.FindByMember(ctx, hackathonID, userID)
		if err != nil && !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("failed to look up team membership: %w", err)
		}
		if team != nil {
			status.TeamID = team.ID
		}
	case h.IsPending(userID):
		status.Status = RegistrationPending
	default:
		if err := admission.CanRegister(h, s.now()); err != nil {
			status.Reason = string(apperrors.ReasonOf(err))
		} else {
			status.CanRegister = true
		}
	}
	return status, nil
}

func (s *registrationService) publishParticipants(h *models.Hackathon) {
	s.events.Publish(h.ID, realtime.Event{
		Type: realtime.EventParticipantsUpdate,
		Payload: map[string]any{
			"hackathon_id":       h.ID,
			"registration_count": h.RegistrationCount(),
			"pending_count":      len(h.PendingParticipants),
		},
	})
}
