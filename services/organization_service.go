package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/utils"
)

type OrganizationService interface {
	Create(ctx context.Context, ownerID string, input CreateOrganizationInput) (*models.Organization, error)
	Get(ctx context.Context, orgID string) (*models.Organization, error)
	AddAdmin(ctx context.Context, orgID, actorID, userID string) (*models.Organization, error)
}

type CreateOrganizationInput struct {
	Name string `json:"name"`
}

type organizationService struct {
	orgRepo  repositories.OrganizationRepository
	userRepo repositories.UserRepository
	now      func() time.Time
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository, userRepo repositories.UserRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo, userRepo: userRepo, now: systemClock}
}

func (s *organizationService) Create(ctx context.Context, ownerID string, input CreateOrganizationInput) (*models.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.ErrValidationFailed.WithMessage("organization name is required")
	}

	slug, err := s.orgRepo.UniqueSlug(ctx, utils.Slugify(name, "org"))
	if err != nil {
		return nil, fmt.Errorf("failed to reserve organization slug: %w", err)
	}

	org := &models.Organization{
		ID:        utils.NewID(),
		Name:      name,
		Slug:      slug,
		OwnerID:   ownerID,
		Admins:    []string{ownerID},
		Members:   []string{ownerID},
		CreatedAt: s.now(),
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		if errors.Is(err, repositories.ErrOrganizationSlugConflict) {
			return nil, apperrors.ErrConcurrentUpdate.WithMessage("organization slug was taken, retry the request")
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Get(ctx context.Context, orgID string) (*models.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization %s: %w", orgID, err)
	}
	return org, nil
}

// AddAdmin: only the owner or an existing admin can promote someone.
func (s *organizationService) AddAdmin(ctx context.Context, orgID, actorID, userID string) (*models.Organization, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.IsAdmin(actorID) {
		return nil, apperrors.ErrForbidden
	}
	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	changed := org.AddAdmin(userID)
	if !slices.Contains(org.Members, userID) {
		org.Members = append(org.Members, userID)
		changed = true
	}
	if !changed {
		return org, nil
	}
	if err := s.orgRepo.UpdateMembers(ctx, org); err != nil {
		if errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to update organization %s: %w", orgID, err)
	}
	return org, nil
}
