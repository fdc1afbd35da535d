package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/hackathon-platform/apperrors"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/repositories"
)

// XP rewards.
const (
	XPProjectSubmitted = 50
	XPAward            = 100
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error)
	AwardXP(ctx context.Context, userIDs []string, amount int)
}

type UpdateProfileInput struct {
	Username  *string  `json:"username,omitempty"`
	FullName  *string  `json:"full_name,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	user.Level = models.LevelForXP(user.XP)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := loadUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		user.Username = username
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	user.PasswordHash = ""
	user.Level = models.LevelForXP(user.XP)
	return user, nil
}

// AwardXP is best-effort: the action that earned the XP has already been saved,
// so failures are only logged.
func (s *userService) AwardXP(ctx context.Context, userIDs []string, amount int) {
	for _, id := range userIDs {
		xp, err := s.userRepo.AddXP(ctx, id, amount)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to award xp",
				slog.String("user_id", id), slog.Int("amount", amount), slog.Any("error", err))
			continue
		}
		s.logger.DebugContext(ctx, "xp awarded",
			slog.String("user_id", id), slog.Int("xp", xp), slog.Int("level", models.LevelForXP(xp)))
	}
}
