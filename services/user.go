package services

import (
	"context"
	"fmt"

	"gofish/models"

	"github.com/google/uuid"
)

// UserService owns player profiles and progression
type UserService struct {
	repo  UserRepository
	clock Clock
}

// NewUserService creates a UserService backed by repo
func NewUserService(repo UserRepository, clock Clock) *UserService {
	if clock == nil {
		clock = RealClock{}
	}
	return &UserService{repo: repo, clock: clock}
}

// CreateOrGet returns the profile registered for deviceID, creating it on
// first sight. The username is only used on creation.
func (s *UserService) CreateOrGet(ctx context.Context, deviceID, username string) (models.User, error) {
	candidate := models.NewUser(uuid.NewString(), deviceID, username, s.clock.Now())
	user, err := s.repo.CreateOrGet(ctx, candidate)
	if err != nil {
		return models.User{}, fmt.Errorf("create or get user %q: %w", deviceID, err)
	}
	user.Normalize()
	return user, nil
}

// GetByDeviceID fetches a profile by its device id
func (s *UserService) GetByDeviceID(ctx context.Context, deviceID string) (models.User, error) {
	user, err := s.repo.FindByDeviceID(ctx, deviceID)
	if err != nil {
		return models.User{}, err
	}
	user.Normalize()
	return user, nil
}

// UnlockLure adds lureID to the user's lures and returns the full set.
// Unlocking a lure twice is a no-op.
func (s *UserService) UnlockLure(ctx context.Context, userID string, lureID int) ([]int, error) {
	lures, err := s.repo.AddLure(ctx, userID, lureID)
	if err != nil {
		return nil, err
	}
	if lures == nil {
		lures = []int{}
	}
	return lures, nil
}

// UnlockAchievement adds achievementID to the user's achievements and
// returns the full set.
func (s *UserService) UnlockAchievement(ctx context.Context, userID, achievementID string) ([]string, error) {
	achievements, err := s.repo.AddAchievement(ctx, userID, achievementID)
	if err != nil {
		return nil, err
	}
	if achievements == nil {
		achievements = []string{}
	}
	return achievements, nil
}

// SetHighScore overwrites the stored high score without comparing it to the
// current value. Score submission goes through ScoreService instead.
func (s *UserService) SetHighScore(ctx context.Context, userID string, score int) error {
	return s.repo.SetHighScore(ctx, userID, score)
}

func (s *UserService) IncrementCatches(ctx context.Context, userID string, count int) error {
	return s.repo.IncrementCatches(ctx, userID, count)
}

func (s *UserService) SetLevel(ctx context.Context, userID string, level int) error {
	return s.repo.SetLevel(ctx, userID, level)
}

// Prestige resets the user's level to 1 and returns the new prestige count.
func (s *UserService) Prestige(ctx context.Context, userID string) (int, error) {
	return s.repo.Prestige(ctx, userID)
}

// CompleteDailyChallenge marks today's (UTC) challenge as done. Nothing
// clears the flag when the date rolls over.
func (s *UserService) CompleteDailyChallenge(ctx context.Context, userID string) error {
	return s.repo.CompleteDailyChallenge(ctx, userID, s.clock.Now().UTC().Format(DateLayout))
}
