package services

import (
	"context"
	"fmt"

	"gofish/models"

	"github.com/google/uuid"
)

// DefaultTackleboxLimit caps how many catches a single read returns
const DefaultTackleboxLimit = 1000

// TackleboxService stores each player's catch history
type TackleboxService struct {
	repo  TackleboxRepository
	clock Clock
}

// NewTackleboxService creates a TackleboxService backed by repo
func NewTackleboxService(repo TackleboxRepository, clock Clock) *TackleboxService {
	if clock == nil {
		clock = RealClock{}
	}
	return &TackleboxService{repo: repo, clock: clock}
}

// AddFish appends a catch and returns its id
func (s *TackleboxService) AddFish(ctx context.Context, userID string, in models.FishInput) (models.Fish, error) {
	fish := models.Fish{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     in.Name,
		Size:     in.Size,
		Points:   in.Points,
		Color:    in.Color,
		CaughtAt: s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, fish); err != nil {
		return models.Fish{}, fmt.Errorf("add fish for %s: %w", userID, err)
	}
	return fish, nil
}

// Get returns up to limit of the user's newest catches, newest first.
func (s *TackleboxService) Get(ctx context.Context, userID string, limit int) (models.Tacklebox, error) {
	box := models.Tacklebox{Fish: []models.Fish{}}
	if limit <= 0 {
		return box, nil
	}
	fish, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return models.Tacklebox{}, fmt.Errorf("fetch tacklebox for %s: %w", userID, err)
	}
	if len(fish) > limit {
		fish = fish[:limit]
	}
	box.Fish = append(box.Fish, fish...)
	box.Count = len(box.Fish)
	return box, nil
}
