package services

import (
	"context"
	"fmt"
	"log"

	"gofish/models"

	"github.com/google/uuid"
)

// DefaultLeaderboardLimit is used when the caller does not ask for a size
const DefaultLeaderboardLimit = 100

// ScoreService records scores and serves the global leaderboard
type ScoreService struct {
	scores ScoreRepository
	users  UserRepository
	clock  Clock
}

// NewScoreService creates a ScoreService. users is used to keep the
// denormalized high score on the profile in sync.
func NewScoreService(scores ScoreRepository, users UserRepository, clock Clock) *ScoreService {
	if clock == nil {
		clock = RealClock{}
	}
	return &ScoreService{scores: scores, users: users, clock: clock}
}

// Submit stores the score and then raises the user's high score if the new
// score beats it. The two writes are independent: a failure to raise the
// high score does not undo the ledger entry.
func (s *ScoreService) Submit(ctx context.Context, in models.ScoreInput) (models.Score, error) {
	score := models.Score{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Username:  in.Username,
		Score:     in.Score,
		Level:     in.Level,
		Catches:   in.Catches,
		Stage:     in.Stage,
		Timestamp: s.clock.Now().UTC(),
	}
	if err := s.scores.Insert(ctx, score); err != nil {
		return models.Score{}, fmt.Errorf("insert score: %w", err)
	}

	raised, err := s.users.RaiseHighScore(ctx, in.UserID, in.Score)
	if err != nil {
		return models.Score{}, fmt.Errorf("sync high score for %s: %w", in.UserID, err)
	}
	if raised {
		log.Printf("New high score %d for user %s", in.Score, in.UserID)
	}
	return score, nil
}

// Leaderboard returns at most limit entries, best score first.
func (s *ScoreService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	if limit <= 0 {
		return entries, nil
	}
	scores, err := s.scores.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	for _, sc := range scores {
		if len(entries) == limit {
			break
		}
		entries = append(entries, sc.Entry())
	}
	return entries, nil
}
