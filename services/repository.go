package services

import (
	"context"
	"time"

	"gofish/models"
)

// UserRepository persists player profiles. Every mutation is a single
// document operation in the backing store.
type UserRepository interface {
	// CreateOrGet inserts u unless a user with u.DeviceID exists, and returns
	// the stored record either way.
	CreateOrGet(ctx context.Context, u models.User) (models.User, error)
	FindByDeviceID(ctx context.Context, deviceID string) (models.User, error)
	AddLure(ctx context.Context, userID string, lureID int) ([]int, error)
	AddAchievement(ctx context.Context, userID, achievementID string) ([]string, error)
	SetHighScore(ctx context.Context, userID string, score int) error
	// RaiseHighScore stores score only if it beats the current high score.
	RaiseHighScore(ctx context.Context, userID string, score int) (bool, error)
	IncrementCatches(ctx context.Context, userID string, count int) error
	SetLevel(ctx context.Context, userID string, level int) error
	// Prestige increments the prestige counter, resets level to 1 and returns
	// the new counter.
	Prestige(ctx context.Context, userID string) (int, error)
	CompleteDailyChallenge(ctx context.Context, userID, date string) error
}

// ScoreRepository is the append-only score ledger
type ScoreRepository interface {
	Insert(ctx context.Context, s models.Score) error
	Top(ctx context.Context, limit int) ([]models.Score, error)
}

// WeatherRepository holds at most one cached reading
type WeatherRepository interface {
	// Current returns nil when the slot is empty.
	Current(ctx context.Context) (*models.CachedWeather, error)
	Replace(ctx context.Context, w models.CachedWeather) error
}

// TackleboxRepository is the append-only catch log
type TackleboxRepository interface {
	Insert(ctx context.Context, f models.Fish) error
	Recent(ctx context.Context, userID string, limit int) ([]models.Fish, error)
}

// Clock abstracts the current time so TTL and date logic can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }
