package models

import (
	"errors"
	"time"
)

// DefaultUsername is assigned when a client creates a profile without one.
const DefaultUsername = "Angler"

// DefaultLure is unlocked for every player from the start.
const DefaultLure = 0

// ErrUserNotFound is returned when a user lookup by id or device id fails.
var ErrUserNotFound = errors.New("user not found")

// User defines a player profile and its progression
type User struct {
	ID                      string    `bson:"id" json:"id"`
	DeviceID                string    `bson:"device_id" json:"device_id"`
	Username                string    `bson:"username" json:"username"`
	UnlockedLures           []int     `bson:"unlocked_lures" json:"unlocked_lures"`
	HighScore               int       `bson:"high_score" json:"high_score"`
	TotalCatches            int       `bson:"total_catches" json:"total_catches"`
	Level                   int       `bson:"level" json:"level"`
	Prestige                int       `bson:"prestige" json:"prestige"`
	Achievements            []string  `bson:"achievements" json:"achievements"`
	DailyChallengeCompleted bool      `bson:"daily_challenge_completed" json:"daily_challenge_completed"`
	DailyChallengeDate      *string   `bson:"daily_challenge_date" json:"daily_challenge_date"`
	CreatedAt               time.Time `bson:"created_at" json:"created_at"`
}

// NewUser builds a profile with the documented starting progression.
func NewUser(id, deviceID, username string, now time.Time) User {
	if username == "" {
		username = DefaultUsername
	}
	return User{
		ID:            id,
		DeviceID:      deviceID,
		Username:      username,
		UnlockedLures: []int{DefaultLure},
		Level:         1,
		Achievements:  []string{},
		CreatedAt:     now.UTC(),
	}
}

// Normalize replaces nil sets so they encode as empty JSON arrays.
func (u *User) Normalize() {
	if u.UnlockedLures == nil {
		u.UnlockedLures = []int{DefaultLure}
	}
	if u.Achievements == nil {
		u.Achievements = []string{}
	}
}

// CreateUserRequest is the body of POST /user
type CreateUserRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Username string `json:"username"`
}

// UnlockLureRequest is the body of POST /user/:id/unlock-lure. UserID mirrors
// the path parameter and is ignored.
type UnlockLureRequest struct {
	UserID string `json:"user_id"`
	LureID *int   `json:"lure_id" binding:"required"`
}

// UnlockAchievementRequest is the body of POST /user/:id/unlock-achievement
type UnlockAchievementRequest struct {
	AchievementID string `json:"achievement_id" binding:"required"`
}
