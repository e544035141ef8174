package models

import "time"

// Game event types broadcast to websocket subscribers
const (
	EventLureUnlocked        = "lure_unlocked"
	EventAchievementUnlocked = "achievement_unlocked"
	EventPrestige            = "prestige"
	EventDailyCompleted      = "daily_completed"
	EventScoreSubmitted      = "score_submitted"
	EventFishCaught          = "fish_caught"
)

// GameEvent represents a progression event to broadcast via WebSocket
type GameEvent struct {
	Type          string    `json:"type"`
	UserID        string    `json:"userId"`
	Username      string    `json:"username,omitempty"`
	LureID        *int      `json:"lureId,omitempty"`
	AchievementID string    `json:"achievementId,omitempty"`
	Prestige      int       `json:"prestige,omitempty"`
	Score         int       `json:"score,omitempty"`
	FishName      string    `json:"fishName,omitempty"`
	Points        int       `json:"points,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
