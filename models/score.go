package models

import "time"

// Score is an immutable leaderboard submission. Username is the snapshot the
// client sent, not a live read of the profile.
type Score struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Username  string    `bson:"username" json:"username"`
	Score     int       `bson:"score" json:"score"`
	Level     int       `bson:"level" json:"level"`
	Catches   int       `bson:"catches" json:"catches"`
	Stage     int       `bson:"stage" json:"stage"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ScoreInput is the body of POST /score
type ScoreInput struct {
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Level    int    `json:"level"`
	Catches  int    `json:"catches"`
	Stage    int    `json:"stage"`
}

// LeaderboardEntry is the public projection of a Score
type LeaderboardEntry struct {
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Catches   int       `json:"catches"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry projects a score onto its leaderboard row.
func (s Score) Entry() LeaderboardEntry {
	return LeaderboardEntry{
		Username:  s.Username,
		Score:     s.Score,
		Level:     s.Level,
		Catches:   s.Catches,
		Timestamp: s.Timestamp,
	}
}
