package models

// Achievement is a catalog row. Unlocks are recorded on User.Achievements.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DailyChallenge is derived from the calendar date and never stored
type DailyChallenge struct {
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
	Date        string `json:"date"`
}
