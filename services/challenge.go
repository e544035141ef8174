package services

import (
	"time"

	"gofish/models"
)

// DateLayout is the calendar date format used for daily challenges
const DateLayout = "2006-01-02"

var challengeTemplates = [...]models.DailyChallenge{
	{Type: "catch_count", Target: 50, Description: "Catch 50 fish today", Reward: 500},
	{Type: "catch_legendary", Target: 1, Description: "Catch a Golden Koi", Reward: 1000},
	{Type: "level_up", Target: 5, Description: "Level up 5 times", Reward: 750},
	{Type: "score", Target: 5000, Description: "Score 5000 points", Reward: 600},
	{Type: "perfect_catches", Target: 10, Description: "Get 10 perfect catches", Reward: 800},
}

// DailyChallengeFor picks the challenge for t's UTC calendar date. The same
// date always yields the same challenge.
func DailyChallengeFor(t time.Time) models.DailyChallenge {
	u := t.UTC()
	seed := u.Year()*10000 + int(u.Month())*100 + u.Day()
	challenge := challengeTemplates[seed%len(challengeTemplates)]
	challenge.Date = u.Format(DateLayout)
	return challenge
}
