package controllers

import (
	"net/http"

	"gofish/internal/events"
	"gofish/models"
	"gofish/services"

	"github.com/gin-gonic/gin"
)

// ScoreController serves score submission and the global leaderboard
type ScoreController struct {
	Scores *services.ScoreService
	Events events.Publisher
}

func (sc *ScoreController) SubmitScore(c *gin.Context) {
	var in models.ScoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	score, err := sc.Scores.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, "submit score", err)
		return
	}

	event := events.NewEvent(models.EventScoreSubmitted, score.UserID)
	event.Username = score.Username
	event.Score = score.Score
	publish(c, sc.Events, event)

	c.JSON(http.StatusOK, score)
}

// GetLeaderboard returns the top scores, 100 unless ?limit is given
func (sc *ScoreController) GetLeaderboard(c *gin.Context) {
	limit, err := queryInt(c, "limit", services.DefaultLeaderboardLimit)
	if err != nil {
		badRequest(c, err)
		return
	}

	entries, err := sc.Scores.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "fetch leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
