package controllers

import (
	"net/http"

	"gofish/services"

	"github.com/gin-gonic/gin"
)

// WorldController serves the shared game world: weather, the daily
// challenge and the achievement catalog.
type WorldController struct {
	Weather *services.WeatherService
	Clock   services.Clock
}

// GetWeather always answers 200; provider trouble yields the fallback reading
func (wc *WorldController) GetWeather(c *gin.Context) {
	c.JSON(http.StatusOK, wc.Weather.Get(c.Request.Context()))
}

func (wc *WorldController) GetDailyChallenge(c *gin.Context) {
	clock := wc.Clock
	if clock == nil {
		clock = services.RealClock{}
	}
	c.JSON(http.StatusOK, services.DailyChallengeFor(clock.Now()))
}

func (wc *WorldController) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": services.Achievements()})
}
