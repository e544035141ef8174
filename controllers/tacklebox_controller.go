package controllers

import (
	"net/http"

	"gofish/internal/events"
	"gofish/models"
	"gofish/services"

	"github.com/gin-gonic/gin"
)

// TackleboxController serves the per-player catch history
type TackleboxController struct {
	Tacklebox *services.TackleboxService
	Events    events.Publisher
}

func (tc *TackleboxController) AddFish(c *gin.Context) {
	var in models.FishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.Param("user_id")
	fish, err := tc.Tacklebox.AddFish(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, "add fish", err)
		return
	}

	event := events.NewEvent(models.EventFishCaught, userID)
	event.FishName = fish.Name
	event.Points = fish.Points
	publish(c, tc.Events, event)

	c.JSON(http.StatusOK, gin.H{"success": true, "fish_id": fish.ID})
}

func (tc *TackleboxController) GetTacklebox(c *gin.Context) {
	limit, err := queryInt(c, "limit", services.DefaultTackleboxLimit)
	if err != nil {
		badRequest(c, err)
		return
	}

	box, err := tc.Tacklebox.Get(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		respondError(c, "fetch tacklebox", err)
		return
	}
	c.JSON(http.StatusOK, box)
}
