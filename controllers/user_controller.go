package controllers

import (
	"net/http"

	"gofish/internal/events"
	"gofish/models"
	"gofish/services"

	"github.com/gin-gonic/gin"
)

// UserController serves profile and progression endpoints
type UserController struct {
	Users  *services.UserService
	Events events.Publisher
}

// CreateOrGetUser returns the profile for a device, creating it on first use
func (uc *UserController) CreateOrGetUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := uc.Users.CreateOrGet(c.Request.Context(), req.DeviceID, req.Username)
	if err != nil {
		respondError(c, "create user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.Users.GetByDeviceID(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		respondError(c, "fetch user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UnlockLure(c *gin.Context) {
	var req models.UnlockLureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.Param("id")
	lures, err := uc.Users.UnlockLure(c.Request.Context(), userID, *req.LureID)
	if err != nil {
		respondError(c, "unlock lure", err)
		return
	}

	event := events.NewEvent(models.EventLureUnlocked, userID)
	event.LureID = req.LureID
	publish(c, uc.Events, event)

	c.JSON(http.StatusOK, gin.H{"success": true, "unlocked_lures": lures})
}

// UpdateHighScore overwrites the high score unconditionally
func (uc *UserController) UpdateHighScore(c *gin.Context) {
	score, err := requiredQueryInt(c, "score")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := uc.Users.SetHighScore(c.Request.Context(), c.Param("id"), score); err != nil {
		respondError(c, "update high score", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (uc *UserController) IncrementCatches(c *gin.Context) {
	count, err := queryInt(c, "count", 1)
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := uc.Users.IncrementCatches(c.Request.Context(), c.Param("id"), count); err != nil {
		respondError(c, "increment catches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (uc *UserController) SetLevel(c *gin.Context) {
	level, err := requiredQueryInt(c, "level")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := uc.Users.SetLevel(c.Request.Context(), c.Param("id"), level); err != nil {
		respondError(c, "set level", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (uc *UserController) Prestige(c *gin.Context) {
	userID := c.Param("id")
	prestige, err := uc.Users.Prestige(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "prestige", err)
		return
	}

	event := events.NewEvent(models.EventPrestige, userID)
	event.Prestige = prestige
	publish(c, uc.Events, event)

	c.JSON(http.StatusOK, gin.H{"success": true, "prestige": prestige})
}

func (uc *UserController) UnlockAchievement(c *gin.Context) {
	var req models.UnlockAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.Param("id")
	achievements, err := uc.Users.UnlockAchievement(c.Request.Context(), userID, req.AchievementID)
	if err != nil {
		respondError(c, "unlock achievement", err)
		return
	}

	event := events.NewEvent(models.EventAchievementUnlocked, userID)
	event.AchievementID = req.AchievementID
	publish(c, uc.Events, event)

	c.JSON(http.StatusOK, gin.H{"success": true, "achievements": achievements})
}

func (uc *UserController) CompleteDaily(c *gin.Context) {
	userID := c.Param("id")
	if err := uc.Users.CompleteDailyChallenge(c.Request.Context(), userID); err != nil {
		respondError(c, "complete daily challenge", err)
		return
	}
	publish(c, uc.Events, events.NewEvent(models.EventDailyCompleted, userID))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
