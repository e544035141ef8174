package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"gofish/internal/events"
	"gofish/models"

	"github.com/gin-gonic/gin"
)

// queryInt reads an integer query parameter, falling back to def when absent
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// requiredQueryInt reads an integer query parameter that must be present
func requiredQueryInt(c *gin.Context, key string) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, action string, err error) {
	if errors.Is(err, models.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	log.Printf("Error %s: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}

// publish hands the event to the publisher. Failures are logged and never
// change the response.
func publish(c *gin.Context, publisher events.Publisher, event models.GameEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(c.Request.Context(), event); err != nil {
		log.Printf("Error publishing %s event: %v", event.Type, err)
	}
}
