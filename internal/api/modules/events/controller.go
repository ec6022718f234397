package events_module

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/store"
)

// ListEvents handles GET requests for the most recent events, newest first
func ListEvents(c *gin.Context) {
	limit := store.DefaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		limit = parsed
	}

	events, err := eventStore.Events(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get events"})
		return
	}

	c.JSON(http.StatusOK, events)
}
