package status_module

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusResponse combines the settings singleton with live guild metrics
type statusResponse struct {
	IsOnline    bool   `json:"isOnline"`
	MemberCount int    `json:"memberCount"`
	GuildName   string `json:"guildName"`
	Activity    string `json:"activity"`
}

// GetStatus handles GET requests for the bot's operational status
func GetStatus(c *gin.Context) {
	settings, err := statusStore.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get bot status"})
		return
	}

	memberCount, guildName := statusTracker.Snapshot()

	c.JSON(http.StatusOK, statusResponse{
		IsOnline:    settings.IsOnline,
		MemberCount: memberCount,
		GuildName:   guildName,
		Activity:    statusTracker.Activity(settings),
	})
}
