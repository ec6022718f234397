package settings_module

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/store"
)

// updateSettingsRequest carries a partial settings update
type updateSettingsRequest struct {
	ActivityPrefix *string `json:"activityPrefix"`
	ActivitySuffix *string `json:"activitySuffix"`
}

// GetSettings handles GET requests for the settings singleton
func GetSettings(c *gin.Context) {
	settings, err := settingsStore.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get bot settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles POST requests merging a partial update into the
// settings singleton, then pushes the recomputed activity text
func UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request body"})
		return
	}

	settings, err := settingsStore.UpdateSettings(store.SettingsPatch{
		ActivityPrefix: req.ActivityPrefix,
		ActivitySuffix: req.ActivitySuffix,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update bot settings"})
		return
	}

	if refreshActivity != nil {
		refreshActivity()
	}

	c.JSON(http.StatusOK, settings)
}
