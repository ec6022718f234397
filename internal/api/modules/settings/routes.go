package settings_module

import (
	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/store"
)

var (
	settingsStore   store.Store
	refreshActivity func()
)

// RegisterRoutes registers the routes for the settings module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/settings", GetSettings)
	g.POST("/settings", UpdateSettings)
}

// Init wires the module to its dependencies. refresh may be nil when no
// connector is running
func Init(s store.Store, refresh func()) {
	settingsStore = s
	refreshActivity = refresh
}
