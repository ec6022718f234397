package status_module

import (
	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/presence"
	"github.com/dkaeza/reactobot/internal/store"
)

var (
	statusStore   store.Store
	statusTracker *presence.Tracker
)

// RegisterRoutes registers the routes for the status module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/status", GetStatus)
}

// Init wires the module to its dependencies
func Init(s store.Store, tracker *presence.Tracker) {
	statusStore = s
	statusTracker = tracker
}
