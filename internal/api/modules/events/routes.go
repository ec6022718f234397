package events_module

import (
	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/store"
)

var eventStore store.Store

// RegisterRoutes registers the routes for the events module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/events", ListEvents)
}

// Init wires the module to its dependencies
func Init(s store.Store) {
	eventStore = s
}
