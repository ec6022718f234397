package reactions_module

import (
	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/store"
)

var reactionStore store.Store

// RegisterRoutes registers the routes for the reactions module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/reactions")

	group.GET("", ListReactions)
	group.GET("/:id", GetReaction)
	group.POST("", CreateReaction)
	group.PUT("/:id", UpdateReaction)
	group.DELETE("/:id", DeleteReaction)
}

// Init wires the module to its dependencies
func Init(s store.Store) {
	reactionStore = s
}
