// Package api exposes the dashboard's HTTP JSON surface on top of the
// store, the presence tracker, and the bot's activity refresh hook.
package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dkaeza/reactobot/internal/presence"
	"github.com/dkaeza/reactobot/internal/store"
	"github.com/dkaeza/reactobot/pkg/utils"

	events_module "github.com/dkaeza/reactobot/internal/api/modules/events"
	health_module "github.com/dkaeza/reactobot/internal/api/modules/health"
	reactions_module "github.com/dkaeza/reactobot/internal/api/modules/reactions"
	settings_module "github.com/dkaeza/reactobot/internal/api/modules/settings"
	status_module "github.com/dkaeza/reactobot/internal/api/modules/status"
)

// Dependencies carries everything the API modules need. RefreshActivity is
// invoked after settings changes so the displayed presence text follows the
// dashboard; it may be nil when no connector is running
type Dependencies struct {
	Store           store.Store
	Tracker         *presence.Tracker
	RefreshActivity func()
}

// New builds the gin engine with all dashboard routes registered
func New(cfg *utils.Config, deps Dependencies) *gin.Engine {
	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(noRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Tag every request for log correlation
	engine.Use(RequestID())

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	status_module.RegisterRoutes(baseGroup)
	status_module.Init(deps.Store, deps.Tracker)

	settings_module.RegisterRoutes(baseGroup)
	settings_module.Init(deps.Store, deps.RefreshActivity)

	reactions_module.RegisterRoutes(baseGroup)
	reactions_module.Init(deps.Store)

	events_module.RegisterRoutes(baseGroup)
	events_module.Init(deps.Store)

	return engine
}

// Start builds the engine and serves it on the configured port, blocking
// until the server stops
func Start(cfg *utils.Config, deps Dependencies) {
	port := cfg.GetWithDefault("API_PORT", "8080")

	engine := New(cfg, deps)

	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API]: Failed to start server: ", err)
	}
}

// noRouteHandler answers unknown paths with a JSON 404
func noRouteHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}
