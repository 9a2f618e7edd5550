package routes

import (
	"io"
	"time"

	"instabarakat-leads/middleware"
	"instabarakat-leads/monitor"
	"instabarakat-leads/services"
	"instabarakat-leads/views"

	"github.com/gin-gonic/gin"
)

// EngineOptions are the ambient settings of the HTTP engine.
type EngineOptions struct {
	Location       *time.Location
	AllowedOrigins []string
	LogWriter      io.Writer
	// LogPath enables the admin log view when set.
	LogPath        func() string
}

// NewEngine builds the gin engine with logging, recovery, security headers,
// the page templates and every route.
func NewEngine(h Controllers, auth *services.AdminAuthService, opts EngineOptions) *gin.Engine {
	router := gin.New()

	// Add logging middleware
	if opts.LogWriter != nil {
		router.Use(gin.LoggerWithWriter(opts.LogWriter))
	}

	// Add recovery middleware
	router.Use(gin.Recovery())

	router.Use(middleware.SecurityHeaders())

	router.SetHTMLTemplate(views.Templates(opts.Location))

	SetupRoutes(router, h, auth, opts.AllowedOrigins)

	if opts.LogPath != nil {
		admin := router.Group("/admin", middleware.RequireAdminPage(auth))
		monitor.RegisterLogsRoute(admin, opts.LogPath)
	}
	return router
}
