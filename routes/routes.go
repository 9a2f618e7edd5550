package routes

import (
	"net/http"

	"instabarakat-leads/controllers"
	"instabarakat-leads/middleware"
	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
)

// Controllers groups every handler the router wires.
type Controllers struct {
	Landing   *controllers.LandingController
	AdminAuth *controllers.AdminAuthController
	Dashboard *controllers.DashboardController
	API       *controllers.SubmissionAPIController
}

// SetupRoutes registers every route. CORS applies to the JSON API only; the
// HTML forms post same-site.
func SetupRoutes(router *gin.Engine, h Controllers, auth *services.AdminAuthService, allowedOrigins []string) {
	// Public pages
	router.GET("/", h.Landing.Show)
	router.POST("/", h.Landing.Submit)
	router.GET("/thanks", h.Landing.Thanks)

	// Access gate
	router.GET("/admin", h.AdminAuth.ShowLogin)
	router.POST("/admin", h.AdminAuth.Login)
	router.POST("/admin/logout", h.AdminAuth.Logout)

	// Review dashboard (session required)
	dashboard := router.Group("/admin/dashboard")
	dashboard.Use(middleware.RequireAdminPage(auth))
	{
		dashboard.GET("", h.Dashboard.Index)
		dashboard.GET("/export.csv", h.Dashboard.Export)
		dashboard.POST("/submissions/:id/status", h.Dashboard.UpdateStatus)
		dashboard.POST("/submissions/:id/delete", h.Dashboard.Delete)
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.CORSMiddleware(allowedOrigins))
	// preflight requests need a matching route for the group middleware to run
	v1.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/submissions", h.API.Create)
			public.POST("/admin/login", h.AdminAuth.APILogin)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Leads API is running",
				})
			})
		}

		// Protected routes (require admin session)
		admin := v1.Group("/admin/submissions")
		admin.Use(middleware.RequireAdminAPI(auth))
		{
			admin.GET("", h.API.List)
			admin.GET("/export", h.API.Export)
			admin.GET("/:id", h.API.Get)
			admin.PUT("/:id", h.API.Update)
			admin.DELETE("/:id", h.API.Delete)
		}
	}
}
