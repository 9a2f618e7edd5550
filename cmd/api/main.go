package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"instabarakat-leads/config"
	"instabarakat-leads/controllers"
	"instabarakat-leads/routes"
	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, logWriter := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Set Gin mode
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	clock := services.NewMonotonicClock(nil)
	store, err := services.OpenSubmissionStore(cfg, clock)
	if err != nil {
		log.Fatalf("❌ Failed to open record store: %v", err)
	}

	var notifier services.Notifier
	if cfg.Mail.Enabled() && len(cfg.NotifyEmails) > 0 {
		notifier = services.NewMailNotifier(config.NewMailer(cfg.Mail), cfg.NotifyEmails, cfg.ProductName)
		log.Printf("New-lead notifications go to %d recipient(s)", len(cfg.NotifyEmails))
	}

	auth, err := services.NewAdminAuthService(cfg.AdminPassword, cfg.AdminPasswordHash, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("❌ Failed to configure admin access: %v", err)
	}

	submissions := services.NewSubmissionService(store, notifier, clock)

	router := routes.NewEngine(routes.Controllers{
		Landing:   controllers.NewLandingController(submissions, cfg.ProductName),
		AdminAuth: controllers.NewAdminAuthController(auth, cfg.SecureCookies),
		Dashboard: controllers.NewDashboardController(submissions, cfg.ProductName, cfg.Location),
		API:       controllers.NewSubmissionAPIController(submissions, cfg.ProductName, cfg.Location),
	}, auth, routes.EngineOptions{
		Location:       cfg.Location,
		AllowedOrigins: cfg.AllowedOrigins,
		LogWriter:      logWriter,
		LogPath:        config.LogFilePath,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
