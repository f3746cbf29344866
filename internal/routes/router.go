package routes

import (
	"context"
	"net/http"

	"github.com/umeshkhanal/rumooz/internal/config"
	"github.com/umeshkhanal/rumooz/internal/delivery/http/handler"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/events"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/storage"
	"github.com/umeshkhanal/rumooz/internal/logger"
	"github.com/umeshkhanal/rumooz/internal/middleware"
	"github.com/umeshkhanal/rumooz/internal/usecase/admin"
	"github.com/umeshkhanal/rumooz/internal/usecase/lead"
	"github.com/umeshkhanal/rumooz/internal/usecase/team"

	"github.com/gin-gonic/gin"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Admin  *admin.Service
	Lead   *lead.Service
	Team   *team.Service
	Photos *storage.PhotoStore

	// LeadEvents is nil when no MQTT broker is configured.
	LeadEvents *events.MetricsTracker
}

func SetupRoutes(cfg *config.Config, db *postgres.DB, services *Services) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, security headers, CORS, general rate limit.
	// Size limits differ between JSON and upload routes and are set per group below.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(services.Photos.URLPrefix()))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RateLimitMiddleware("general", cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		body := gin.H{
			"status":  "healthy",
			"message": "Service is running",
		}
		if services.LeadEvents != nil {
			body["lead_events"] = services.LeadEvents.Snapshot()
		}
		c.JSON(http.StatusOK, body)
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Rumooz API is running"})
	})

	router.StaticFS(services.Photos.URLPrefix(), services.Photos.HTTPFileSystem())

	adminHandler := handler.NewAdminHandler(services.Admin)
	leadHandler := handler.NewLeadHandler(services.Lead)
	teamHandler := handler.NewTeamHandler(services.Team)

	authLimit := middleware.RateLimitMiddleware("auth", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	authMiddleware := middleware.AuthMiddleware(authenticator(services.Admin))

	uploadLimit := int64(cfg.Uploads.MaxSizeMB)<<20 + middleware.DefaultMaxRequestSize

	api := router.Group("/api")
	{
		jsonAPI := api.Group("")
		jsonAPI.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
		{
			adminHandler.RegisterRoutes(jsonAPI, authLimit)
			leadHandler.RegisterRoutes(jsonAPI)
			teamHandler.RegisterRoutes(jsonAPI)

			protected := jsonAPI.Group("")
			protected.Use(authMiddleware)
			{
				adminHandler.RegisterProtectedRoutes(protected)
				leadHandler.RegisterProtectedRoutes(protected)
			}
		}

		uploads := api.Group("")
		uploads.Use(middleware.RequestSizeLimitMiddleware(uploadLimit), authMiddleware)
		{
			teamHandler.RegisterProtectedRoutes(uploads)
		}
	}

	logger.Info("All routes initialized")
	return router
}

func authenticator(service *admin.Service) middleware.Authenticator {
	return middleware.AuthenticatorFunc(func(ctx context.Context, rawToken string) (uint, string, error) {
		identity, err := service.Authenticate(ctx, rawToken)
		if err != nil {
			return 0, "", err
		}
		return identity.AccountID, identity.Username, nil
	})
}
