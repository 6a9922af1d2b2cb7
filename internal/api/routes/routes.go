package routes

import (
	"fmt"

	"github.com/KartikTulsian/karyasetu/internal/api/handlers"
	"github.com/KartikTulsian/karyasetu/internal/api/middleware"
	"github.com/KartikTulsian/karyasetu/internal/auth"
	"github.com/KartikTulsian/karyasetu/internal/config"
	"github.com/KartikTulsian/karyasetu/internal/metrics"
	"github.com/KartikTulsian/karyasetu/internal/repository"
	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, version string) (*gin.Engine, error) {
	// Auth is mandatory: every registration operation needs a verified caller
	authService, err := auth.NewAuthService(&auth.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		TokenTTL:  cfg.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize auth service: %w", err)
	}
	authMiddleware := auth.NewAuthMiddleware(authService)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Metrics())

	// Initialize validator
	validator := service.NewValidator()

	// Initialize repositories
	repos := repository.NewRepositories(db)
	transactor := repository.NewTransactor(db)

	// Initialize services
	participationService := service.NewParticipationService(repos, transactor, validator, cfg.EmailCaseSensitive)
	userService := service.NewUserService(repos.Users, transactor, validator)
	eventService := service.NewEventService(repos.Events, transactor, validator)
	offerService := service.NewOfferService(repos, validator)
	clubService := service.NewClubService(repos, transactor, validator)
	resultService := service.NewResultService(repos, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(sqlDB, version)
	participationHandler := handlers.NewParticipationHandler(participationService)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	offerHandler := handlers.NewOfferHandler(offerService)
	clubHandler := handlers.NewClubHandler(clubService)
	resultHandler := handlers.NewResultHandler(resultService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		// User profile routes
		users := v1.Group("/users")
		{
			users.POST("/me", userHandler.CreateProfile)
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/me", userHandler.UpdateProfile)
			users.DELETE("/me", userHandler.DeleteProfile)
			users.GET("/:id", userHandler.GetUser)
		}

		// Event routes
		events := v1.Group("/events")
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("/mine", eventHandler.ListMyEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
			events.GET("/:id/participations", participationHandler.ListByEvent)
			events.GET("/:id/results", resultHandler.ListByEvent)
		}

		// Registration routes
		participations := v1.Group("/participations")
		{
			participations.POST("", participationHandler.Register)
			participations.GET("/me", participationHandler.ListMine)
			participations.PATCH("/:id", participationHandler.Update)
			participations.DELETE("/:id", participationHandler.Withdraw)
		}

		// Team routes
		v1.GET("/teams/:id", participationHandler.GetTeam)

		// Offer routes
		offers := v1.Group("/offers")
		{
			offers.POST("", offerHandler.CreateOffer)
			offers.GET("/mine", offerHandler.ListMyOffers)
			offers.GET("/feed", offerHandler.OfferFeed)
			offers.GET("/:id", offerHandler.GetOffer)
			offers.PUT("/:id", offerHandler.UpdateOffer)
			offers.DELETE("/:id", offerHandler.DeleteOffer)
		}

		// Club routes
		clubs := v1.Group("/clubs")
		{
			clubs.POST("", clubHandler.CreateClub)
			clubs.GET("", clubHandler.ListClubs)
			clubs.GET("/:id", clubHandler.GetClub)
			clubs.PUT("/:id", clubHandler.UpdateClub)
			clubs.DELETE("/:id", clubHandler.DeleteClub)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.POST("", resultHandler.CreateResult)
			results.GET("/:id", resultHandler.GetResult)
			results.PUT("/:id", resultHandler.UpdateResult)
			results.DELETE("/:id", resultHandler.DeleteResult)
		}
	}

	router.NoRoute(handlers.NotFound)

	return router, nil
}
