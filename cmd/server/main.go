package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/config"
	"github.com/officekit/office-planning-api/internal/constants"
	"github.com/officekit/office-planning-api/internal/database"
	"github.com/officekit/office-planning-api/internal/handlers"
	"github.com/officekit/office-planning-api/internal/middleware"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/officekit/office-planning-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	scopeService := services.NewScopeService(userRepo, teamRepo)
	reportService := services.NewReportService(scopeService, serviceRepo, locationRepo, entryRepo)
	occupancyService := services.NewOccupancyService(userRepo, locationRepo, entryRepo)
	entryService := services.NewEntryService(entryRepo, locationRepo, teamRepo)
	importService := services.NewImportService(userRepo, locationRepo, entryRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)
	locationService := services.NewLocationService(locationRepo)
	tokenService := services.NewTokenService(tokenRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	entryHandler := handlers.NewEntryHandler(entryService)
	reportHandler := handlers.NewReportHandler(reportService, cfg.ServicesEnabled)
	occupancyHandler := handlers.NewOccupancyHandler(occupancyService)
	importHandler := handlers.NewImportHandler(importService)
	teamHandler := handlers.NewTeamHandler(teamService)
	locationHandler := handlers.NewLocationHandler(locationService)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)
	tokenHandler := handlers.NewTokenHandler(tokenService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Office Planning API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Plan entry routes (protected)
		entries := api.Group("/entries")
		entries.Use(middleware.RequireAuth())
		{
			entries.GET("", entryHandler.ListEntries)
			entries.PUT("", entryHandler.UpsertEntry)
			entries.DELETE("/:id", entryHandler.DeleteEntry)
			entries.POST("/import", middleware.RequireManager(), importHandler.ImportEntries)
		}

		// Manager-on-behalf entry writes
		api.PUT("/users/:id/entries", middleware.RequireAuth(), entryHandler.UpsertEntryForUser)

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.GET("/team", reportHandler.TeamGrid)
			reports.GET("/locations", reportHandler.LocationGrid)
			reports.GET("/coverage", reportHandler.CoverageMatrix)
			reports.GET("/services", reportHandler.ServiceAvailability)
		}

		// Occupancy routes (managers and admins)
		occupancy := api.Group("/occupancy")
		occupancy.Use(middleware.RequireAuth(), middleware.RequireManager())
		{
			occupancy.GET("/snapshot", occupancyHandler.Snapshot)
			occupancy.GET("/matrix", occupancyHandler.Matrix)
			occupancy.GET("/summary", occupancyHandler.Summary)
		}

		// Team administration (admin only)
		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth())
		{
			teams.GET("", teamHandler.ListTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.POST("", middleware.RequireAdmin(), teamHandler.CreateTeam)
			teams.PUT("/:id", middleware.RequireAdmin(), teamHandler.UpdateTeam)
			teams.DELETE("/:id", middleware.RequireAdmin(), teamHandler.DeleteTeam)
			teams.POST("/:id/members", middleware.RequireAdmin(), teamHandler.AddMember)
			teams.DELETE("/:id/members/:user_id", middleware.RequireAdmin(), teamHandler.RemoveMember)
		}

		// Location administration
		locations := api.Group("/locations")
		locations.Use(middleware.RequireAuth())
		{
			locations.GET("", locationHandler.ListLocations)
			locations.POST("", middleware.RequireAdmin(), locationHandler.CreateLocation)
			locations.PUT("/:id", middleware.RequireAdmin(), locationHandler.UpdateLocation)
			locations.DELETE("/:id", middleware.RequireAdmin(), locationHandler.DeleteLocation)
		}

		// Service administration (admin only, feature-gated reporting)
		servicesGroup := api.Group("/services")
		servicesGroup.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			servicesGroup.GET("", serviceHandler.ListServices)
			servicesGroup.POST("", serviceHandler.CreateService)
			servicesGroup.DELETE("/:id", serviceHandler.DeleteService)
			servicesGroup.POST("/:id/members", serviceHandler.AddMember)
			servicesGroup.DELETE("/:id/members/:user_id", serviceHandler.RemoveMember)
		}

		// API token management
		tokens := api.Group("/tokens")
		tokens.Use(middleware.RequireAuth())
		{
			tokens.POST("", tokenHandler.CreateToken)
			tokens.GET("", tokenHandler.ListTokens)
			tokens.DELETE("/:id", tokenHandler.RevokeToken)
		}
	}

	// Token-scoped reporting API for external consumers
	v1 := r.Group("/api/v1", middleware.TokenAuth(tokenService))
	{
		v1.GET("/reports/team", reportHandler.TeamGrid)
		v1.GET("/reports/locations", reportHandler.LocationGrid)
		v1.GET("/reports/coverage", reportHandler.CoverageMatrix)
		v1.GET("/reports/services", reportHandler.ServiceAvailability)
		v1.GET("/occupancy/snapshot", occupancyHandler.Snapshot)
		v1.GET("/occupancy/matrix", occupancyHandler.Matrix)
		v1.GET("/occupancy/summary", occupancyHandler.Summary)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
