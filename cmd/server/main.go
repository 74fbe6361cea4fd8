package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yonagi/game-library-api/internal/auth"
	"github.com/yonagi/game-library-api/internal/config"
	"github.com/yonagi/game-library-api/internal/constants"
	"github.com/yonagi/game-library-api/internal/database"
	"github.com/yonagi/game-library-api/internal/handlers"
	"github.com/yonagi/game-library-api/internal/middleware"
	"github.com/yonagi/game-library-api/internal/repository"
	"github.com/yonagi/game-library-api/internal/services"
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
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.AllowAllOrigins())

	// Setup session middleware with Redis. The session also carries the
	// Steam OpenID flow state, so it is installed for both auth strategies.
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
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	copyRepo := repository.NewCopyRepository(db)
	steamGameRepo := repository.NewSteamGameRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Credential strategy
	var strategy auth.CredentialStrategy
	switch cfg.AuthStrategy {
	case "token":
		strategy = auth.NewTokenStrategy(tokenRepo)
	default:
		strategy = auth.NewSessionStrategy()
	}

	// Services
	authService := services.NewAuthService(userRepo)
	libraryService := services.NewLibraryService(gameRepo, copyRepo, cfg.AllowClearValue)
	steamClient := services.NewSteamClient(cfg.SteamAPIKey, cfg.SteamTimeout)
	steamOpenID := services.NewSteamOpenID(cfg.SteamTimeout)
	importService := services.NewImportService(steamClient, steamGameRepo)

	// Handlers
	userHandler := handlers.NewUserHandler(authService, strategy)
	libraryHandler := handlers.NewLibraryHandler(libraryService)
	steamHandler := handlers.NewSteamHandler(steamOpenID, importService, cfg.BaseURL)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Game Library API is running",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.Register)
			user.POST("/login", userHandler.Login)
			user.POST("/logout", userHandler.Logout)
			user.GET("/search", userHandler.Search)
		}

		copy := api.Group("/copy")
		{
			copy.POST("/add", middleware.RequireAuth(strategy), libraryHandler.AddCopy)
			copy.POST("/progress", middleware.RequireAuth(strategy), libraryHandler.SetProgress)
			copy.POST("/rating", middleware.RequireAuth(strategy), libraryHandler.SetRating)
			copy.GET("/list", libraryHandler.ListCopies)
			copy.POST("/delete", middleware.RequireAuth(strategy), libraryHandler.DeleteCopy)
		}

		game := api.Group("/game")
		{
			game.POST("/add", middleware.RequireAuth(strategy), libraryHandler.AddGame)
		}
	}

	// Steam OpenID flow
	steam := r.Group("/openid/steam")
	{
		steam.GET("/login", middleware.RequireAuth(strategy), steamHandler.BeginLogin)
		steam.GET("/return", steamHandler.Return)
	}

	// Start server
	log.Println("Server starting on", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
