package router

import (
	"log"

	"chirp/internal/auth"
	"chirp/internal/handlers"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/visibility"
	"chirp/pkg/config"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes migrates the schema, wires dependencies and registers all
// application routes.
func SetupRoutes(e *echo.Echo, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Reply{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	replyRepo := repositories.NewPostgresReplyRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authorizer := visibility.NewAuthorizer(followRepo)

	// --- Unauthenticated routes ---
	public := e.Group("")
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	loginLimiter := middleware.LoginRateLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
	authHandler.RegisterPublicRoutes(public, loginLimiter)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a valid bearer token) ---
	api := e.Group("")
	api.Use(middleware.JWTAuth(tokens))
	authHandler.RegisterProtectedRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, authorizer)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	feedHandler := handlers.NewFeedHandler(postRepo, cfg.FeedPageSize)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	engagementHandler := handlers.NewEngagementHandler(likeRepo, replyRepo, postRepo, authorizer)
	engagementHandler.RegisterEngagementRoutes(api)
	log.Println("Engagement routes configured.")

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	log.Println("All routes configured.")
}
