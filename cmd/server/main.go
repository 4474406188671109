package main

import (
	"log"

	"chirp/internal/router"
	"chirp/pkg/config"
	"chirp/pkg/validators"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the database connection
	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize Redis (login rate limiter)
	rdb, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer rdb.Close()

	// Create Echo instance
	e := echo.New()
	// Suppress internal error detail outside development.
	e.Debug = cfg.IsDevelopment()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, rdb, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
