package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, read from the environment.
type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	TokenTTL        time.Duration
	FeedPageSize    int
	LoginRateLimit  int64
	LoginRateWindow time.Duration
}

// Load reads configuration from environment variables with defaults. A .env
// file, when present, is loaded first so file-supplied values are visible to
// every read below.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		JWTSecret:       getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:        time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 72)) * time.Hour,
		FeedPageSize:    getEnvInt("FEED_PAGE_SIZE", 20),
		LoginRateLimit:  int64(getEnvInt("LOGIN_RATE_LIMIT", 5)),
		LoginRateWindow: time.Duration(getEnvInt("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

// IsDevelopment reports whether the process runs with development settings.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
