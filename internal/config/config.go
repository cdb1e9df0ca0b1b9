package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, loaded from the environment with
// an optional .env overlay.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	AdminUsername string
	AdminPassword string
	TokenTTL      time.Duration

	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", ":8080"),
		DBPath:          getEnv("DB_PATH", "./data/geotracker.db"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin"),
		TokenTTL:        time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		RateLimit:       getEnvInt("RATE_LIMIT", 300),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
