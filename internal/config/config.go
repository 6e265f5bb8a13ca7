package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server's runtime settings.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TokenDuration time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. JWT_SECRET is the only required setting.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "./data/hausmate.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	hours, err := strconv.Atoi(getEnv("TOKEN_DURATION_HOURS", "72"))
	if err != nil || hours <= 0 {
		return Config{}, fmt.Errorf("TOKEN_DURATION_HOURS must be a positive integer")
	}
	cfg.TokenDuration = time.Duration(hours) * time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
