package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort  int
	DatabaseURL string
	JWTSecret   string
	GNewsAPIKey string
}

// Load loads configuration from a .env file (if present) and the process
// environment. Every value is required; a missing one is a startup failure.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	portStr, err := requireEnv("PORT")
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value %q: %w", portStr, err)
	}

	dbURL, err := requireEnv("DB_URL")
	if err != nil {
		return nil, err
	}
	jwtSecret, err := requireEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	gnewsKey, err := requireEnv("GNEWS_API_KEY")
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:  port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,
		GNewsAPIKey: gnewsKey,
	}, nil
}

// Helper to get a required environment variable.
func requireEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}
