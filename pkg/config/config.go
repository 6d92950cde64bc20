package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	FirebaseApiKey  string
	StorageBucket   string
	Environment     string
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration from the environment, with .env as a fallback
// for local development.
func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      envOr("SERVER_PORT", "8080"),
		FirebaseProject: envOr("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:  envOr("FIREBASE_API_KEY", ""),
		StorageBucket:   envOr("STORAGE_BUCKET", ""),
		Environment:     envOr("ENVIRONMENT", "development"),
	}

	if !config.IsDevelopment() && config.FirebaseProject == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required outside development")
	}

	return config, nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

