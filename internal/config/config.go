package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port       string
	DBPath     string
	APIBaseURL string
	MapToken   string
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() *Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/incidents.db"
	}

	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}

	return &Config{
		Port:       port,
		DBPath:     dbPath,
		APIBaseURL: apiBase,
		MapToken:   os.Getenv("MAP_ACCESS_TOKEN"),
	}
}
