package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Document store holding the production records. The URI carries
	// credentials; this service never assembles them itself.
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	MongoTimeout    time.Duration

	// Local weather file.
	WeatherCSVPath string

	// RefreshInterval controls how often the production snapshot is
	// rebuilt in the background. Zero disables the scheduler.
	RefreshInterval time.Duration

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	cfg.MongoDatabase = getenvDefault("MONGO_DATABASE", "Database")
	cfg.MongoCollection = getenvDefault("MONGO_COLLECTION", "data")

	timeoutStr := getenvDefault("MONGO_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_TIMEOUT: %w", err)
	}
	cfg.MongoTimeout = timeout

	cfg.WeatherCSVPath = getenvDefault("WEATHER_CSV_PATH", "data/open-meteo-subset.csv")

	// Background refresh: default 1 hour, "0" disables it.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	httpTimeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	httpTimeout, err := time.ParseDuration(httpTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
