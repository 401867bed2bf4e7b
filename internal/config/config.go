package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Environment ("development", "production", "test")
	Env string

	// Server
	Port       string
	CORSOrigin string

	// Progress state
	StateKey  string // key of the progress snapshot in the store
	StateFile string // JSON snapshot used by the CLI
	Currency  string // ISO 4217 code used to display amounts
	Location  *time.Location

	// Market data
	MarketAPIURL      string
	MarketTimeout     time.Duration
	MarketRefreshCron string
	MarketCacheTTL    time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:        getEnv("ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		StateKey:  getEnv("STATE_KEY", "finlearn_game_state"),
		StateFile: getEnv("STATE_FILE", defaultStateFile()),
		Currency:  getEnv("CURRENCY", "INR"),

		MarketAPIURL:      getEnv("MARKET_API_URL", ""),
		MarketRefreshCron: getEnv("MARKET_REFRESH_CRON", "@every 30m"),
	}

	config.MarketTimeout = getDuration("MARKET_TIMEOUT", 10*time.Second)
	config.MarketCacheTTL = getDuration("MARKET_CACHE_TTL", time.Hour)

	tz := getEnv("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE value '%s', falling back to Local\n", tz)
		loc = time.Local
	}
	config.Location = loc

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "finlearn_state.json"
	}
	return filepath.Join(home, ".finlearn", "state.json")
}

// getDuration parses a duration variable, falling back to the default on bad input.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
