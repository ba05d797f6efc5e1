// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Persistence
	Postgres *PostgresConfig

	// Enrichment sources
	CrunchbaseBaseURL string
	CrunchbaseAPIKey  string
	LinkedInBaseURL   string
	LinkedInAPIKey    string
	ScrapeUserAgent   string
	FetchTimeout      time.Duration

	// Pipeline settings
	WorkerPoolSize int
	RulesPath      string

	// Job cadences
	StartupInterval  time.Duration
	InvestorInterval time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		CrunchbaseBaseURL: getEnv("CRUNCHBASE_BASE_URL", "https://api.crunchbase.com/v4"),
		CrunchbaseAPIKey:  getEnv("CRUNCHBASE_API_KEY", ""),
		LinkedInBaseURL:   getEnv("LINKEDIN_BASE_URL", "https://api.linkedin.com/v2"),
		LinkedInAPIKey:    getEnv("LINKEDIN_API_KEY", ""),
		ScrapeUserAgent:   getEnv("SCRAPE_USER_AGENT", "ecosystem-ingress/1.0"),
		FetchTimeout:      time.Duration(getEnvAsInt("FETCH_TIMEOUT_MS", 15000)) * time.Millisecond,
		WorkerPoolSize:    getEnvAsInt("WORKER_POOL_SIZE", 0), // 0 means use runtime.NumCPU()
		RulesPath:         getEnv("NORMALIZATION_RULES_PATH", ""),
		StartupInterval:   time.Duration(getEnvAsInt("STARTUP_JOB_INTERVAL_MINUTES", 360)) * time.Minute,
		InvestorInterval:  time.Duration(getEnvAsInt("INVESTOR_JOB_INTERVAL_MINUTES", 720)) * time.Minute,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	// Load database configuration
	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Postgres = pgConfig

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Postgres == nil {
		return errors.New("postgreSQL configuration is required")
	}

	if c.CrunchbaseBaseURL == "" {
		return errors.New("crunchbase base URL is required")
	}

	if c.LinkedInBaseURL == "" {
		return errors.New("linkedin base URL is required")
	}

	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	if c.StartupInterval <= 0 || c.InvestorInterval <= 0 {
		return errors.New("job intervals must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
