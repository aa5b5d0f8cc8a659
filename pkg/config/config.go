package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read through this package only.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional; history endpoints degrade without it)
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Data sources
	StatusInvest  StatusInvestConfig
	FundsExplorer FundsExplorerConfig
	Yahoo         YahooConfig
	BCB           BCBConfig

	// Collection
	Collector CollectorConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration

	// History retention enforced by the maintenance job
	Retention time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// StatusInvestConfig holds Status Invest scraping configuration.
type StatusInvestConfig struct {
	BaseURL string
}

// FundsExplorerConfig holds Funds Explorer scraping configuration.
type FundsExplorerConfig struct {
	BaseURL string
}

// YahooConfig holds Yahoo Finance quote API configuration.
type YahooConfig struct {
	BaseURL string
}

// BCBConfig holds Banco Central SGS API configuration.
type BCBConfig struct {
	BaseURL string
}

// CollectorConfig holds metric collection configuration.
type CollectorConfig struct {
	// Source selects the metric acquisition strategy:
	// statusinvest, fundsexplorer, yahoo, snapshot
	Source string

	// RequestInterval paces per-ticker requests so sources don't block us
	RequestInterval time.Duration

	// SnapshotPath is the CSV cache written after each collection pass
	// and read back by the snapshot source
	SnapshotPath string

	// UniverseFile optionally overrides the built-in fund universe
	UniverseFile string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8091"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
			Retention:       getEnvAsDuration("HISTORY_RETENTION", "8760h"), // 1 year
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		StatusInvest: StatusInvestConfig{
			BaseURL: getEnv("STATUSINVEST_BASE_URL", "https://statusinvest.com.br"),
		},
		FundsExplorer: FundsExplorerConfig{
			BaseURL: getEnv("FUNDSEXPLORER_BASE_URL", "https://www.fundsexplorer.com.br"),
		},
		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		},
		BCB: BCBConfig{
			BaseURL: getEnv("BCB_BASE_URL", "https://api.bcb.gov.br"),
		},

		Collector: CollectorConfig{
			Source:          getEnv("METRICS_SOURCE", "statusinvest"),
			RequestInterval: getEnvAsDuration("REQUEST_INTERVAL", "300ms"),
			SnapshotPath:    getEnv("SNAPSHOT_PATH", "fiis_data.csv"),
			UniverseFile:    getEnv("UNIVERSE_FILE", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Collector.Source {
	case "statusinvest", "fundsexplorer", "yahoo", "snapshot":
	default:
		return fmt.Errorf("METRICS_SOURCE must be one of: statusinvest, fundsexplorer, yahoo, snapshot")
	}

	if c.Collector.RequestInterval < 0 {
		return fmt.Errorf("REQUEST_INTERVAL must not be negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
