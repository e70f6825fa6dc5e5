package configs

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Oracle   OracleConfig
	Trading  TradingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	OpsPort string
	Env     string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// OracleConfig holds price oracle configuration
type OracleConfig struct {
	// Mode selects the oracle implementation: "simulated" or "http"
	Mode          string
	QuoteURL      string
	LookupTimeout time.Duration
	// DriftSpec is the cron expression driving the simulated price random walk
	DriftSpec string
	Seed      int64
}

// TradingConfig holds trading defaults
type TradingConfig struct {
	StartingCash float64
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			OpsPort: getEnv("OPS_PORT", "8081"),
			Env:     getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "default-secret-change-in-production"),
			TokenTTL:  getDuration("TOKEN_TTL", 24*time.Hour),
		},
		Oracle: OracleConfig{
			Mode:          getEnv("ORACLE_MODE", "simulated"),
			QuoteURL:      getEnv("QUOTE_API_URL", "https://api.example-quotes.dev"),
			LookupTimeout: getDuration("QUOTE_TIMEOUT", 5*time.Second),
			DriftSpec:     getEnv("PRICE_DRIFT_CRON", "@every 1m"),
			Seed:          getInt64("ORACLE_SEED", 0),
		},
		Trading: TradingConfig{
			StartingCash: getFloat("STARTING_CASH", 10000.0),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
