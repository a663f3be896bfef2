package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	HomeCurrency     string
	HomeJurisdiction string
	IsProduction     bool
	Retry            RetryConfig
}

// RetryConfig controls the bounded retry policy applied to conflicting
// ledger writes.
type RetryConfig struct {
	MaxAttempts      int
	InitialBackoffMs int
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("HOME_CURRENCY", "INR")
	viper.SetDefault("HOME_JURISDICTION", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LEDGER_RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("LEDGER_RETRY_INITIAL_BACKOFF_MS", 25)

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	return &Config{
		DatabaseURL:      dbURL,
		HomeCurrency:     viper.GetString("HOME_CURRENCY"),
		HomeJurisdiction: viper.GetString("HOME_JURISDICTION"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		Retry: RetryConfig{
			MaxAttempts:      viper.GetInt("LEDGER_RETRY_MAX_ATTEMPTS"),
			InitialBackoffMs: viper.GetInt("LEDGER_RETRY_INITIAL_BACKOFF_MS"),
		},
	}, nil
}
