package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	Environment string

	// AWS configuration
	AWSRegion     string
	TableName     string
	UserIndexName string // GSI keyed by userId for per-user queries

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "ap-southeast-2"),
		TableName:     getEnv("TABLE_NAME", "TodoTable"),
		UserIndexName: getEnv("USER_INDEX_NAME", "UserIdIndex"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present.
func (c *Config) Validate() error {
	if c.TableName == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.IsProduction() && c.UserIndexName == "" {
		return fmt.Errorf("USER_INDEX_NAME is required in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
