package config

import (
	"os"
	"strconv"
	"time"

	"handlestats/domain/survey"
	"handlestats/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Source SourceConfig
	Server ServerConfig
	Schema survey.Schema
}

// SourceConfig describes where the survey export comes from
type SourceConfig struct {
	Location      string        // File path or http(s) URL
	SchemaFile    string        // Optional YAML schema override
	StrictHeaders bool          // Missing schema columns fail the load
	FetchTimeout  time.Duration `validate:"gt=0"`
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Addr string `validate:"required"`
}

var validate = validator.New()

// Load reads configuration from the environment, after loading a .env file when present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to read .env file")
	}

	config := &Config{
		Source: *loadSourceConfig(),
		Server: *loadServerConfig(),
	}

	schema, err := LoadSchema(config.Source.SchemaFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load survey schema")
	}
	config.Schema = schema

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

// RequireSource fails when no export location is configured
func (c *Config) RequireSource() error {
	if c.Source.Location == "" {
		return errors.ConfigInvalid("HANDLESTATS_SOURCE is required")
	}
	return nil
}

func loadSourceConfig() *SourceConfig {
	return &SourceConfig{
		Location:      getEnvOrDefault("HANDLESTATS_SOURCE", ""),
		SchemaFile:    getEnvOrDefault("HANDLESTATS_SCHEMA", ""),
		StrictHeaders: getEnvBoolOrDefault("HANDLESTATS_STRICT_HEADERS", false),
		FetchTimeout:  getEnvDurationOrDefault("HANDLESTATS_FETCH_TIMEOUT", 30*time.Second),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr: getEnvOrDefault("HANDLESTATS_ADDR", ":8080"),
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
