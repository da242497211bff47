package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"fraudlens/internal/errors"
)

// History backend selectors accepted by HISTORY_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `validate:"required"`
	Scoring ScoringConfig `validate:"required"`
	History HistoryConfig `validate:"required"`
	Upload  UploadConfig  `validate:"required"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `validate:"required"`
}

// ScoringConfig holds settings for the remote scoring service. An empty URL
// means the local heuristic engine scores everything.
type ScoringConfig struct {
	APIURL      string
	APIKey      string
	Timeout     time.Duration
	MaxParallel int
}

// UseRemote reports whether a remote scoring service is configured.
func (c ScoringConfig) UseRemote() bool {
	return c.APIURL != ""
}

// HistoryConfig selects and parameterizes the prediction history backend.
type HistoryConfig struct {
	Backend       string
	MaxEntries    int
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// UploadConfig bounds what the batch endpoints accept.
type UploadConfig struct {
	MaxRows  int
	MaxBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	config.Server = *loadServerConfig()
	config.Scoring = *loadScoringConfig()
	config.History = *loadHistoryConfig()
	config.Upload = *loadUploadConfig()

	// Validate required fields
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		APIURL:      getEnvOrDefault("SCORING_API_URL", ""),
		APIKey:      getEnvOrDefault("SCORING_API_KEY", ""),
		Timeout:     getEnvDurationOrDefault("SCORING_TIMEOUT", 15*time.Second),
		MaxParallel: getEnvIntOrDefault("SCORING_MAX_PARALLEL", 4),
	}
}

func loadHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Backend:       strings.ToLower(getEnvOrDefault("HISTORY_BACKEND", BackendMemory)),
		MaxEntries:    getEnvIntOrDefault("HISTORY_MAX_ENTRIES", 50),
		DatabaseURL:   getEnvOrDefault("DATABASE_URL", ""),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
	}
}

func loadUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxRows:  getEnvIntOrDefault("UPLOAD_MAX_ROWS", 500),
		MaxBytes: int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", 5*1024*1024)),
	}
}

func validateConfig(config *Config) error {
	switch config.History.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if config.History.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when HISTORY_BACKEND=postgres")
		}
	default:
		return errors.ConfigInvalid("HISTORY_BACKEND must be one of memory, postgres, redis")
	}

	if config.Upload.MaxRows <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_ROWS must be positive")
	}
	if config.Scoring.MaxParallel <= 0 {
		return errors.ConfigInvalid("SCORING_MAX_PARALLEL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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
