// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, storage, and reading defaults

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Storage contains persistence configuration
	Storage StorageConfig

	// Reading contains default reading-session parameters
	Reading ReadingConfig

	// TTS contains speech synthesis configuration
	TTS TTSConfig

	// Summary contains summarization backend configuration
	Summary SummaryConfig

	// LogLevel controls logger verbosity (debug/info/warn/error)
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// FetchTimeout is the article fetch timeout in seconds
	FetchTimeout int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	// SQLitePath is the database file path; ":memory:" for ephemeral
	SQLitePath string
}

// ReadingConfig holds default reading-session parameters
type ReadingConfig struct {
	// DefaultWPM seeds RSVP speed before any settings are stored
	DefaultWPM int
}

// TTSConfig holds speech synthesis configuration
type TTSConfig struct {
	// LanguageCode is the synthesis language (BCP-47)
	LanguageCode string

	// DefaultVoice is used when no voice is selected in settings
	DefaultVoice string
}

// SummaryConfig holds summarization backend configuration
type SummaryConfig struct {
	// OllamaHost is the local Ollama endpoint; empty disables summaries
	OllamaHost string

	// Model is the Ollama model used for summarization
	Model string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8000"),
			FetchTimeout: getEnvAsIntOrDefault("FETCH_TIMEOUT", 30),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
		Storage: StorageConfig{
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "pacereader.db"),
		},
		Reading: ReadingConfig{
			DefaultWPM: getEnvAsIntOrDefault("DEFAULT_WPM", 300),
		},
		TTS: TTSConfig{
			LanguageCode: getEnvOrDefault("TTS_LANGUAGE", "en-US"),
			DefaultVoice: getEnvOrDefault("TTS_VOICE", ""),
		},
		Summary: SummaryConfig{
			OllamaHost: getEnvOrDefault("OLLAMA_HOST", ""),
			Model:      getEnvOrDefault("OLLAMA_MODEL", "llama3"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.FetchTimeout < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Storage.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty")
	}

	if c.Reading.DefaultWPM < 60 || c.Reading.DefaultWPM > 1200 {
		return errors.New("default wpm must be between 60 and 1200")
	}

	return nil
}
