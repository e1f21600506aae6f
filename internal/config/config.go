package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (series/scholar catalog)
	Database DatabaseConfig

	// AI provider configuration
	OpenAI OpenAIConfig

	// Admin credential configuration
	Admin AdminConfig

	// Publish configuration
	Publish PublishConfig

	// Generation status store configuration
	Status StatusConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// OpenAIConfig holds text-completion and transcription provider settings
type OpenAIConfig struct {
	APIKey             string
	BaseURL            string
	CompletionModel    string
	RegenerationModel  string
	TranscriptionModel string
	RequestTimeout     time.Duration
	StageTimeout       time.Duration
}

// AdminConfig holds the server-side admin credential
type AdminConfig struct {
	Secret string
}

// PublishConfig holds durable-store and local-mirror settings
type PublishConfig struct {
	BlobTokenEnv string // env var name holding the blob read/write token
	IndexKey     string // fixed object key for the series index
	DataDir      string // local mirror root (best-effort fallback)
}

// StatusConfig holds the generation run-status store settings
type StatusConfig struct {
	RedisURL string        // empty means in-memory store
	TTL      time.Duration // how long finished runs remain visible
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional; deployments usually set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 300*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "companion_pipeline"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			BaseURL:            getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			CompletionModel:    getEnv("OPENAI_COMPLETION_MODEL", "gpt-4o"),
			RegenerationModel:  getEnv("OPENAI_REGENERATION_MODEL", "gpt-4o-mini"),
			TranscriptionModel: getEnv("OPENAI_TRANSCRIPTION_MODEL", "whisper-1"),
			RequestTimeout:     getDurationEnv("OPENAI_REQUEST_TIMEOUT", 90*time.Second),
			StageTimeout:       getDurationEnv("GENERATION_STAGE_TIMEOUT", 5*time.Minute),
		},
		Admin: AdminConfig{
			Secret: getEnv("ADMIN_SECRET", ""),
		},
		Publish: PublishConfig{
			BlobTokenEnv: getEnv("BLOB_TOKEN_ENV", "BLOB_READ_WRITE_TOKEN"),
			IndexKey:     getEnv("PUBLISH_INDEX_KEY", "series-index.json"),
			DataDir:      getEnv("PUBLISH_DATA_DIR", "./public/data"),
		},
		Status: StatusConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getDurationEnv("GENERATION_STATUS_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Publish.IndexKey == "" {
		return fmt.Errorf("PUBLISH_INDEX_KEY must not be empty")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
