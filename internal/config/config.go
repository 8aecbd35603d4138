package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Host channel (WebSocket) configuration
	Host HostConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// CORS configuration for the action API
	CORS CORSConfig

	// Widget behaviour
	Widget WidgetConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// HostConfig holds settings for the single host connection.
type HostConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
	WriteWait       time.Duration
	PongWait        time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	SendBuffer      int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// WidgetConfig holds the widget's local rules.
type WidgetConfig struct {
	// SupportAuthor is the note author the host uses for staff replies.
	SupportAuthor        string
	MinSubjectLength     int
	MinDescriptionLength int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Host: HostConfig{
			AllowedOrigins:  getStringSliceOrDefault("HOST_ALLOWED_ORIGINS", []string{}),
			ReadBufferSize:  getIntOrDefault("HOST_READ_BUFFER_SIZE", 1024),
			WriteBufferSize: getIntOrDefault("HOST_WRITE_BUFFER_SIZE", 1024),
			WriteWait:       getDurationOrDefault("HOST_WRITE_WAIT", 10*time.Second),
			PongWait:        getDurationOrDefault("HOST_PONG_WAIT", 60*time.Second),
			PingInterval:    getDurationOrDefault("HOST_PING_INTERVAL", 54*time.Second),
			MaxMessageSize:  int64(getIntOrDefault("HOST_MAX_MESSAGE_SIZE", 1<<20)),
			SendBuffer:      getIntOrDefault("HOST_SEND_BUFFER", 256),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxAge:         getIntOrDefault("CORS_MAX_AGE", 300),
		},
		Widget: WidgetConfig{
			SupportAuthor:        getEnvOrDefault("WIDGET_SUPPORT_AUTHOR", "Support Team"),
			MinSubjectLength:     getIntOrDefault("WIDGET_MIN_SUBJECT_LENGTH", 5),
			MinDescriptionLength: getIntOrDefault("WIDGET_MIN_DESCRIPTION_LENGTH", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "supportdesk-widget"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	if c.Widget.SupportAuthor == "" {
		errs = append(errs, "WIDGET_SUPPORT_AUTHOR must not be empty")
	}

	// Security validations
	if c.IsProduction() {
		if len(c.Host.AllowedOrigins) == 0 {
			errs = append(errs, "HOST_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Logical validations
	if c.Host.PingInterval >= c.Host.PongWait {
		errs = append(errs, "HOST_PING_INTERVAL must be shorter than HOST_PONG_WAIT")
	}
	if c.Host.SendBuffer <= 0 {
		errs = append(errs, "HOST_SEND_BUFFER must be positive")
	}
	if c.Host.MaxMessageSize <= 0 {
		errs = append(errs, "HOST_MAX_MESSAGE_SIZE must be positive")
	}
	if c.Widget.MinSubjectLength < 0 || c.Widget.MinDescriptionLength < 0 {
		errs = append(errs, "widget minimum lengths cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a short representation of the config that is safe for
// logging.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, HostOrigins: %v, RateLimit: %v, Environment: %s}",
		c.Server.Port,
		c.Host.AllowedOrigins,
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}
