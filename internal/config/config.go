package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	Alerter AlerterConfig
	SMTP    SMTPConfig
	Metrics MetricsConfig
}

// AlerterConfig holds the exchange, input and rule configuration
type AlerterConfig struct {
	Symbols     []string
	UpdatesFile string
	RulesFile   string // optional; no alerts are wired when empty
	ShortWindow int
	LongWindow  int
	StopOnError bool
}

// SMTPConfig holds the mail server used by email actions
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// MetricsConfig holds the metrics/health HTTP server configuration
type MetricsConfig struct {
	Port            int // 0 disables the server
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Alerter: AlerterConfig{
			Symbols:     getEnvAsStringSlice("ALERTER_SYMBOLS", []string{}),
			UpdatesFile: getEnv("ALERTER_UPDATES_FILE", ""),
			RulesFile:   getEnv("ALERTER_RULES_FILE", ""),
			ShortWindow: getEnvAsInt("ALERTER_SHORT_WINDOW", 5),
			LongWindow:  getEnvAsInt("ALERTER_LONG_WINDOW", 10),
			StopOnError: getEnvAsBool("ALERTER_STOP_ON_ERROR", true),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "email.stocks.com"),
			Port: getEnvAsInt("SMTP_PORT", 25),
			From: getEnv("SMTP_FROM", "alerts@stocks.com"),
		},
		Metrics: MetricsConfig{
			Port:            getEnvAsInt("METRICS_PORT", 0),
			ShutdownTimeout: getEnvAsDuration("METRICS_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Alerter.Symbols) == 0 {
		return fmt.Errorf("ALERTER_SYMBOLS must contain at least one symbol")
	}
	if c.Alerter.UpdatesFile == "" {
		return fmt.Errorf("ALERTER_UPDATES_FILE is required")
	}
	if c.Alerter.ShortWindow < 1 {
		return fmt.Errorf("ALERTER_SHORT_WINDOW must be positive")
	}
	if c.Alerter.ShortWindow >= c.Alerter.LongWindow {
		return fmt.Errorf("ALERTER_SHORT_WINDOW (%d) must be less than ALERTER_LONG_WINDOW (%d)",
			c.Alerter.ShortWindow, c.Alerter.LongWindow)
	}
	if strings.ContainsAny(c.SMTP.From, "\r\n") {
		return fmt.Errorf("SMTP_FROM must not contain line breaks")
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535")
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 0 and 65535")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Split by comma and trim spaces
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
