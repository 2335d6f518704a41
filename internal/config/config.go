package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"invoicer/internal/logger"
)

type Config struct {
	// Data locations
	DataDir         string
	DatabasePath    string
	InvoicesDir     string
	CredentialsFile string
	TokenFile       string

	// Calendar Configuration
	DefaultCalendar string
	Timezone        string

	// Invoicing defaults
	DefaultCurrency string
	DefaultDueDays  int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	dataDir := getEnv("INVOICER_DATA_DIR", defaultDataDir())

	dueDays, err := strconv.Atoi(getEnv("INVOICER_DUE_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("INVOICER_DUE_DAYS must be an integer: %w", err)
	}

	config := &Config{
		DataDir:         dataDir,
		DatabasePath:    getEnv("INVOICER_DATABASE", filepath.Join(dataDir, "invoicer.db")),
		InvoicesDir:     getEnv("INVOICER_INVOICES_DIR", filepath.Join(dataDir, "invoices")),
		CredentialsFile: getEnv("INVOICER_CREDENTIALS_FILE", filepath.Join(dataDir, "credentials", "credentials.json")),
		TokenFile:       getEnv("INVOICER_TOKEN_FILE", filepath.Join(dataDir, "credentials", "token.json")),
		DefaultCalendar: getEnv("INVOICER_CALENDAR", "primary"),
		Timezone:        getEnv("INVOICER_TIMEZONE", "Asia/Kolkata"),
		DefaultCurrency: getEnv("INVOICER_CURRENCY", "INR"),
		DefaultDueDays:  dueDays,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:   getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:       getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("INVOICER_TIMEZONE %q is not a valid IANA timezone: %w", c.Timezone, err)
	}
	if c.DefaultDueDays < 0 {
		return fmt.Errorf("INVOICER_DUE_DAYS must not be negative")
	}
	return nil
}

// EnsureDirs creates the data, credentials and invoices directories if missing.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.InvoicesDir, filepath.Dir(c.TokenFile)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Location returns the configured timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".invoicer"
	}
	return filepath.Join(home, ".invoicer")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
