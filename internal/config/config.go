package config

import (
	"fmt"
	"time"

	"github.com/soltixdb/soltix-resample/internal/aggregation"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Resample ResampleConfig `mapstructure:"resample"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`             // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort        int           `mapstructure:"http_port"`        // HTTP server port
	BodyLimit       int           `mapstructure:"body_limit"`       // Max request body in bytes
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Graceful shutdown deadline
}

// ResampleConfig represents limits and defaults for resample requests
type ResampleConfig struct {
	DefaultAggregator string `mapstructure:"default_aggregator"` // Used when a request names none
	MaxPoints         int    `mapstructure:"max_points"`         // Max source points per request
	MaxBatchSize      int    `mapstructure:"max_batch_size"`     // Max series per batch request
	BatchWorkers      int    `mapstructure:"batch_workers"`      // Series resampled concurrently per batch
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Resample.Validate(); err != nil {
		return fmt.Errorf("resample config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.BodyLimit <= 0 {
		return fmt.Errorf("body_limit must be positive")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}

	return nil
}

// Validate validates resample configuration
func (c *ResampleConfig) Validate() error {
	if !aggregation.IsValid(c.DefaultAggregator) {
		return fmt.Errorf("resample.default_aggregator must be one of: %v", aggregation.ValidNames())
	}

	if c.MaxPoints <= 0 {
		return fmt.Errorf("resample.max_points must be positive")
	}

	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("resample.max_batch_size must be positive")
	}

	if c.BatchWorkers <= 0 {
		return fmt.Errorf("resample.batch_workers must be positive")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
