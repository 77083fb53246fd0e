package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. RESAMPLE_SERVER_HTTP_PORT=8080
const EnvPrefix = "RESAMPLE"

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")                    // Current directory
		v.AddConfigPath("./configs")            // Project configs directory
		v.AddConfigPath("/etc/soltix-resample") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Server defaults
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.body_limit", d.Server.BodyLimit)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout.String())

	// Resample defaults
	v.SetDefault("resample.default_aggregator", d.Resample.DefaultAggregator)
	v.SetDefault("resample.max_points", d.Resample.MaxPoints)
	v.SetDefault("resample.max_batch_size", d.Resample.MaxBatchSize)
	v.SetDefault("resample.batch_workers", d.Resample.BatchWorkers)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        5560,
			BodyLimit:       16 * 1024 * 1024,
			ShutdownTimeout: 10 * time.Second,
		},
		Resample: ResampleConfig{
			DefaultAggregator: "sum",
			MaxPoints:         1_000_000,
			MaxBatchSize:      64,
			BatchWorkers:      4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			TimeFormat: "RFC3339",
		},
	}
}
