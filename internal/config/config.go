// Package config loads serbench settings from defaults, an optional YAML file, .env
// files and SERBENCH_* environment variables, in increasing order of precedence.
// Command-line flags bound to the viper instance take precedence over all of them.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/arloliu/serbench/format"
	"github.com/arloliu/serbench/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SERBENCH"

// Config holds all configuration for serbench.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Bench     BenchConfig     `mapstructure:"bench"`
	Generator GeneratorConfig `mapstructure:"generator"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds Prometheus endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// BenchConfig holds measurement pipeline configuration.
type BenchConfig struct {
	Compressors []string `mapstructure:"compressors"`
	Parallel    bool     `mapstructure:"parallel"`
	SinkBuffer  int      `mapstructure:"sink_buffer"`
}

// GeneratorConfig holds record generation configuration. A zero seed keeps generation
// unseeded.
type GeneratorConfig struct {
	Seed int64 `mapstructure:"seed"`
}

// RateLimitConfig holds rate limiter configuration.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// Load reads configuration into v and decodes it. configPath may be empty.
//
// A missing .env, .env.local or default config file is not an error; a configPath that
// cannot be read is.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("serbench")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// SetDefaults sets default configuration values.
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Pipeline defaults
	v.SetDefault("bench.compressors", []string{"gzip", "brotli", "zstd"})
	v.SetDefault("bench.parallel", true)
	v.SetDefault("bench.sink_buffer", 1024)

	v.SetDefault("generator.seed", 0)

	// Rate limiter defaults
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 50.0)
	v.SetDefault("rate_limit.burst", 100)
}

// CompressionTypes parses Bench.Compressors.
func (c *Config) CompressionTypes() ([]format.CompressionType, error) {
	return format.ParseCompressions(c.Bench.Compressors)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server address is required")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Format) {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path)
	}

	types, err := c.CompressionTypes()
	if err != nil {
		return err
	}
	if len(types) == 0 {
		return errors.New("at least one compressor is required")
	}

	if c.Bench.SinkBuffer <= 0 {
		return fmt.Errorf("sink buffer must be positive: %d", c.Bench.SinkBuffer)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return errors.New("rate limit requests per second must be positive")
		}
		if c.RateLimit.Burst <= 0 {
			return errors.New("rate limit burst must be positive")
		}
	}

	return nil
}
