// Package config loads runtime configuration for the leafwall server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage mode values accepted by STORAGE_MODE.
const (
	StorageModeFile   = "file"
	StorageModeMemory = "memory"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects the persistence strategy for leaf records.
type StorageConfig struct {
	Mode    string `yaml:"mode"` // "file" or "memory"
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig mirrors pkg/logger.LoggingConfig for YAML/env loading.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// RateLimitConfig bounds request rates per client IP.
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// Config is the full runtime configuration.
type Config struct {
	Environment string          `yaml:"environment"`
	Server      ServerConfig    `yaml:"server"`
	Storage     StorageConfig   `yaml:"storage"`
	Logging     LoggingConfig   `yaml:"logging"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	StaticDir   string          `yaml:"static_dir"`
	CORSOrigins []string        `yaml:"cors_origins"`
	BodyLimit   int64           `yaml:"body_limit"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Environment: "development",
		Server:      ServerConfig{Host: "0.0.0.0", Port: 3000},
		Storage:     StorageConfig{Mode: StorageModeFile, DataDir: "data"},
		Logging:     LoggingConfig{Level: "info", Format: "text", Output: "stdout"},
		RateLimit:   RateLimitConfig{RequestsPerSecond: 20, Burst: 40},
		StaticDir:   "web/static",
		CORSOrigins: []string{"*"},
		BodyLimit:   1 << 20, // 1 MiB
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// LEAFWALL_CONFIG, and environment variable overrides, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("LEAFWALL_CONFIG")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LEAFWALL_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("STORAGE_MODE"); v != "" {
		c.Storage.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.Atoi(v); err == nil {
			c.RateLimit.RequestsPerSecond = rps
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil {
			c.RateLimit.Burst = burst
		}
	}
	if v := os.Getenv("BODY_LIMIT_BYTES"); v != "" {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.BodyLimit = limit
		}
	}
}

// Validate checks invariants the rest of the system relies on.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	switch c.Storage.Mode {
	case StorageModeFile, StorageModeMemory:
	default:
		return fmt.Errorf("invalid storage mode %q (want %q or %q)", c.Storage.Mode, StorageModeFile, StorageModeMemory)
	}
	if c.Storage.Mode == StorageModeFile && strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("data_dir is required in file storage mode")
	}
	return nil
}

// IsProduction reports whether the server runs with the production profile.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
