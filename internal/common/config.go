// Package common provides shared utilities for WealthFlow
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage backend names accepted in [storage] backend.
const (
	BackendBadger    = "badger"
	BackendSurrealDB = "surrealdb"
	BackendFile      = "file"
)

// Monthly scope names accepted in [metrics] monthly_scope.
const (
	MonthlyScopeAll   = "all"
	MonthlyScopeMonth = "month"
)

// Config holds all configuration for WealthFlow
type Config struct {
	Environment string          `toml:"environment"`
	Storage     StorageConfig   `toml:"storage"`
	Simulator   SimulatorConfig `toml:"simulator"`
	Metrics     MetricsConfig   `toml:"metrics"`
	Clients     ClientsConfig   `toml:"clients"`
	Auth        AuthConfig      `toml:"auth"`
	Logging     LoggingConfig   `toml:"logging"`
}

// StorageConfig selects the key-value backend used for the snapshot record.
type StorageConfig struct {
	Backend   string          `toml:"backend"` // "badger" (default), "surrealdb" or "file"
	Key       string          `toml:"key"`     // record key for the snapshot
	Badger    AreaConfig      `toml:"badger"`
	File      AreaConfig      `toml:"file"`
	SurrealDB SurrealDBConfig `toml:"surrealdb"`
}

// AreaConfig holds path configuration for a local storage backend.
type AreaConfig struct {
	Path string `toml:"path"`
}

// SurrealDBConfig holds connection settings for the SurrealDB backend.
type SurrealDBConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// SimulatorConfig controls the demo price simulator.
type SimulatorConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

// GetInterval parses and returns the tick interval
func (c *SimulatorConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// MetricsConfig holds derived-metric settings.
type MetricsConfig struct {
	HomeCurrency string  `toml:"home_currency"`
	USDRate      float64 `toml:"usd_rate"`      // fixed USD -> home currency factor, never fetched live
	MonthlyScope string  `toml:"monthly_scope"` // "all" sums every transaction, "month" only the current month
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per minute
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AuthConfig holds the shared secret used to verify identity tokens.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	Issuer      string `toml:"issuer"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Backend: BackendBadger,
			Key:     "wealthflow_state",
			Badger:  AreaConfig{Path: "data/badger"},
			File:    AreaConfig{Path: "data/state"},
			SurrealDB: SurrealDBConfig{
				Address:   "ws://localhost:8000/rpc",
				Namespace: "wealthflow",
				Database:  "wealthflow",
				Username:  "root",
				Password:  "root",
			},
		},
		Simulator: SimulatorConfig{
			Enabled:  true,
			Interval: "5s",
		},
		Metrics: MetricsConfig{
			HomeCurrency: "TWD",
			USDRate:      31,
			MonthlyScope: MonthlyScopeAll,
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-2.5-flash",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			Issuer:      "wealthflow",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	normalize(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("WEALTHFLOW_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("WEALTHFLOW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("WEALTHFLOW_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = strings.ToLower(backend)
	}

	if path := os.Getenv("WEALTHFLOW_DATA_PATH"); path != "" {
		config.Storage.Badger.Path = path + "/badger"
		config.Storage.File.Path = path + "/state"
	}

	if addr := os.Getenv("WEALTHFLOW_SURREALDB_ADDRESS"); addr != "" {
		config.Storage.SurrealDB.Address = addr
	}

	if interval := os.Getenv("WEALTHFLOW_SIMULATOR_INTERVAL"); interval != "" {
		config.Simulator.Interval = interval
	}

	if rate := os.Getenv("WEALTHFLOW_USD_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil && r > 0 {
			config.Metrics.USDRate = r
		}
	}

	if scope := os.Getenv("WEALTHFLOW_MONTHLY_SCOPE"); scope != "" {
		config.Metrics.MonthlyScope = strings.ToLower(scope)
	}

	// Gemini key: dedicated variable first, then the generic API_KEY the web client used
	if key := os.Getenv("WEALTHFLOW_GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}

	if v := os.Getenv("WEALTHFLOW_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
}

// normalize fixes up values that would otherwise break downstream components.
func normalize(config *Config) {
	config.Storage.Backend = strings.ToLower(strings.TrimSpace(config.Storage.Backend))
	if config.Storage.Backend == "" {
		config.Storage.Backend = BackendBadger
	}
	if config.Storage.Key == "" {
		config.Storage.Key = "wealthflow_state"
	}
	if config.Metrics.USDRate <= 0 {
		config.Metrics.USDRate = 31
	}
	config.Metrics.HomeCurrency = strings.ToUpper(config.Metrics.HomeCurrency)
	if config.Metrics.HomeCurrency == "" {
		config.Metrics.HomeCurrency = "TWD"
	}
	switch config.Metrics.MonthlyScope {
	case MonthlyScopeAll, MonthlyScopeMonth:
	default:
		config.Metrics.MonthlyScope = MonthlyScopeAll
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
