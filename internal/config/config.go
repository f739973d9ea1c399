package config

import "time"

// Config is the root configuration for the tracker.
type Config struct {
	Quiver    ServiceConfig   `yaml:"quiver"`
	SECAPI    ServiceConfig   `yaml:"sec_api"`
	HTTP      HTTPConfig      `yaml:"http"`
	Holdings  HoldingsConfig  `yaml:"holdings"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Logging   LoggingConfig   `yaml:"logging"`
	Audit     AuditConfig     `yaml:"audit"`
	Server    ServerConfig    `yaml:"server"`
}

// ServiceConfig holds one upstream disclosure service.
type ServiceConfig struct {
	BaseURL    string  `yaml:"base_url"`
	APIKey     string  `yaml:"api_key"`
	APIKeyFile string  `yaml:"api_key_file"` // read when api_key is empty
	RateLimit  float64 `yaml:"rate_limit"`   // requests per second, 0 = unlimited
	Burst      int     `yaml:"burst"`
}

// HTTPConfig holds client settings shared by both services.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"` // 0 disables retries
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// HoldingsConfig tunes 13F holdings queries.
type HoldingsConfig struct {
	PageSize       int           `yaml:"page_size"`
	PeriodOfReport string        `yaml:"period_of_report"` // empty = latest filed quarter
	FilingLag      time.Duration `yaml:"filing_lag"`
}

// NormalizeConfig holds Result Normalizer settings.
type NormalizeConfig struct {
	Diagnostics bool `yaml:"diagnostics"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// AuditConfig enables the Postgres lookup audit log.
type AuditConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Database DBConfig `yaml:"database"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ServerConfig holds the HTTP server settings for tracker serve.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}
