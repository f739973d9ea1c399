package config

import (
	"time"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/query"
)

// Default values for optional configuration fields.
const (
	DefaultQuiverURL    = api.DefaultQuiverURL
	DefaultSECAPIURL    = api.DefaultSECAPIURL
	DefaultBurst        = 1
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultRetryBackoff = 1 * time.Second
	DefaultHoldingsPage = query.HoldingsPageCap
	DefaultFilingLag    = query.DefaultFilingLag
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultServerAddr   = ":8080"
)

func (c *Config) applyDefaults() {
	// Service defaults
	if c.Quiver.BaseURL == "" {
		c.Quiver.BaseURL = DefaultQuiverURL
	}
	if c.SECAPI.BaseURL == "" {
		c.SECAPI.BaseURL = DefaultSECAPIURL
	}
	applyBurstDefault(&c.Quiver)
	applyBurstDefault(&c.SECAPI)

	// HTTP defaults
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultHTTPTimeout
	}
	if c.HTTP.RetryBackoff == 0 {
		c.HTTP.RetryBackoff = DefaultRetryBackoff
	}

	// Holdings defaults
	if c.Holdings.PageSize == 0 {
		c.Holdings.PageSize = DefaultHoldingsPage
	}
	if c.Holdings.FilingLag == 0 {
		c.Holdings.FilingLag = DefaultFilingLag
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	// Audit database defaults
	applyDBDefaults(&c.Audit.Database)

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

func applyBurstDefault(s *ServiceConfig) {
	if s.RateLimit > 0 && s.Burst == 0 {
		s.Burst = DefaultBurst
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
}
