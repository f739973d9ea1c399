package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rickgao/disclosure-data/internal/query"
)

// Validate checks that all required fields are set and values are valid.
// Missing API keys are not an error here; lookups report them per dataset.
func (c *Config) Validate() error {
	if c.Quiver.APIKey != "" && c.Quiver.APIKeyFile != "" {
		return errors.New("quiver: set api_key or api_key_file, not both")
	}
	if c.SECAPI.APIKey != "" && c.SECAPI.APIKeyFile != "" {
		return errors.New("sec_api: set api_key or api_key_file, not both")
	}
	if err := c.Quiver.validate("quiver"); err != nil {
		return err
	}
	if err := c.SECAPI.validate("sec_api"); err != nil {
		return err
	}

	if c.HTTP.Timeout < 0 {
		return errors.New("http.timeout must be >= 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return errors.New("http.max_retries must be >= 0")
	}

	if c.Holdings.PageSize < 1 || c.Holdings.PageSize > query.HoldingsPageCap {
		return fmt.Errorf("holdings.page_size must be between 1 and %d, got %d",
			query.HoldingsPageCap, c.Holdings.PageSize)
	}
	if p := c.Holdings.PeriodOfReport; p != "" {
		if _, err := time.Parse(query.PeriodLayout, p); err != nil {
			return fmt.Errorf("holdings.period_of_report %q must be YYYY-MM-DD", p)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}

	if c.Audit.Enabled {
		if err := c.Audit.Database.validate("audit.database"); err != nil {
			return err
		}
	}

	return nil
}

func (s *ServiceConfig) validate(prefix string) error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s.base_url %q must be an absolute URL", prefix, s.BaseURL)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("%s.rate_limit must be >= 0", prefix)
	}
	if s.Burst < 0 {
		return fmt.Errorf("%s.burst must be >= 0", prefix)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
