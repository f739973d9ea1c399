package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/disclosure-data/internal/config"
)

// BuildConnString builds a PostgreSQL connection URL from config. An empty
// password is left out so libpq fallbacks such as .pgpass still apply.
func BuildConnString(cfg config.DBConfig) string {
	userInfo := url.QueryEscape(cfg.User)
	if cfg.Password != "" {
		userInfo += ":" + url.QueryEscape(cfg.Password)
	}

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = config.DefaultDBSSLMode
	}

	port := cfg.Port
	if port == 0 {
		port = config.DefaultDBPort
	}

	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s?sslmode=%s",
		userInfo,
		cfg.Host,
		port,
		cfg.Name,
		sslMode,
	)
}
