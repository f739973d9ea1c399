package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/disclosure-data/internal/config"
	"github.com/rickgao/disclosure-data/internal/database"
	"github.com/rickgao/disclosure-data/internal/pipeline"
	"github.com/rickgao/disclosure-data/internal/query"
)

// deps are the long-lived pieces shared by lookup and serve.
type deps struct {
	service *pipeline.Service
	pool    *pgxpool.Pool // nil unless audit is enabled
}

func (d *deps) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// newDeps wires config into a pipeline Service, connecting the audit log
// when enabled.
func newDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*deps, error) {
	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}
	logger.Debug("credentials loaded", "quiver", creds.Quiver, "sec_api", creds.SECAPI)

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithDiagnostics(cfg.Normalize.Diagnostics),
		pipeline.WithFilingLag(cfg.Holdings.FilingLag),
		pipeline.WithQueryOptions(query.Options{
			PageSize: cfg.Holdings.PageSize,
			Period:   cfg.Holdings.PeriodOfReport,
		}),
	}

	d := &deps{}
	if cfg.Audit.Enabled {
		logger.Info("connecting to audit database",
			"host", cfg.Audit.Database.Host,
			"port", cfg.Audit.Database.Port,
			"database", cfg.Audit.Database.Name,
		)
		pool, err := database.Connect(ctx, cfg.Audit.Database)
		if err != nil {
			return nil, fmt.Errorf("connect audit database: %w", err)
		}
		audit := database.NewAuditLog(pool, logger)
		if err := audit.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		d.pool = pool
		opts = append(opts, pipeline.WithRecorder(audit))
	}

	d.service = pipeline.New(newFetcher(cfg, logger), creds, opts...)
	return d, nil
}
