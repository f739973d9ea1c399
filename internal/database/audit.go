package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/disclosure-data/internal/pipeline"
)

// Execer runs a statement. *pgxpool.Pool and pgx.Tx satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createLookupsTable = `
	CREATE TABLE IF NOT EXISTS lookups (
		lookup_id   UUID PRIMARY KEY,
		dataset     TEXT NOT NULL,
		identifier  TEXT NOT NULL,
		status      TEXT NOT NULL,
		stage       TEXT,
		error       TEXT,
		row_count   INTEGER NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		duration_ms BIGINT NOT NULL
	)
`

const insertLookup = `
	INSERT INTO lookups (lookup_id, dataset, identifier, status, stage, error, row_count, started_at, duration_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (lookup_id) DO NOTHING
`

// AuditLog records lookup events in the lookups table. It implements
// pipeline.Recorder.
type AuditLog struct {
	db     Execer
	logger *slog.Logger
}

// NewAuditLog creates an AuditLog writing through db.
func NewAuditLog(db Execer, logger *slog.Logger) *AuditLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLog{db: db, logger: logger}
}

// EnsureSchema creates the lookups table if it does not exist.
func (a *AuditLog) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, createLookupsTable); err != nil {
		return fmt.Errorf("create lookups table: %w", err)
	}
	return nil
}

// RecordLookup inserts ev. Replaying an event with the same ID is a no-op.
func (a *AuditLog) RecordLookup(ctx context.Context, ev pipeline.LookupEvent) error {
	ct, err := a.db.Exec(ctx, insertLookup,
		ev.ID,
		ev.Dataset,
		ev.Identifier,
		ev.Status,
		nullable(ev.Stage),
		nullable(ev.Error),
		ev.Rows,
		ev.StartedAt,
		ev.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert lookup %s: %w", ev.ID, err)
	}
	if ct.RowsAffected() == 0 {
		a.logger.Debug("lookup already recorded", "lookup_id", ev.ID)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
