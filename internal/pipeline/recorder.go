package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LookupEvent summarizes one lookup for audit. It carries no fetched records.
type LookupEvent struct {
	ID         uuid.UUID
	Dataset    string
	Identifier string
	Status     string
	Stage      string // empty unless Status is failed
	Error      string
	Rows       int
	StartedAt  time.Time
	Duration   time.Duration
}

// Recorder receives one event per lookup.
type Recorder interface {
	RecordLookup(ctx context.Context, ev LookupEvent) error
}

func newEvent(r Result, started time.Time) LookupEvent {
	ev := LookupEvent{
		ID:         r.ID,
		Dataset:    r.Dataset.String(),
		Identifier: r.Identifier.Normalized(),
		Status:     r.Status.String(),
		StartedAt:  started,
		Duration:   r.Duration,
	}
	if r.Table != nil {
		ev.Rows = r.Table.Len()
	}
	if r.Err != nil {
		ev.Stage = r.Err.Stage.String()
		ev.Error = r.Err.Err.Error()
	}
	return ev
}
