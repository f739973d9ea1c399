package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/identifier"
	"github.com/rickgao/disclosure-data/internal/model"
)

// Stage names a pipeline step.
type Stage int

// Identifier normalization and result normalization cannot fail, so they
// have no stage.
const (
	StageCredentials Stage = iota
	StageBuild
	StageFetch
)

func (s Stage) String() string {
	switch s {
	case StageCredentials:
		return "credentials"
	case StageBuild:
		return "build"
	case StageFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// StageError is the error of a failed lookup, tagged with the stage it
// failed in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Status is the overall state of a lookup.
type Status int

const (
	// StatusNoQuery means the input normalized to nothing and no call was made.
	StatusNoQuery Status = iota
	StatusSuccess
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNoQuery:
		return "no_query"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of one lookup. Table is nil unless Status is
// StatusSuccess or StatusEmpty.
type Result struct {
	ID         uuid.UUID
	Dataset    model.DatasetKind
	Status     Status
	Identifier identifier.Identifier
	Query      model.Query
	Outcome    api.Outcome
	Table      *model.Table
	Err        *StageError

	// Truncated is set when the record count reached the query's page cap.
	Truncated bool
	Duration  time.Duration
}

// Failed reports whether the lookup ended in an error.
func (r Result) Failed() bool { return r.Status == StatusFailed }

