package model

import "encoding/json"

// RawResult is an upstream response before normalization.
type RawResult struct {
	Dataset DatasetKind
	Records []json.RawMessage // each a JSON object with no fixed schema
	Body    []byte            // full response body, kept for diagnostics
}

// Empty reports whether the service answered with zero records.
func (r RawResult) Empty() bool { return len(r.Records) == 0 }
