// Package render formats lookup results for the terminal and for JSON
// clients.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/pipeline"
)

// Text writes table as aligned columns with a header row. An empty table
// prints only the header.
func Text(w io.Writer, table *model.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	labels := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		labels[i] = c.Label
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	cells := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			cells[i] = textCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func textCell(v model.Value) string {
	if v.IsMissing() {
		return "-"
	}
	s := v.String()
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// LookupResponse is the wire form of a pipeline.Result.
type LookupResponse struct {
	ID         uuid.UUID    `json:"id"`
	Dataset    string       `json:"dataset"`
	Identifier string       `json:"identifier"`
	Status     string       `json:"status"`
	Outcome    string       `json:"outcome,omitempty"`
	Query      string       `json:"query,omitempty"`
	Truncated  bool         `json:"truncated,omitempty"`
	DurationMS int64        `json:"duration_ms"`
	Error      *ErrorBody   `json:"error,omitempty"`
	Table      *model.Table `json:"table,omitempty"`
}

// ErrorBody describes a failed stage.
type ErrorBody struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Lookup converts r into its wire form.
func Lookup(r pipeline.Result) LookupResponse {
	resp := LookupResponse{
		ID:         r.ID,
		Dataset:    r.Dataset.String(),
		Identifier: r.Identifier.Normalized(),
		Status:     r.Status.String(),
		Query:      describeQuery(r.Query),
		Truncated:  r.Truncated,
		DurationMS: r.Duration.Round(time.Millisecond).Milliseconds(),
		Table:      r.Table,
	}
	if r.Outcome != api.OutcomeNone {
		resp.Outcome = r.Outcome.String()
	}
	if r.Err != nil {
		resp.Error = &ErrorBody{Stage: r.Err.Stage.String(), Message: r.Err.Err.Error()}
	}
	return resp
}

// Summary writes a one-line description of r, followed by the table when
// there is one.
func Summary(w io.Writer, r pipeline.Result) error {
	switch r.Status {
	case pipeline.StatusNoQuery:
		_, err := fmt.Fprintf(w, "enter a %s to look up %s\n", r.Dataset.IdentifierKind(), r.Dataset)
		return err
	case pipeline.StatusFailed:
		_, err := fmt.Fprintf(w, "%s lookup for %s failed at %s: %v\n",
			r.Dataset, r.Identifier.Normalized(), r.Err.Stage, r.Err.Err)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s for %s: %d rows\n", r.Dataset, r.Identifier.Normalized(), r.Table.Len()); err != nil {
		return err
	}
	if r.Truncated {
		fmt.Fprintf(w, "results may be truncated at %d records\n", r.Query.PageCap)
	}
	return Text(w, r.Table)
}

func describeQuery(q model.Query) string {
	if q.Path == "" {
		return ""
	}
	if q.Structured() {
		return q.Method + " " + q.Path + " " + q.Filter.String()
	}
	if v := q.Values().Encode(); v != "" {
		return q.Method + " " + q.Path + "?" + v
	}
	return q.Method + " " + q.Path
}
