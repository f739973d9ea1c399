package normalize

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/rickgao/disclosure-data/internal/model"
)

type options struct {
	diagnostics bool
	logger      *slog.Logger
}

// Option configures Normalize.
type Option func(*options)

// WithDiagnostics attaches a Diagnostics block, including the raw payload,
// to the returned table.
func WithDiagnostics(enabled bool) Option {
	return func(o *options) { o.diagnostics = enabled }
}

// WithLogger sets the logger used to report schema mismatches.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Normalize converts raw into a table for kind. It never fails: an empty
// result yields a header-only table of every recognized column.
func Normalize(raw model.RawResult, kind model.DatasetKind, opts ...Option) *model.Table {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	schema := SchemaFor(kind)
	rows := flattenRecords(raw.Records, schema)
	present := presentKeys(rows)

	table := &model.Table{Dataset: kind}
	fallback := false

	switch {
	case len(present) == 0:
		// Records without a single field count as no records.
		rows = nil
		table.Columns = schema.Columns
	default:
		table.Columns = intersect(schema.Columns, present)
		if len(table.Columns) == 0 {
			fallback = true
			table.Columns = inferColumns(rows, present)
			o.logger.Warn("payload has no recognized columns, showing all fields",
				"dataset", kind.String(),
				"records", len(raw.Records),
				"fields", len(present))
		}
	}

	table.Rows = make([]model.Row, 0, len(rows))
	for _, r := range rows {
		row := make(model.Row, len(table.Columns))
		for i, c := range table.Columns {
			v, ok := r.get(c.Key)
			row[i] = coerce(v, ok, c.Type)
		}
		table.Rows = append(table.Rows, row)
	}

	if schema.SortBy != "" {
		if idx := table.ColumnIndex(schema.SortBy); idx >= 0 {
			sortDescending(table.Rows, idx)
			table.SortedBy = schema.SortBy
		}
	}

	if o.diagnostics {
		table.Diagnostics = diagnose(raw, schema, present, fallback)
	}
	return table
}

func intersect(columns []model.Column, present []string) []model.Column {
	seen := make(map[string]bool, len(present))
	for _, k := range present {
		seen[k] = true
	}
	var out []model.Column
	for _, c := range columns {
		if seen[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// inferColumns builds a column per present key. A key is numeric when every
// non-null value under it is a JSON number.
func inferColumns(rows []*flatRecord, present []string) []model.Column {
	out := make([]model.Column, 0, len(present))
	for _, key := range present {
		typ := model.NumberColumn
		for _, r := range rows {
			v, ok := r.get(key)
			if ok && v.Type != gjson.Null && v.Type != gjson.Number {
				typ = model.StringColumn
				break
			}
		}
		out = append(out, model.Column{Key: key, Label: key, Type: typ})
	}
	return out
}

// sortDescending orders rows by column idx, largest first. Missing values
// sort last; ties keep their upstream order.
func sortDescending(rows []model.Row, idx int) {
	slices.SortStableFunc(rows, func(a, b model.Row) int {
		av, bv := a[idx], b[idx]
		switch {
		case av.IsMissing() && bv.IsMissing():
			return 0
		case av.IsMissing():
			return 1
		case bv.IsMissing():
			return -1
		}
		return bv.Num.Cmp(av.Num)
	})
}

func diagnose(raw model.RawResult, s Schema, present []string, fallback bool) *model.Diagnostics {
	d := &model.Diagnostics{
		RawRecords:  len(raw.Records),
		PresentKeys: present,
		Fallback:    fallback,
	}
	seen := make(map[string]bool, len(present))
	for _, k := range present {
		seen[k] = true
		if !s.Recognized(k) {
			d.Unrecognized = append(d.Unrecognized, k)
		}
	}
	for _, c := range s.Columns {
		if !seen[c.Key] {
			d.AbsentKeys = append(d.AbsentKeys, c.Key)
		}
	}
	if len(raw.Body) > 0 && gjson.ValidBytes(raw.Body) {
		d.Payload = json.RawMessage(raw.Body)
	}
	return d
}
