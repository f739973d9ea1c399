package model

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Term is a single field match in a filter expression.
type Term struct {
	Field string
	Value string
}

// Filter is a conjunction of terms.
type Filter struct {
	Terms []Term
}

// String renders the filter in the Lucene-style syntax used by sec-api.io,
// e.g. "cik:0001067983 AND periodOfReport:2024-03-31".
func (f Filter) String() string {
	parts := make([]string, 0, len(f.Terms))
	for _, t := range f.Terms {
		parts = append(parts, t.Field+":"+t.Value)
	}
	return strings.Join(parts, " AND ")
}

// IsZero reports whether the filter has no terms.
func (f Filter) IsZero() bool { return len(f.Terms) == 0 }

// Param is one URL query parameter. Params keep their build order.
type Param struct {
	Key   string
	Value string
}

// SortKey orders structured query results.
type SortKey struct {
	Field      string
	Descending bool
}

// Query describes one upstream request. Build it once, then treat it as
// read-only.
type Query struct {
	Dataset DatasetKind
	Service Service
	Method  string
	Path    string
	Params  []Param

	// Structured search (sec-api.io). Zero Filter means a plain GET.
	Filter Filter
	From   int
	Size   int // 0 = service default
	Sort   []SortKey

	// ResultPath is the gjson path of the record array in the response.
	// Empty means the root is the array.
	ResultPath string

	// PageCap is the service's hard per-call record limit, 0 if undocumented.
	// A response of exactly PageCap records may be truncated.
	PageCap int
}

// Structured reports whether the query is sent as a JSON search body.
func (q Query) Structured() bool { return !q.Filter.IsZero() }

// Values returns the query parameters as url.Values.
func (q Query) Values() url.Values {
	if len(q.Params) == 0 {
		return nil
	}
	v := make(url.Values, len(q.Params))
	for _, p := range q.Params {
		v.Add(p.Key, p.Value)
	}
	return v
}

type sortOrder struct {
	Order string `json:"order"`
}

type searchBody struct {
	Query string                 `json:"query"`
	From  string                 `json:"from,omitempty"`
	Size  string                 `json:"size,omitempty"`
	Sort  []map[string]sortOrder `json:"sort,omitempty"`
}

// Body returns the JSON search body for structured queries, nil otherwise.
func (q Query) Body() ([]byte, error) {
	if !q.Structured() {
		return nil, nil
	}

	b := searchBody{Query: q.Filter.String()}
	if q.Size > 0 {
		b.From = strconv.Itoa(q.From)
		b.Size = strconv.Itoa(q.Size)
	}
	for _, s := range q.Sort {
		order := "asc"
		if s.Descending {
			order = "desc"
		}
		b.Sort = append(b.Sort, map[string]sortOrder{s.Field: {Order: order}})
	}

	return json.Marshal(b)
}

// MayBeTruncated reports whether n returned records could be a capped page.
func (q Query) MayBeTruncated(n int) bool {
	return q.PageCap > 0 && n >= q.PageCap
}
