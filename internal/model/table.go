package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnType is the target type a column's values are coerced to.
type ColumnType int

const (
	StringColumn ColumnType = iota
	NumberColumn
	DateColumn
)

func (t ColumnType) String() string {
	switch t {
	case NumberColumn:
		return "number"
	case DateColumn:
		return "date"
	default:
		return "string"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Column is one table column. Key is the flattened dot-notation field path.
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Type  ColumnType `json:"type"`
}

// ValueKind tags a Value.
type ValueKind int

const (
	Missing ValueKind = iota
	StringValue
	NumberValue
	DateValue
)

// DateLayout is the display layout for date values.
const DateLayout = "2006-01-02"

// Value is a single coerced table cell. The zero Value is Missing.
type Value struct {
	Kind ValueKind
	Str  string
	Num  decimal.Decimal
	Date time.Time
}

// Str returns a string cell value.
func Str(s string) Value { return Value{Kind: StringValue, Str: s} }

// Number returns a numeric cell value.
func Number(d decimal.Decimal) Value { return Value{Kind: NumberValue, Num: d} }

// Date returns a date cell value.
func Date(t time.Time) Value { return Value{Kind: DateValue, Date: t} }

// IsMissing reports whether the upstream did not supply a usable value.
func (v Value) IsMissing() bool { return v.Kind == Missing }

// String renders the value for display. Missing renders as "".
func (v Value) String() string {
	switch v.Kind {
	case StringValue:
		return v.Str
	case NumberValue:
		return v.Num.String()
	case DateValue:
		return v.Date.Format(DateLayout)
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers and Missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case NumberValue:
		return []byte(v.Num.String()), nil
	case Missing:
		return []byte("null"), nil
	default:
		return json.Marshal(v.String())
	}
}

// Row holds one value per table column, in column order.
type Row []Value

// Diagnostics describes how a table was derived from its raw payload.
type Diagnostics struct {
	RawRecords   int             `json:"raw_records"`
	PresentKeys  []string        `json:"present_keys"`
	Unrecognized []string        `json:"unrecognized_keys"`
	AbsentKeys   []string        `json:"absent_recognized_keys"`
	Fallback     bool            `json:"fallback"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// Table is a normalized record set for one lookup.
type Table struct {
	Dataset     DatasetKind  `json:"dataset"`
	Columns     []Column     `json:"columns"`
	Rows        []Row        `json:"rows"`
	SortedBy    string       `json:"sorted_by,omitempty"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the index of the column with key, or -1.
func (t *Table) ColumnIndex(key string) int {
	for i, c := range t.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Cell returns the value at row i for column key. Unknown columns are Missing.
func (t *Table) Cell(i int, key string) Value {
	j := t.ColumnIndex(key)
	if j < 0 || i < 0 || i >= len(t.Rows) {
		return Value{}
	}
	return t.Rows[i][j]
}
