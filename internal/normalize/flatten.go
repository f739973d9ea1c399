package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

type field struct {
	key   string
	value gjson.Result
}

// flatRecord is one row's fields keyed by dot-notation path, in document order.
type flatRecord struct {
	fields []field
	index  map[string]int
}

func newFlatRecord() *flatRecord {
	return &flatRecord{index: make(map[string]int)}
}

func (r *flatRecord) set(key string, v gjson.Result) {
	if i, ok := r.index[key]; ok {
		r.fields[i].value = v
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, field{key: key, value: v})
}

func (r *flatRecord) get(key string) (gjson.Result, bool) {
	i, ok := r.index[key]
	if !ok {
		return gjson.Result{}, false
	}
	return r.fields[i].value, true
}

func (r *flatRecord) clone() *flatRecord {
	c := &flatRecord{
		fields: append([]field(nil), r.fields...),
		index:  make(map[string]int, len(r.index)),
	}
	for k, v := range r.index {
		c.index[k] = v
	}
	return c
}

// flattenInto walks obj, adding leaves to out. Arrays stay whole. The key
// skip, if non-empty, is left out.
func flattenInto(out *flatRecord, obj gjson.Result, prefix, skip string) {
	obj.ForEach(func(k, v gjson.Result) bool {
		key := prefix + k.String()
		switch {
		case key == skip:
		case v.IsObject():
			flattenInto(out, v, key+".", skip)
		default:
			out.set(key, v)
		}
		return true
	})
}

// flattenRecords flattens raw objects into rows, exploding the schema's
// child array when configured.
func flattenRecords(records []json.RawMessage, s Schema) []*flatRecord {
	rows := make([]*flatRecord, 0, len(records))
	for _, rec := range records {
		obj := gjson.ParseBytes(rec)
		if !obj.IsObject() {
			continue
		}

		if s.Explode == "" {
			base := newFlatRecord()
			flattenInto(base, obj, "", "")
			rows = append(rows, base)
			continue
		}

		children := obj.Get(s.Explode)
		base := newFlatRecord()
		skip := ""
		if children.IsArray() {
			skip = s.Explode
		}
		flattenInto(base, obj, "", skip)

		exploded := 0
		if children.IsArray() {
			children.ForEach(func(_, child gjson.Result) bool {
				if !child.IsObject() {
					return true
				}
				row := base.clone()
				flattenInto(row, child, s.ExplodeAs+".", "")
				rows = append(rows, row)
				exploded++
				return true
			})
		}
		if exploded == 0 {
			rows = append(rows, base)
		}
	}
	return rows
}

// presentKeys returns every key seen across rows, in first-seen order.
func presentKeys(rows []*flatRecord) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range rows {
		for _, f := range r.fields {
			if !seen[f.key] {
				seen[f.key] = true
				keys = append(keys, f.key)
			}
		}
	}
	return keys
}
