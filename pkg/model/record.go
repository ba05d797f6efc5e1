// pkg/model/record.go
package model

import (
	"time"
)

// Record represents one entity (startup or investor) as a flat
// column name to value mapping. Values are weakly typed: string,
// float64, bool, time.Time, []string or nil.
type Record map[string]any

// Fields is a partial set of supplementary values produced by a
// single enrichment source for a single record.
type Fields map[string]any

// IsNull reports whether a value counts as missing. Absent keys and
// nil values are missing; empty strings are not, since the empty
// string is a legitimate fill value for free-text columns.
func IsNull(v any) bool {
	return v == nil
}

// Clone returns a deep copy of the record. List values are copied so
// that mutating the clone never affects the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if list, ok := v.([]string); ok {
			copied := make([]string, len(list))
			copy(copied, list)
			out[k] = copied
			continue
		}
		out[k] = v
	}
	return out
}

// String returns the value of a column as a string, or "" if the
// column is missing or not a string.
func (r Record) String(col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

// Float returns the numeric value of a column, reporting whether the
// column held a float64.
func (r Record) Float(col string) (float64, bool) {
	f, ok := r[col].(float64)
	return f, ok
}

// Time returns the time value of a column, reporting whether the
// column held a time.Time.
func (r Record) Time(col string) (time.Time, bool) {
	t, ok := r[col].(time.Time)
	return t, ok
}

// Batch is an ordered collection of records sharing one schema.
type Batch struct {
	Schema *Schema
	Rows   []Record
}

// NewBatch creates a batch over the given rows. The slice is used as
// provided; callers that need isolation should Clone first.
func NewBatch(schema *Schema, rows []Record) Batch {
	return Batch{Schema: schema, Rows: rows}
}

// Len returns the number of records in the batch.
func (b Batch) Len() int {
	return len(b.Rows)
}

// Clone returns a deep copy of the batch. Cleaning and enrichment
// stages operate on clones so the input batch is never mutated.
func (b Batch) Clone() Batch {
	rows := make([]Record, len(b.Rows))
	for i, r := range b.Rows {
		rows[i] = r.Clone()
	}
	return Batch{Schema: b.Schema, Rows: rows}
}
