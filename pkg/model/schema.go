// pkg/model/schema.go
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Policy defines the missing-value strategy assigned to a column.
type Policy int

const (
	// PolicyFreeText fills missing values with the empty string.
	PolicyFreeText Policy = iota
	// PolicyCritical drops any row missing the column.
	PolicyCritical
	// PolicyCategorical fills missing values with "Unknown".
	PolicyCategorical
	// PolicyNumeric fills missing values with the column median.
	PolicyNumeric
)

// String returns a string representation of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyFreeText:
		return "FreeText"
	case PolicyCritical:
		return "Critical"
	case PolicyCategorical:
		return "Categorical"
	case PolicyNumeric:
		return "Numeric"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Derived-column prefixes added by the pipeline itself. Columns with
// these prefixes never require a configured policy.
const (
	SuspiciousPrefix = "suspicious_"
	InvalidPrefix    = "invalid_"
)

// Schema describes the fixed column set of one entity type and the
// semantics each cleaning stage applies per column.
type Schema struct {
	Entity        string
	NameColumn    string
	URLColumns    []string
	Categorical   []string // columns normalized against a rules table
	Numeric       []string // columns parsed as unit-bearing numbers
	Dates         []string // columns parsed as calendar dates
	Lists         []string // delimited multi-value columns (investment focus)
	UpdatedColumn string   // recency column used for duplicate tie-breaks
	Derived       []string // columns the pipeline adds (e.g. "sector")
	Policies      map[string]Policy
}

// NameOf returns the record's raw name column value.
func (s *Schema) NameOf(r Record) string {
	return r.String(s.NameColumn)
}

// WebsiteOf returns the record's primary URL column value, or "" for
// schemas without URL columns.
func (s *Schema) WebsiteOf(r Record) string {
	if len(s.URLColumns) == 0 {
		return ""
	}
	return r.String(s.URLColumns[0])
}

// PolicyFor returns the missing-value policy for a column. Derived
// and flag columns default to free-text.
func (s *Schema) PolicyFor(col string) Policy {
	if p, ok := s.Policies[col]; ok {
		return p
	}
	return PolicyFreeText
}

// Known reports whether a column is part of the schema, including
// columns the pipeline derives during cleaning.
func (s *Schema) Known(col string) bool {
	if _, ok := s.Policies[col]; ok {
		return true
	}
	if strings.HasPrefix(col, SuspiciousPrefix) || strings.HasPrefix(col, InvalidPrefix) {
		return true
	}
	for _, d := range s.Derived {
		if d == col {
			return true
		}
	}
	return false
}

// Validate checks a batch against the schema. A column present in the
// data without a policy, or a missing identity/recency column, is a
// configuration bug and fails the whole batch.
func (s *Schema) Validate(b Batch) error {
	seen := make(map[string]bool)
	for _, row := range b.Rows {
		for col := range row {
			seen[col] = true
		}
	}

	for col := range seen {
		if !s.Known(col) {
			return fmt.Errorf("schema %s: column %q has no configured policy", s.Entity, col)
		}
	}

	if b.Len() == 0 {
		return nil
	}

	// Critical columns must exist in the batch at all. A column absent
	// from every row is a malformed input, not per-row missing values.
	required := make([]string, 0, len(s.Policies)+1)
	for col, policy := range s.Policies {
		if policy == PolicyCritical {
			required = append(required, col)
		}
	}
	if s.UpdatedColumn != "" {
		required = append(required, s.UpdatedColumn)
	}
	sort.Strings(required)

	for _, col := range required {
		if !seen[col] {
			return fmt.Errorf("schema %s: batch is missing expected column %q", s.Entity, col)
		}
	}

	return nil
}

// StartupSchema returns the column configuration for startup records.
func StartupSchema() *Schema {
	return &Schema{
		Entity:        "startup",
		NameColumn:    "name",
		URLColumns:    []string{"website"},
		Categorical:   []string{"industry", "sub_sector", "funding_round"},
		Numeric:       []string{"employee_count", "funding_amount"},
		Dates:         []string{"founded_date", "last_funding_date", "last_updated"},
		UpdatedColumn: "last_updated",
		Policies: map[string]Policy{
			"name":              PolicyCritical,
			"website":           PolicyCritical,
			"industry":          PolicyCategorical,
			"sub_sector":        PolicyCategorical,
			"funding_round":     PolicyCategorical,
			"employee_count":    PolicyNumeric,
			"funding_amount":    PolicyNumeric,
			"founded_date":      PolicyFreeText,
			"last_funding_date": PolicyFreeText,
			"last_updated":      PolicyFreeText,
			"description":       PolicyFreeText,
			"location":          PolicyFreeText,
		},
	}
}

// InvestorSchema returns the column configuration for investor records.
func InvestorSchema() *Schema {
	return &Schema{
		Entity:        "investor",
		NameColumn:    "name",
		URLColumns:    []string{"website"},
		Categorical:   []string{"investor_type"},
		Numeric:       []string{"investment_amount"},
		Dates:         []string{"founded_date", "last_investment_date", "last_updated"},
		Lists:         []string{"investment_focus"},
		UpdatedColumn: "last_updated",
		Derived:       []string{"sector"},
		Policies: map[string]Policy{
			"name":                 PolicyCritical,
			"website":              PolicyCritical,
			"investor_type":        PolicyCategorical,
			"investment_focus":     PolicyCategorical,
			"investment_amount":    PolicyNumeric,
			"founded_date":         PolicyFreeText,
			"last_investment_date": PolicyFreeText,
			"last_updated":         PolicyFreeText,
			"location":             PolicyFreeText,
		},
	}
}
