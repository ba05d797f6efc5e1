package model

import (
	"testing"
)

func TestPolicyFor(t *testing.T) {
	s := StartupSchema()

	if got := s.PolicyFor("name"); got != PolicyCritical {
		t.Errorf("PolicyFor(name) = %v, want Critical", got)
	}
	if got := s.PolicyFor("industry"); got != PolicyCategorical {
		t.Errorf("PolicyFor(industry) = %v, want Categorical", got)
	}
	if got := s.PolicyFor("employee_count"); got != PolicyNumeric {
		t.Errorf("PolicyFor(employee_count) = %v, want Numeric", got)
	}
	if got := s.PolicyFor("suspicious_employee_count"); got != PolicyFreeText {
		t.Errorf("derived columns default to FreeText, got %v", got)
	}
}

func TestKnown(t *testing.T) {
	s := InvestorSchema()

	tests := []struct {
		col  string
		want bool
	}{
		{"name", true},
		{"investment_focus", true},
		{"suspicious_investment_amount", true},
		{"invalid_founded_date", true},
		{"sector", true}, // derived during cleaning
		{"stock_ticker", false},
	}

	for _, tt := range tests {
		if got := s.Known(tt.col); got != tt.want {
			t.Errorf("Known(%q) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	s := StartupSchema()

	valid := NewBatch(s, []Record{
		{"name": "Acme", "website": "acme.com", "last_updated": "2024-01-01"},
	})
	if err := s.Validate(valid); err != nil {
		t.Errorf("valid batch rejected: %v", err)
	}

	unknown := NewBatch(s, []Record{
		{"name": "Acme", "last_updated": "2024-01-01", "stock_ticker": "ACME"},
	})
	if err := s.Validate(unknown); err == nil {
		t.Error("expected error for column without a policy")
	}

	missingName := NewBatch(s, []Record{
		{"website": "acme.com", "last_updated": "2024-01-01"},
	})
	if err := s.Validate(missingName); err == nil {
		t.Error("expected error for batch missing the name column")
	}

	// A critical column absent from every row is a malformed input and
	// must fail fast rather than silently drop the whole batch.
	missingWebsite := NewBatch(s, []Record{
		{"name": "Acme", "last_updated": "2024-01-01"},
		{"name": "Beta", "last_updated": "2024-01-01"},
	})
	if err := s.Validate(missingWebsite); err == nil {
		t.Error("expected error for batch missing a critical column entirely")
	}

	// The same column null in some rows is a per-row missing value,
	// not a schema violation.
	partialWebsite := NewBatch(s, []Record{
		{"name": "Acme", "website": nil, "last_updated": "2024-01-01"},
		{"name": "Beta", "website": "beta.io", "last_updated": "2024-01-01"},
	})
	if err := s.Validate(partialWebsite); err != nil {
		t.Errorf("per-row nulls rejected: %v", err)
	}

	empty := NewBatch(s, nil)
	if err := s.Validate(empty); err != nil {
		t.Errorf("empty batch rejected: %v", err)
	}
}

func TestRecordClone(t *testing.T) {
	r := Record{
		"name":  "Acme",
		"focus": []string{"AI"},
	}

	c := r.Clone()
	c["name"] = "Changed"
	c["focus"].([]string)[0] = "Changed"

	if r["name"] != "Acme" {
		t.Error("Clone shares the top-level map")
	}
	if r["focus"].([]string)[0] != "AI" {
		t.Error("Clone shares list values")
	}
}

func TestIsNull(t *testing.T) {
	if !IsNull(nil) {
		t.Error("nil must be null")
	}
	if IsNull("") {
		t.Error("empty string is a legitimate fill value, not null")
	}
	if IsNull(0.0) {
		t.Error("zero is not null")
	}
}
