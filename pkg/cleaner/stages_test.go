package cleaner

import (
	"reflect"
	"testing"
	"time"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
)

func TestNormalizeNames(t *testing.T) {
	c := newTestStartupCleaner(t)

	batch := model.NewBatch(model.StartupSchema(), []model.Record{
		{"name": "  acme corp inc.  "},
		{"name": "Smith & Jones LLC"},
	})

	got := c.NormalizeNames(batch)

	if v := got.Rows[0].String("name"); v != "Acme" {
		t.Errorf("name = %q, want %q", v, "Acme")
	}
	if v := got.Rows[1].String("name"); v != "Smith And Jones" {
		t.Errorf("name = %q, want %q", v, "Smith And Jones")
	}
}

func TestNormalizeURLs(t *testing.T) {
	c := newTestStartupCleaner(t)

	batch := model.NewBatch(model.StartupSchema(), []model.Record{
		{"website": "www.acme.com"},
		{"website": "not a url"},
		{"website": ""},
	})

	report := model.NewCleanReport("startup")
	got := c.NormalizeURLs(batch, report)

	if v := got.Rows[0].String("website"); v != "https://acme.com" {
		t.Errorf("website = %q, want %q", v, "https://acme.com")
	}
	if v := got.Rows[1].String("website"); v != "" {
		t.Errorf("invalid URL should be blanked, got %q", v)
	}
	if report.InvalidURLs["website"] != 1 {
		t.Errorf("InvalidURLs[website] = %d, want 1 (empty input is not invalid)",
			report.InvalidURLs["website"])
	}
}

func TestNormalizeCategoricals(t *testing.T) {
	c := newTestStartupCleaner(t)

	batch := model.NewBatch(model.StartupSchema(), []model.Record{
		{"industry": "AI", "funding_round": "A"},
		{"industry": "Underwater Basket Weaving", "funding_round": "Series B"},
		{"industry": "Unknown"},
	})

	got := c.NormalizeCategoricals(batch)

	if v := got.Rows[0].String("industry"); v != "Artificial Intelligence" {
		t.Errorf("industry = %q, want %q", v, "Artificial Intelligence")
	}
	if v := got.Rows[0].String("funding_round"); v != "Series A" {
		t.Errorf("funding_round = %q, want %q", v, "Series A")
	}
	if v := got.Rows[1].String("industry"); v != "Other" {
		t.Errorf("unknown industry should fall back to Other, got %q", v)
	}
	if v := got.Rows[1].String("funding_round"); v != "Series B" {
		t.Errorf("canonical funding_round should be kept, got %q", v)
	}
	if v := got.Rows[2].String("industry"); v != "Other" {
		t.Errorf("Unknown fill value should map to Other, got %q", v)
	}
}

func TestNormalizeFocus(t *testing.T) {
	c := newTestInvestorCleaner(t)

	batch := model.NewBatch(model.InvestorSchema(), []model.Record{
		{"investment_focus": "AI, Fintech, AI"},
		{"investment_focus": []string{"Biotech", "Quantum Knitting"}},
	})

	got := c.NormalizeFocus(batch)

	wantFocus := []string{"Artificial Intelligence", "Financial Technology"}
	if v := got.Rows[0]["investment_focus"]; !reflect.DeepEqual(v, wantFocus) {
		t.Errorf("investment_focus = %v, want %v", v, wantFocus)
	}
	wantSectors := []string{"Technology", "Finance"}
	if v := got.Rows[0]["sector"]; !reflect.DeepEqual(v, wantSectors) {
		t.Errorf("sector = %v, want %v", v, wantSectors)
	}

	wantFocus2 := []string{"Biotechnology", "Other"}
	if v := got.Rows[1]["investment_focus"]; !reflect.DeepEqual(v, wantFocus2) {
		t.Errorf("investment_focus = %v, want %v", v, wantFocus2)
	}
	wantSectors2 := []string{"Healthcare", "Other"}
	if v := got.Rows[1]["sector"]; !reflect.DeepEqual(v, wantSectors2) {
		t.Errorf("sector = %v, want %v", v, wantSectors2)
	}
}

func TestCleanNumericsParsesAndFlags(t *testing.T) {
	c := newTestStartupCleaner(t)

	batch := model.NewBatch(model.StartupSchema(), []model.Record{
		{"employee_count": "1-10", "funding_amount": "$1.5M"},
		{"employee_count": 200000.0, "funding_amount": "2,000,000"},
	})

	report := model.NewCleanReport("startup")
	got := c.CleanNumerics(batch, report)

	if v := got.Rows[0]["employee_count"]; v != 5.5 {
		t.Errorf("employee_count = %v, want range midpoint 5.5", v)
	}
	if v := got.Rows[0]["funding_amount"]; v != 1.5e6 {
		t.Errorf("funding_amount = %v, want 1.5e6", v)
	}
	if v := got.Rows[0]["suspicious_employee_count"]; v != false {
		t.Errorf("suspicious_employee_count = %v, want false", v)
	}
	if v := got.Rows[1]["suspicious_employee_count"]; v != true {
		t.Errorf("employee_count above threshold should be flagged, got %v", v)
	}
	if report.Suspicious["employee_count"] != 1 {
		t.Errorf("Suspicious[employee_count] = %d, want 1", report.Suspicious["employee_count"])
	}
}

func TestCleanNumericsRefillsOutOfRange(t *testing.T) {
	c := newTestStartupCleaner(t)

	batch := model.NewBatch(model.StartupSchema(), []model.Record{
		{"employee_count": 2e6}, // above the plausible upper bound
		{"employee_count": 50.0},
		{"employee_count": 100.0},
	})

	report := model.NewCleanReport("startup")
	got := c.CleanNumerics(batch, report)

	if v := got.Rows[0]["employee_count"]; v != 75.0 {
		t.Errorf("out-of-range value should be refilled with stage median 75, got %v", v)
	}
	if report.OutOfRange["employee_count"] != 1 {
		t.Errorf("OutOfRange[employee_count] = %d, want 1", report.OutOfRange["employee_count"])
	}
}

func TestCleanDates(t *testing.T) {
	c := newTestStartupCleaner(t)

	batch := model.NewBatch(model.StartupSchema(), []model.Record{
		{"founded_date": "2015-06-15"},
		{"founded_date": "1850-01-01"},
		{"founded_date": "2030-01-01"},
		{"founded_date": "garbage"},
	})

	report := model.NewCleanReport("startup")
	got := c.CleanDates(batch, report)

	want := time.Date(2015, 6, 15, 0, 0, 0, 0, time.UTC)
	if v, ok := got.Rows[0].Time("founded_date"); !ok || !v.Equal(want) {
		t.Errorf("founded_date = %v, want %v", got.Rows[0]["founded_date"], want)
	}
	if v := got.Rows[0]["invalid_founded_date"]; v != false {
		t.Errorf("invalid_founded_date = %v, want false", v)
	}

	for i, reason := range map[int]string{1: "before 1900", 2: "future", 3: "unparseable"} {
		v, ok := got.Rows[i].Time("founded_date")
		if !ok || !v.IsZero() {
			t.Errorf("row %d (%s): founded_date = %v, want zero time", i, reason, got.Rows[i]["founded_date"])
		}
		if flag := got.Rows[i]["invalid_founded_date"]; flag != true {
			t.Errorf("row %d (%s): invalid_founded_date = %v, want true", i, reason, flag)
		}
	}

	if report.InvalidDates["founded_date"] != 3 {
		t.Errorf("InvalidDates[founded_date] = %d, want 3", report.InvalidDates["founded_date"])
	}
}
