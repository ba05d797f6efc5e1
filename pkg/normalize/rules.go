// pkg/normalize/rules.go
package normalize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fallback values used when a categorical lookup misses.
const (
	FallbackOther   = "Other"
	FallbackUnknown = "Unknown"
)

// Rules holds the static normalization tables, one per semantic
// domain. Tables map raw values and abbreviations to canonical forms;
// any value outside a table's domain maps to a fixed fallback.
type Rules struct {
	Industries    map[string]string `yaml:"industries"`
	InvestorTypes map[string]string `yaml:"investor_types"`
	FocusAreas    map[string]string `yaml:"focus_areas"`
	Sectors       map[string]string `yaml:"sectors"`
	FundingRounds map[string]string `yaml:"funding_rounds"`
}

// DefaultRules returns the built-in normalization tables.
func DefaultRules() *Rules {
	return &Rules{
		Industries: map[string]string{
			"AI":          "Artificial Intelligence",
			"ML":          "Machine Learning",
			"Fin Tech":    "FinTech",
			"Fintech":     "FinTech",
			"Health Tech": "HealthTech",
			"Healthtech":  "HealthTech",
		},
		InvestorTypes: map[string]string{
			"VC":                   "Venture Capital",
			"Venture Capital Firm": "Venture Capital",
			"Angel":                "Angel Investor",
			"Angel Group":          "Angel Investor",
			"PE":                   "Private Equity",
			"Private Equity Firm":  "Private Equity",
			"Corp":                 "Corporate Investor",
			"Corporate Venture":    "Corporate Investor",
			"Accelerator":          "Accelerator/Incubator",
			"Incubator":            "Accelerator/Incubator",
		},
		FocusAreas: map[string]string{
			"AI":         "Artificial Intelligence",
			"ML":         "Machine Learning",
			"Fintech":    "Financial Technology",
			"SaaS":       "Software as a Service",
			"Biotech":    "Biotechnology",
			"Healthtech": "Healthcare Technology",
		},
		Sectors: map[string]string{
			"Artificial Intelligence": "Technology",
			"Machine Learning":        "Technology",
			"Financial Technology":    "Finance",
			"Software as a Service":   "Technology",
			"Biotechnology":           "Healthcare",
			"Healthcare Technology":   "Healthcare",
		},
		FundingRounds: map[string]string{
			"Pre-Seed":   "Pre-Seed",
			"Seed":       "Seed",
			"Seed Round": "Seed",
			"Series A":   "Series A",
			"A":          "Series A",
			"Series B":   "Series B",
			"B":          "Series B",
			"Series C":   "Series C",
			"C":          "Series C",
		},
	}
}

// LoadRules reads normalization tables from a YAML file, overlaying
// them on the defaults. An empty path returns the defaults unchanged.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var overlay Rules
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	merge := func(dst, src map[string]string) {
		for k, v := range src {
			dst[k] = v
		}
	}
	merge(rules.Industries, overlay.Industries)
	merge(rules.InvestorTypes, overlay.InvestorTypes)
	merge(rules.FocusAreas, overlay.FocusAreas)
	merge(rules.Sectors, overlay.Sectors)
	merge(rules.FundingRounds, overlay.FundingRounds)

	return rules, nil
}
