// pkg/normalize/name.go
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Character replacements applied before title casing so repeated
// application yields the same result.
var nameReplacements = [][2]string{
	{"&", " and "},
	{"@", " at "},
}

// Legal-entity suffixes stripped from the end of a name. Compared
// case-insensitively against the trailing token.
var legalSuffixes = map[string]bool{
	"inc":         true,
	"inc.":        true,
	"llc":         true,
	"ltd":         true,
	"ltd.":        true,
	"limited":     true,
	"corp":        true,
	"corp.":       true,
	"corporation": true,
	"lp":          true,
}

// Whole-token abbreviation expansions applied after title casing.
var nameAbbreviations = map[string]string{
	"Vc": "Venture Capital",
}

// Name standardizes a company or investor name: trims whitespace,
// substitutes special characters, title-cases, strips trailing
// legal-entity suffixes and expands known abbreviations. Safe on
// empty input.
func Name(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, rep := range nameReplacements {
		s = strings.ReplaceAll(s, rep[0], rep[1])
	}

	s = titleCaser.String(s)

	tokens := strings.Fields(s)

	// Strip suffixes repeatedly so "Acme Corp Inc." and "Acme Corp"
	// normalize to the same survivor. Never strip the final token.
	for len(tokens) > 1 && legalSuffixes[strings.ToLower(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}

	for i, tok := range tokens {
		if expanded, ok := nameAbbreviations[tok]; ok {
			tokens[i] = expanded
		}
	}

	return strings.Join(tokens, " ")
}
