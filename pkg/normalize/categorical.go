// pkg/normalize/categorical.go
package normalize

import (
	"strings"
)

// Categorical maps a raw value to its canonical form via exact lookup
// in the given table. Values already canonical are kept; anything
// else maps to the fallback, so the function is total over its input
// domain.
func Categorical(value string, table map[string]string, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	if canonical, ok := table[value]; ok {
		return canonical
	}

	for _, canonical := range table {
		if value == canonical {
			return value
		}
	}

	return fallback
}

// Tokens splits a delimited multi-value string into trimmed tokens,
// deduplicated while preserving first-occurrence order.
func Tokens(s, sep string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, sep) {
		tok := strings.TrimSpace(part)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
