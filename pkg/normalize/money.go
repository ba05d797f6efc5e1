// pkg/normalize/money.go
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Bounds defines the plausible range for a parsed amount. Values
// outside the range are treated as data-entry errors and nulled, not
// clamped.
type Bounds struct {
	Lower float64
	Upper float64
}

// Contains reports whether v falls inside the bounds (inclusive).
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

var moneyPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*([KMB])?$`)

var moneyMultipliers = map[string]float64{
	"K": 1e3,
	"M": 1e6,
	"B": 1e9,
}

// Money parses a currency string ("$1.5M", "10K", "2,500,000") into
// a numeric USD amount. Recognition is case-insensitive; thousands
// separators and common currency symbols are stripped. Returns
// (0, false) for unparseable input or amounts outside the bounds.
func Money(s string, bounds Bounds) (float64, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	for _, sym := range []string{"$", "€", "£", "USD", ","} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)

	m := moneyPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	if mult, ok := moneyMultipliers[m[2]]; ok {
		amount *= mult
	}

	if !bounds.Contains(amount) {
		return 0, false
	}

	return amount, true
}

// Count parses a count-like value that may arrive as a plain number,
// shorthand ("1.2K") or a range ("1-10", resolved to its midpoint).
// Returns (0, false) for unparseable input or counts outside the
// bounds.
func Count(s string, bounds Bounds) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if lo, hi, ok := splitRange(s); ok {
		left, okLo := Money(lo, Bounds{Lower: 0, Upper: bounds.Upper})
		right, okHi := Money(hi, Bounds{Lower: 0, Upper: bounds.Upper})
		if !okLo || !okHi || right < left {
			return 0, false
		}
		mid := (left + right) / 2
		if !bounds.Contains(mid) {
			return 0, false
		}
		return mid, true
	}

	return Money(s, bounds)
}

// splitRange splits "1-10" style ranges. A leading '-' is a sign, not
// a range separator.
func splitRange(s string) (string, string, bool) {
	idx := strings.Index(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}
