// pkg/normalize/url.go
package normalize

import (
	"regexp"
	"strings"
)

var (
	wwwPrefixPattern = regexp.MustCompile(`^https?://www\.`)
	urlPattern       = regexp.MustCompile(`^https?://[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}(?:/[^\s]*)?$`)
)

// URL canonicalizes a website URL: trims whitespace, defaults the
// scheme to https, drops a leading "www." subdomain and validates the
// result against a permissive host/path pattern. Returns "" for any
// value that does not survive validation; an unvalidated URL is never
// kept.
func URL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	for wwwPrefixPattern.MatchString(s) {
		s = wwwPrefixPattern.ReplaceAllString(s, "https://")
	}

	if !urlPattern.MatchString(s) {
		return ""
	}

	return s
}
