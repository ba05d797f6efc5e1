package normalize

import (
	"strings"
	"testing"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "adds https scheme",
			input: "acme.com",
			want:  "https://acme.com",
		},
		{
			name:  "strips www prefix",
			input: "www.acme.com",
			want:  "https://acme.com",
		},
		{
			name:  "strips www after existing scheme",
			input: "http://www.acme.com",
			want:  "https://acme.com",
		},
		{
			name:  "keeps valid https URL",
			input: "https://acme.com",
			want:  "https://acme.com",
		},
		{
			name:  "keeps path",
			input: "acme.com/about",
			want:  "https://acme.com/about",
		},
		{
			name:  "keeps subdomain",
			input: "blog.acme.co.uk",
			want:  "https://blog.acme.co.uk",
		},
		{
			name:  "trims whitespace",
			input: "  acme.com  ",
			want:  "https://acme.com",
		},
		{
			name:  "rejects missing TLD",
			input: "localhost",
			want:  "",
		},
		{
			name:  "rejects embedded spaces",
			input: "not a url",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URL(tt.input)
			if got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.input, got, tt.want)
			}

			if again := URL(got); again != got {
				t.Errorf("URL is not idempotent: URL(%q) = %q, but URL(%q) = %q",
					tt.input, got, got, again)
			}
		})
	}
}

// Every output is either empty or a schemed URL with no www right
// after the scheme, whatever the input.
func TestURLTotal(t *testing.T) {
	inputs := []string{
		"", " ", "acme", "www.", "https://", "ftp://acme.com",
		"www.acme.com", "a b c", "https://www.www.acme.com", "acme.com:8080",
	}

	for _, input := range inputs {
		got := URL(input)
		if got == "" {
			continue
		}
		if !strings.HasPrefix(got, "http://") && !strings.HasPrefix(got, "https://") {
			t.Errorf("URL(%q) = %q: missing scheme", input, got)
		}
		if strings.HasPrefix(got, "https://www.") || strings.HasPrefix(got, "http://www.") {
			t.Errorf("URL(%q) = %q: www survived after scheme", input, got)
		}
	}
}
