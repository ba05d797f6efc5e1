package normalize

import (
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims whitespace",
			input: "  Acme  ",
			want:  "Acme",
		},
		{
			name:  "title cases",
			input: "acme robotics",
			want:  "Acme Robotics",
		},
		{
			name:  "strips Inc suffix",
			input: "Acme Inc.",
			want:  "Acme",
		},
		{
			name:  "strips LLC suffix",
			input: "acme llc",
			want:  "Acme",
		},
		{
			name:  "strips stacked suffixes",
			input: "Acme Corp Inc.",
			want:  "Acme",
		},
		{
			name:  "keeps a lone suffix token",
			input: "Inc",
			want:  "Inc",
		},
		{
			name:  "replaces ampersand",
			input: "Smith & Jones",
			want:  "Smith And Jones",
		},
		{
			name:  "replaces at sign",
			input: "Work@Home",
			want:  "Work At Home",
		},
		{
			name:  "expands VC abbreviation",
			input: "Sequoia VC",
			want:  "Sequoia Venture Capital",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}

			// Applying twice must yield the same result as once.
			if again := Name(got); again != got {
				t.Errorf("Name is not idempotent: Name(%q) = %q, but Name(%q) = %q",
					tt.input, got, got, again)
			}
		})
	}
}
