package slug_test

import (
	"strings"
	"testing"

	"github.com/devantler-tech/pose/pkg/slug"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already a slug", input: "16.2", expected: "16.2"},
		{name: "surrounding whitespace", input: "8 ", expected: "8"},
		{name: "branch with slash", input: "feature/JIRA-123_new-UI", expected: "feature-jira-123-new-ui"},
		{name: "consecutive symbols", input: "a//b", expected: "a--b"},
		{name: "non ascii", input: "café", expected: "caf-"},
		{name: "empty", input: "   ", expected: ""},
		{name: "truncated", input: strings.Repeat("ab", 40), expected: strings.Repeat("ab", 31) + "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, slug.Slug(tt.input))
		})
	}
}

func TestSlug_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		got := slug.Slug(input)

		if len(got) > slug.MaxLength {
			t.Fatalf("slug %q longer than %d", got, slug.MaxLength)
		}

		for _, char := range got {
			valid := (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '.' || char == '-'
			if !valid {
				t.Fatalf("slug %q contains %q", got, char)
			}
		}

		if again := slug.Slug(got); again != got {
			t.Fatalf("slug is not idempotent: %q -> %q", got, again)
		}
	})
}
