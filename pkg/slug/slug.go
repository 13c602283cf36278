// Package slug turns free text, typically a branch name, into a string usable as an
// image tag.
package slug

import "strings"

// MaxLength is the longest slug produced.
const MaxLength = 63

// Slug trims and lowercases text, replaces every character other than an ASCII
// letter, digit or '.' with '-', and truncates the result to MaxLength characters.
func Slug(text string) string {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	var builder strings.Builder

	for _, char := range trimmed {
		if builder.Len() == MaxLength {
			break
		}

		switch {
		case (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '.':
			builder.WriteRune(char)
		default:
			builder.WriteByte('-')
		}
	}

	return builder.String()
}
