package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// Replacement errors.
var (
	// ErrMissingSeparator is returned for a replacer without the ':' separator.
	ErrMissingSeparator = errors.New("expression doesn't have the separator symbol ':'")
	// ErrLeftPartNotFound is returned when the text to replace is absent from the template.
	ErrLeftPartNotFound = errors.New("left part of the expression not found")
)

// scriptSeparator separates the text to replace from its replacement.
const scriptSeparator = ":"

// Script replaces every occurrence of From with To.
type Script struct {
	From string
	To   string
}

// ParseScript parses a FROM:TO expression. To may itself contain ':'.
func ParseScript(expr string) (Script, error) {
	from, to, found := strings.Cut(expr, scriptSeparator)
	if !found {
		return Script{}, fmt.Errorf("%w: %q", ErrMissingSeparator, expr)
	}

	return Script{From: from, To: to}, nil
}

// String renders the script as FROM:TO.
func (s Script) String() string {
	return s.From + scriptSeparator + s.To
}

// Apply returns template with the script applied.
func (s Script) Apply(template string) (string, error) {
	rewritten, err := ReplaceAll(template, []string{s.String()})
	if err != nil {
		return "", err
	}

	return rewritten[0], nil
}

// ReplaceAll returns one string per replacer, each equal to template with the
// replacer's left part replaced by its right part. Every replacer must have the form
// "left:right" and its left part must occur in template.
func ReplaceAll(template string, replacers []string) ([]string, error) {
	rewritten := make([]string, 0, len(replacers))

	for _, replacer := range replacers {
		script, err := ParseScript(replacer)
		if err != nil {
			return nil, err
		}

		if script.From == "" || !strings.Contains(template, script.From) {
			return nil, fmt.Errorf("%w: %q in %q", ErrLeftPartNotFound, replacer, template)
		}

		rewritten = append(rewritten, strings.ReplaceAll(template, script.From, script.To))
	}

	return rewritten, nil
}
