package tagresolver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Filter expression prefixes.
const (
	affirmativePrefix = "regex="
	negatedPrefix     = "regex!="
)

// ErrInvalidFilter is returned for filter expressions that cannot be parsed.
var ErrInvalidFilter = errors.New("invalid tag filter")

// FilterRule restricts which images are considered for tag substitution.
// An affirmative rule keeps the images matching Pattern, a negated rule keeps the others.
type FilterRule struct {
	Pattern *regexp.Regexp
	Negated bool
}

// ParseFilterRule parses "regex=EXPR" or "regex!=EXPR".
func ParseFilterRule(expr string) (*FilterRule, error) {
	var (
		pattern string
		negated bool
	)

	switch {
	case strings.HasPrefix(expr, negatedPrefix):
		pattern, negated = strings.TrimPrefix(expr, negatedPrefix), true
	case strings.HasPrefix(expr, affirmativePrefix):
		pattern = strings.TrimPrefix(expr, affirmativePrefix)
	default:
		return nil, fmt.Errorf(
			"%w: wrong filter '%s', only '%s' or '%s' filters are supported",
			ErrInvalidFilter,
			expr,
			affirmativePrefix,
			negatedPrefix,
		)
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: invalid regex expression '%s' in filter: %w",
			ErrInvalidFilter,
			pattern,
			err,
		)
	}

	return &FilterRule{Pattern: compiled, Negated: negated}, nil
}

// Allows reports whether the image reference passes the rule. A nil rule allows everything.
func (r *FilterRule) Allows(ref string) bool {
	if r == nil || r.Pattern == nil {
		return true
	}

	return r.Pattern.MatchString(ref) != r.Negated
}

// String renders the rule in its parseable form.
func (r *FilterRule) String() string {
	if r == nil || r.Pattern == nil {
		return ""
	}

	if r.Negated {
		return negatedPrefix + r.Pattern.String()
	}

	return affirmativePrefix + r.Pattern.String()
}
