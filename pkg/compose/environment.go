package compose

import (
	"regexp"
	"strings"
	"unicode"
)

// quotedDigits matches a value made only of decimal digits wrapped in single quotes,
// the rendering a YAML-quoted numeric string gets when printed as YAML.
var quotedDigits = regexp.MustCompile(`^'(\d+)'$`)

// envName matches a bare variable name declared without a value.
var envName = regexp.MustCompile(`^\w+$`)

// ServiceEnvironment returns the service's environment as KEY=VALUE entries, in
// document order. It reports false when the service declares no environment.
//
// Both declaration shapes produce the same output:
//   - sequence entries are kept as written, a bare KEY becomes "KEY=" and null or
//     empty entries are dropped
//   - mapping entries become KEY=value; values containing whitespace are wrapped in
//     double quotes, or single quotes when they already contain a double quote
func ServiceEnvironment(service *Mapping) ([]string, bool) {
	if service == nil {
		return nil, false
	}

	node, ok := service.Get(environmentKey)
	if !ok {
		return nil, false
	}

	switch envs := node.(type) {
	case *Sequence:
		return sequenceEnvironment(envs), true
	case *Mapping:
		return mappingEnvironment(envs), true
	default:
		return []string{}, true
	}
}

func sequenceEnvironment(envs *Sequence) []string {
	entries := make([]string, 0, envs.Len())

	for _, item := range envs.Items {
		scalar, ok := AsScalar(item)
		if !ok || scalar.IsNull() || scalar.Text == "" {
			continue
		}

		entry := scalar.Text
		if scalar.IsString() && envName.MatchString(entry) {
			entry += "="
		}

		entries = append(entries, entry)
	}

	return entries
}

func mappingEnvironment(envs *Mapping) []string {
	entries := make([]string, 0, envs.Len())

	for name, value := range envs.All() {
		entries = append(entries, name+"="+envValue(value))
	}

	return entries
}

// envValue renders one mapping-form environment value.
func envValue(node Node) string {
	text, _ := ScalarText(node)
	text = strings.TrimRightFunc(text, unicode.IsSpace)

	if match := quotedDigits.FindStringSubmatch(text); match != nil {
		return match[1]
	}

	if !strings.ContainsFunc(text, unicode.IsSpace) {
		return text
	}

	if strings.Contains(text, `"`) {
		return "'" + text + "'"
	}

	return `"` + text + `"`
}
