package compose

import (
	"errors"
	"fmt"
)

// Sentinel errors for the compose package.
var (
	// ErrInvalidYAML is returned when the document text is not valid YAML.
	ErrInvalidYAML = errors.New("invalid YAML")
	// ErrNotMapping is returned when the document is valid YAML but its top level is not a mapping.
	ErrNotMapping = errors.New("invalid compose content: top-level element is not a mapping")
	// ErrUnsupportedKey is returned when a mapping key is not a scalar.
	ErrUnsupportedKey = errors.New("unsupported mapping key")
)

// ParseError describes why a document could not be parsed. Reason is one of the
// package sentinel errors; Cause carries the YAML decoder diagnostic when there is one.
type ParseError struct {
	Reason error
	Cause  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause == nil {
		return e.Reason.Error()
	}

	return fmt.Sprintf("%v: %v", e.Reason, e.Cause)
}

// Unwrap exposes both the reason and the cause to errors.Is/errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Reason}
	}

	return []error{e.Reason, e.Cause}
}
