package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Status is the non-error answer of an existence check.
type Status int

const (
	// NotFound means the reference does not exist.
	NotFound Status = iota
	// Found means the reference exists.
	Found
	// Unauthorized means the registry refused to answer for lack of credentials.
	Unauthorized
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case NotFound:
		return "not-found"
	case Found:
		return "found"
	case Unauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Lookup operations reported by LookupError.
const (
	OpLocal  = "local image check"
	OpRemote = "remote manifest check"
)

// ErrLookupFailed is wrapped by every LookupError.
var ErrLookupFailed = errors.New("image lookup failed")

// defaultLookupExitCode is the exit code of lookup failures that carry no process status.
const defaultLookupExitCode = 1

// Oracle checks whether an image reference exists.
type Oracle interface {
	// LocalImageExists checks the local image store.
	LocalImageExists(ctx context.Context, ref string) (Status, error)
	// RemoteManifestExists checks the remote registry for the reference's manifest.
	RemoteManifestExists(ctx context.Context, ref string) (Status, error)
}

// LookupError is a failed existence check that is neither an absence nor a refusal.
type LookupError struct {
	Op   string
	Ref  string
	Code int
	// Message is the diagnostic of the underlying tool, when there is one.
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	detail := e.Message
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}

	return fmt.Sprintf("%s %s: %s", e.Op, e.Ref, detail)
}

// Unwrap exposes ErrLookupFailed and the underlying error.
func (e *LookupError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLookupFailed}
	}

	return []error{ErrLookupFailed, e.Err}
}

// ExitCode returns the exit code of the failed tool, or 1.
func (e *LookupError) ExitCode() int {
	if e.Code > 0 {
		return e.Code
	}

	return defaultLookupExitCode
}

// Markers of docker CLI diagnostics, matched case-insensitively.
var (
	notFoundMarkers = []string{
		"no such image",
		"no such manifest",
		"manifest unknown",
		"name unknown",
		"not found",
	}
	// localNotFoundMarkers are the only diagnostics of a local inspect that are not
	// failures. A daemon that refuses the socket is a failure, not a refusal of the image.
	localNotFoundMarkers = []string{
		"no such image",
		"no such object",
	}
	unauthorizedMarkers = []string{
		"unauthorized",
		"denied",
		"authentication required",
	}
)

// classifyLocalMessage maps a local inspect diagnostic onto NotFound. It reports
// false for anything else.
func classifyLocalMessage(message string) (Status, bool) {
	lower := strings.ToLower(message)

	for _, marker := range localNotFoundMarkers {
		if strings.Contains(lower, marker) {
			return NotFound, true
		}
	}

	return NotFound, false
}

// classifyMessage maps a remote lookup diagnostic onto a status. It reports false when the
// message matches neither an absence nor a refusal.
func classifyMessage(message string) (Status, bool) {
	lower := strings.ToLower(message)

	for _, marker := range unauthorizedMarkers {
		if strings.Contains(lower, marker) {
			return Unauthorized, true
		}
	}

	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return NotFound, true
		}
	}

	return NotFound, false
}
