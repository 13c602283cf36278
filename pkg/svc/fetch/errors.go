package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// Download errors.
var (
	// ErrInvalidURL is returned when the URL cannot be parsed, even after the script.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrMissingFilename is returned for a URL without path and no output file.
	ErrMissingFilename = errors.New(
		"URL without filename, you have to provide the filename where to store the file with the argument -o, --output",
	)
	// ErrRequest is returned when the request cannot be completed.
	ErrRequest = errors.New("request failed")
	// ErrHTTPStatus is returned for non-2xx responses.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	// ErrCreateFile is returned when the output file cannot be created.
	ErrCreateFile = errors.New("creating file")
	// ErrWriteFile is returned when the response body cannot be written.
	ErrWriteFile = errors.New("writing output to file")
)

// Exit codes of download failures.
const (
	exitStatus          = 1
	exitRequest         = 2
	exitInvalidURL      = 3
	exitMissingFilename = 4
	exitCreateFile      = 5
	exitWriteFile       = 6
)

// Error is a download failure with the CLI exit code it maps to.
type Error struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the CLI exit code.
func (e *Error) ExitCode() int {
	return e.Code
}

func newError(code int, err error) *Error {
	return &Error{Code: code, Err: err}
}

// StatusError describes a non-2xx response.
type StatusError struct {
	URL        string
	Proto      string
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	message := fmt.Sprintf("%s %s", e.Proto, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		message += "\n" + body
	}

	return message
}

// Unwrap returns ErrHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}
