package fsutil

import "errors"

// File writing errors.
var (
	// ErrEmptyOutputPath is returned when no output path is given.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrWriteOutput is returned when the output file cannot be written.
	ErrWriteOutput = errors.New("writing output")
)

// writeOutputExitCode is the CLI exit code for output file failures.
const writeOutputExitCode = 18

// WriteError reports a failure to write an output file.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return ErrWriteOutput.Error() + " to '" + e.Path + "' file: " + e.Err.Error()
}

// Unwrap exposes ErrWriteOutput and the underlying cause.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteOutput, e.Err}
}

// ExitCode returns the CLI exit code for output file failures.
func (e *WriteError) ExitCode() int {
	return writeOutputExitCode
}
