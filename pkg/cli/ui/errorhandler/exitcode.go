package errorhandler

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Exit codes shared by every command.
const (
	// ExitFailure is used for errors that carry no specific code.
	ExitFailure = 1
	// ExitUsage is used for invalid flags, arguments or filter expressions.
	ExitUsage = 2
)

type exitCoder interface {
	ExitCode() int
}

// ExitError attaches a process exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the attached exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// WithExitCode wraps err so that ExitCode reports code. A nil err stays nil.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}

	return &ExitError{Code: code, Err: err}
}

// UsageError marks err as a command-line usage error.
func UsageError(err error) error {
	return WithExitCode(err, ExitUsage)
}

// UsageArgs wraps a positional argument validator so its failures are usage errors.
func UsageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return UsageError(validate(cmd, args))
	}
}

// NoSubcommandArgs rejects positional arguments on commands that only group
// subcommands, reporting them as unknown commands.
func NoSubcommandArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	return UsageError(fmt.Errorf(
		"unknown command %q for %q\nRun '%s --help' for usage",
		args[0],
		cmd.CommandPath(),
		cmd.CommandPath(),
	))
}

// ExitCode returns the process exit code for err: 0 for nil, the code of the first
// error in the chain that reports one, and ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code > 0 {
			return code
		}
	}

	return ExitFailure
}
