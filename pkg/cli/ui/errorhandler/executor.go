package errorhandler

import (
	"strings"

	"github.com/spf13/cobra"
)

// Executor type.

// Executor coordinates Cobra execution and surfaces failures as *CommandError values
// carrying the process exit code.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs the provided command with Cobra's own error and usage printing
// silenced. Flag parsing errors are marked as usage errors. It returns nil on success,
// or a *CommandError wrapping the original error to preserve error-chain semantics.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError(err)
	})

	executed, err := cmd.ExecuteC()
	if err == nil {
		return nil
	}

	commandPath := cmd.CommandPath()
	if executed != nil {
		commandPath = executed.CommandPath()
	}

	return &CommandError{
		command: commandPath,
		message: e.normalizer.Normalize(err.Error()),
		cause:   err,
	}
}

// CommandError type.

// CommandError represents a Cobra execution failure with a normalized message.
type CommandError struct {
	command string
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		return e.message
	default:
		return e.cause.Error()
	}
}

// Command returns the path of the command that failed.
func (e *CommandError) Command() string {
	if e == nil {
		return ""
	}

	return e.command
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// ExitCode returns the exit code decided by the underlying cause.
func (e *CommandError) ExitCode() int {
	if e == nil {
		return 0
	}

	return ExitCode(e.cause)
}

// DefaultNormalizer implementation.

// DefaultNormalizer trims error output for display.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes redundant "Error:" prefixes, and preserves multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")

	first := strings.TrimSpace(lines[0])
	first = strings.TrimPrefix(first, "Error: ")
	lines[0] = first

	return strings.Join(lines, "\n")
}
