package compose

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/devantler-tech/pose/pkg/cmd/runner"
)

// ErrUndecodableOutput is returned when docker compose prints output that is not UTF-8.
var ErrUndecodableOutput = errors.New("undecodable docker compose output")

// undecodableExitCode is the CLI exit code for output that is not UTF-8.
const undecodableExitCode = 17

// ConfigOptions controls the `docker compose config` invocation.
type ConfigOptions struct {
	// Files are passed as -f arguments, in order. Empty lets docker compose pick its default.
	Files         []string
	NoConsistency bool
	NoInterpolate bool
	NoNormalize   bool
}

// Args returns the docker arguments for the invocation.
func (o ConfigOptions) Args() []string {
	args := []string{"compose"}

	for _, file := range o.Files {
		args = append(args, "-f", file)
	}

	args = append(args, "config")

	if o.NoConsistency {
		args = append(args, "--no-consistency")
	}

	if o.NoInterpolate {
		args = append(args, "--no-interpolate")
	}

	if o.NoNormalize {
		args = append(args, "--no-normalize")
	}

	return args
}

// ConfigOutput is the result of a successful `docker compose config` run.
type ConfigOutput struct {
	// Document is the canonical compose document.
	Document string
	// Warnings is whatever docker compose printed on stderr.
	Warnings string
}

// OutputError reports docker compose output that cannot be decoded.
type OutputError struct {
	Command string
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUndecodableOutput, e.Command)
}

// Unwrap returns ErrUndecodableOutput.
func (e *OutputError) Unwrap() error {
	return ErrUndecodableOutput
}

// ExitCode returns the CLI exit code for undecodable output.
func (e *OutputError) ExitCode() int {
	return undecodableExitCode
}

// Config runs `docker compose config` through r with the binary named by DOCKER_BIN.
// A failing run returns the *runner.CommandError carrying docker's exit code and
// stderr; a docker binary that cannot be started returns an error wrapping
// runner.ErrStart.
func Config(ctx context.Context, r runner.Runner, opts ConfigOptions) (ConfigOutput, error) {
	binary := runner.DockerBinary()
	args := opts.Args()

	result, err := r.Run(ctx, binary, args...)
	if err != nil {
		return ConfigOutput{}, fmt.Errorf("calling compose: %w", err)
	}

	if !utf8.ValidString(result.Stdout) {
		return ConfigOutput{}, &OutputError{Command: runner.CommandString(binary, args...)}
	}

	return ConfigOutput{Document: result.Stdout, Warnings: result.Stderr}, nil
}
