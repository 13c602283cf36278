package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Environment variables overriding the external binaries.
const (
	DockerBinEnv = "DOCKER_BIN"
	GitBinEnv    = "GIT_BIN"
)

const (
	defaultDockerBin = "docker"
	defaultGitBin    = "git"
)

// ErrStart is returned when a binary cannot be started at all (missing executable,
// permission denied, ...), as opposed to a binary that ran and failed.
var ErrStart = errors.New("failed to start command")

// signaledExitCode is reported for processes terminated by a signal.
const signaledExitCode = 10

// Result captures the output of one external process invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner invokes external binaries and captures their output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// CommandError is returned when a binary ran but exited unsuccessfully.
type CommandError struct {
	Command  string
	Code     int
	Stderr   string
	Signaled bool
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Signaled {
		return fmt.Sprintf("%s: process terminated by signal", e.Command)
	}

	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	}

	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.Code, detail)
}

// ExitCode returns the code the CLI should exit with for this failure.
func (e *CommandError) ExitCode() int {
	if e.Signaled {
		return signaledExitCode
	}

	return e.Code
}

// DockerBinary returns the docker executable, honoring DOCKER_BIN.
func DockerBinary() string {
	return binaryFromEnv(DockerBinEnv, defaultDockerBin)
}

// GitBinary returns the git executable, honoring GIT_BIN.
func GitBinary() string {
	return binaryFromEnv(GitBinEnv, defaultGitBin)
}

func binaryFromEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return fallback
}

// CommandString renders an invocation for logs, quoting arguments that contain spaces.
func CommandString(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)

	for _, arg := range args {
		if strings.Contains(arg, " ") {
			arg = `"` + arg + `"`
		}

		parts = append(parts, arg)
	}

	return strings.Join(parts, " ")
}

// ProcessRunner runs binaries with os/exec, logging every invocation at debug level.
type ProcessRunner struct {
	logger logrus.FieldLogger
}

// NewProcessRunner creates a runner. A nil logger uses the logrus standard logger.
func NewProcessRunner(logger logrus.FieldLogger) *ProcessRunner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &ProcessRunner{logger: logger}
}

// Run executes name with args and waits for it to finish. A non-zero exit yields a
// *CommandError alongside the captured Result; a binary that cannot be started yields
// an error wrapping ErrStart.
func (r *ProcessRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	command := CommandString(name, args...)
	r.logger.Debug(command)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		result.ExitCode = -1

		return result, fmt.Errorf("%w %q: %w", ErrStart, name, runErr)
	}

	result.ExitCode = exitErr.ExitCode()

	return result, &CommandError{
		Command:  command,
		Code:     result.ExitCode,
		Stderr:   result.Stderr,
		Signaled: result.ExitCode < 0,
	}
}
