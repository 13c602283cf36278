package registry

import (
	"context"
	"errors"
	"strings"

	"github.com/devantler-tech/pose/pkg/cmd/runner"
)

// CLIOracle answers existence checks by invoking the docker binary.
type CLIOracle struct {
	runner runner.Runner
	binary string
}

// NewCLIOracle creates an oracle running binary through r. An empty binary uses
// runner.DockerBinary().
func NewCLIOracle(r runner.Runner, binary string) *CLIOracle {
	if binary == "" {
		binary = runner.DockerBinary()
	}

	return &CLIOracle{runner: r, binary: binary}
}

// LocalImageExists runs `docker image inspect`.
func (o *CLIOracle) LocalImageExists(ctx context.Context, ref string) (Status, error) {
	_, err := o.runner.Run(ctx, o.binary, "image", "inspect", "--format", "{{.Id}}", ref)

	return classifyCommand(OpLocal, ref, err, classifyLocalMessage)
}

// RemoteManifestExists runs `docker manifest inspect --insecure`.
func (o *CLIOracle) RemoteManifestExists(ctx context.Context, ref string) (Status, error) {
	_, err := o.runner.Run(ctx, o.binary, "manifest", "inspect", "--insecure", ref)

	return classifyCommand(OpRemote, ref, err, classifyMessage)
}

// classifyCommand turns the outcome of a docker invocation into a status, or a
// *LookupError when classify does not recognize docker's diagnostic.
func classifyCommand(op, ref string, err error, classify func(string) (Status, bool)) (Status, error) {
	if err == nil {
		return Found, nil
	}

	var cmdErr *runner.CommandError
	if !errors.As(err, &cmdErr) {
		return NotFound, &LookupError{Op: op, Ref: ref, Err: err}
	}

	if !cmdErr.Signaled {
		if status, ok := classify(cmdErr.Stderr); ok {
			return status, nil
		}
	}

	return NotFound, &LookupError{
		Op:      op,
		Ref:     ref,
		Code:    cmdErr.ExitCode(),
		Message: strings.TrimSpace(cmdErr.Stderr),
		Err:     cmdErr,
	}
}
