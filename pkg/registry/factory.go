package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/devantler-tech/pose/pkg/client/docker"
	"github.com/devantler-tech/pose/pkg/client/oci"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
)

// Oracle backends.
const (
	// BackendCLI shells out to the docker binary.
	BackendCLI = "cli"
	// BackendEngine talks to the Docker Engine API and to registries directly.
	BackendEngine = "engine"
)

// ErrUnknownBackend is returned for a backend name other than BackendCLI or BackendEngine.
var ErrUnknownBackend = errors.New("unknown registry backend")

// Factory builds the oracle for a backend.
type Factory interface {
	New(backend string) (Oracle, error)
}

// DefaultFactory builds cached CLI or engine oracles.
type DefaultFactory struct {
	// Runner executes the docker binary for BackendCLI.
	Runner runner.Runner
	// CacheTTL bounds how long statuses are reused. Non-positive uses DefaultCacheTTL.
	CacheTTL time.Duration
}

// New returns a cached oracle for backend. An empty backend means BackendCLI.
func (f DefaultFactory) New(backend string) (Oracle, error) {
	var oracle Oracle

	switch backend {
	case "", BackendCLI:
		oracle = NewCLIOracle(f.Runner, runner.DockerBinary())
	case BackendEngine:
		apiClient, err := docker.GetDockerClient()
		if err != nil {
			return nil, fmt.Errorf("create engine oracle: %w", err)
		}

		oracle = NewEngineOracle(apiClient, oci.NewManifestChecker(oci.ManifestOptions{Insecure: true}))
	default:
		return nil, fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownBackend, backend, BackendCLI, BackendEngine)
	}

	return NewCachedOracle(oracle, f.CacheTTL), nil
}
