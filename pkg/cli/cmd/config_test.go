package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/devantler-tech/pose/pkg/registry"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfig_RendersDocument(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)

	res := execute(t, nil, "--no-docker", "-f", path, "config")

	require.NoError(t, res.err)
	assert.Equal(t, fixture, res.stdout)
}

func TestConfig_ResolvesTags(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: resolvingOracle()})},
		"--no-docker", "-f", path, "config", "--tag", "16.2")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "image: postgres:16.2")
	snaps.MatchSnapshot(t, res.stdout)
}

func TestConfig_Diff(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: resolvingOracle()})},
		"--no-docker", "-f", path, "config", "--tag", "16.2", "--diff")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-    image: postgres:16.1\n+    image: postgres:16.2\n")
	snaps.MatchSnapshot(t, res.stdout)
}

func TestConfig_DiffWithoutChanges(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)

	res := execute(t, nil, "--no-docker", "-f", path, "config", "--diff")

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestConfig_Output(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)
	output := filepath.Join(t.TempDir(), "out", "compose-ci.yaml")

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: resolvingOracle()})},
		"--no-docker", "-f", path, "config", "--tag", "16.2", "-o", output)

	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "image: postgres:16.2")
	assert.Contains(t, string(written), "image: rabbitmq:3")
}

func TestConfig_OutputFailure(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)
	blocker := writeFixture(t, "not a directory")

	res := execute(t, nil, "--no-docker", "-f", path, "config", "-o", filepath.Join(blocker, "compose.yaml"))

	require.Error(t, res.err)
	assert.Equal(t, 18, errorhandler.ExitCode(res.err))
	assert.Contains(t, res.err.Error(), "writing output to")
}

func TestConfig_UnauthorizedIgnored(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "services:\n  app:\n    image: private/app:1.0\n")

	oracle := registry.NewMockOracle()
	oracle.On("LocalImageExists", mock.Anything, mock.Anything).Return(registry.NotFound, nil)
	oracle.On("RemoteManifestExists", mock.Anything, mock.Anything).Return(registry.Unauthorized, nil)

	modules := []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: oracle})}

	res := execute(t, modules, "--no-docker", "-f", path, "config", "--tag", "main")
	require.Error(t, res.err)

	res = execute(t, modules, "--no-docker", "-f", path, "config", "--tag", "main", "--ignore-unauthorized")
	require.NoError(t, res.err)
	assert.Equal(t, "services:\n  app:\n    image: private/app:1.0\n", res.stdout)
}
