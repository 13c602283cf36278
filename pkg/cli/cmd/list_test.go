package cmd_test

import (
	"errors"
	"testing"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/devantler-tech/pose/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRegistryDown = errors.New("registry down")

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "services", args: []string{"list", "services"}, want: "web\ndb\ncache\n"},
		{name: "services oneline", args: []string{"list", "services", "--pretty", "oneline"}, want: "web db cache\n"},
		{name: "volumes", args: []string{"list", "volumes"}, want: "data\n"},
		{name: "networks", args: []string{"list", "networks"}, want: "front\nback\n"},
		{name: "configs", args: []string{"list", "configs"}, want: ""},
		{name: "secrets", args: []string{"list", "secrets"}, want: ""},
		{name: "profiles", args: []string{"list", "profiles"}, want: "backend\nfrontend\n"},
		{name: "images", args: []string{"list", "images"}, want: "nginx\npostgres:16.1\nrabbitmq:3\n"},
		{name: "images filtered", args: []string{"list", "images", "--filter", "tag=latest"}, want: "nginx\n"},
		{name: "depends", args: []string{"list", "depends", "web"}, want: "db\ncache\n"},
		{name: "depends none", args: []string{"list", "depends", "cache"}, want: ""},
		{
			name: "envs mapping",
			args: []string{"list", "envs", "web"},
			want: "DESC='App 1 is the \"Best\"'\nDB_PORT=5432\n",
		},
		{name: "envs sequence", args: []string{"list", "envs", "db"}, want: "POSTGRES_PASSWORD=secret\nUNDEFINED=\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeFixture(t, fixture)

			res := execute(t, nil, append([]string{"--no-docker", "-f", path}, tc.args...)...)

			require.NoError(t, res.err)
			assert.Equal(t, tc.want, res.stdout)
		})
	}
}

func TestList_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		args     []string
		exitCode int
		message  string
	}{
		{
			name:     "unknown service",
			content:  fixture,
			args:     []string{"list", "envs", "api"},
			exitCode: 16,
			message:  "No such service found: api",
		},
		{
			name:     "shorthand service",
			content:  "services:\n  app: the-app\n",
			args:     []string{"list", "depends", "app"},
			exitCode: 16,
			message:  "No such service found: app",
		},
		{
			name:     "images without services",
			content:  "volumes:\n  data: {}\n",
			args:     []string{"list", "images"},
			exitCode: 15,
			message:  "No services section found",
		},
		{
			name:     "profiles without services",
			content:  "volumes:\n  data: {}\n",
			args:     []string{"list", "profiles"},
			exitCode: 15,
			message:  "No profiles section found",
		},
		{
			name:     "wrong filter",
			content:  fixture,
			args:     []string{"list", "images", "--filter", "label=x"},
			exitCode: errorhandler.ExitUsage,
			message:  "wrong filter 'label=x', only 'tag=' filter supported",
		},
		{
			name:     "tag filter without tag",
			content:  fixture,
			args:     []string{"list", "images", "--tag-filter", "regex=mysql"},
			exitCode: errorhandler.ExitUsage,
		},
		{
			name:     "not a mapping",
			content:  "- web\n- db\n",
			args:     []string{"list", "services"},
			exitCode: 13,
		},
		{
			name:     "invalid yaml",
			content:  "services: [\n",
			args:     []string{"list", "services"},
			exitCode: 15,
		},
		{
			name:     "missing argument",
			content:  fixture,
			args:     []string{"list", "envs"},
			exitCode: errorhandler.ExitUsage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeFixture(t, tc.content)

			res := execute(t, nil, append([]string{"--no-docker", "-f", path}, tc.args...)...)

			require.Error(t, res.err)
			assert.Equal(t, tc.exitCode, errorhandler.ExitCode(res.err))

			if tc.message != "" {
				assert.Contains(t, res.err.Error(), tc.message)
			}
		})
	}
}

func TestList_NoDockerMultipleFiles(t *testing.T) {
	t.Parallel()

	res := execute(t, nil, "--no-docker", "-f", "a.yaml", "-f", "b.yaml", "list", "services")

	require.Error(t, res.err)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(res.err))
}

func TestList_ThroughDockerCompose(t *testing.T) {
	t.Parallel()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, []string{"compose", "-f", "compose.yaml", "config", "--no-consistency"}).
		Return(runner.Result{Stdout: fixture}, nil)

	res := execute(t, []di.Module{di.ProvideRunner(fake)},
		"-f", "compose.yaml", "--no-consistency", "list", "services", "--pretty", "oneline")

	require.NoError(t, res.err)
	assert.Equal(t, "web db cache\n", res.stdout)
	fake.AssertExpectations(t)
}

func TestList_DockerComposeFailure(t *testing.T) {
	t.Parallel()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return(runner.Result{}, &runner.CommandError{
			Command: "docker compose config",
			Code:    14,
			Stderr:  "service \"web\" refers to undefined volume",
		})

	res := execute(t, []di.Module{di.ProvideRunner(fake)}, "list", "services")

	require.Error(t, res.err)
	assert.Equal(t, 14, errorhandler.ExitCode(res.err))
	assert.Contains(t, res.err.Error(), "undefined volume")
}

func resolvingOracle() *registry.MockOracle {
	oracle := registry.NewMockOracle()
	oracle.On("LocalImageExists", mock.Anything, mock.Anything).Return(registry.NotFound, nil)
	oracle.On("RemoteManifestExists", mock.Anything, "postgres:16.2").Return(registry.Found, nil)
	oracle.On("RemoteManifestExists", mock.Anything, mock.Anything).Return(registry.NotFound, nil)

	return oracle
}

func TestListImages_TagResolution(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)
	oracle := resolvingOracle()

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: oracle})},
		"--no-docker", "-f", path, "list", "images", "--tag", "16.2", "--threads", "2", "--progress")

	require.NoError(t, res.err)
	assert.Equal(t, "nginx\npostgres:16.2\nrabbitmq:3\n", res.stdout)
	assert.Contains(t, res.stderr, "postgres:16.2: found in registry")
	oracle.AssertNumberOfCalls(t, "LocalImageExists", 3)
}

func TestListImages_TagFilterAndOffline(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)

	oracle := registry.NewMockOracle()
	oracle.On("LocalImageExists", mock.Anything, "rabbitmq:feature-x").Return(registry.Found, nil)

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: oracle})},
		"--no-docker", "-f", path, "list", "images",
		"--tag", "Feature/X", "--tag-filter", "regex=^rabbitmq", "--offline")

	require.NoError(t, res.err)
	assert.Equal(t, "nginx\npostgres:16.1\nrabbitmq:feature-x\n", res.stdout)
	oracle.AssertExpectations(t)
	oracle.AssertNotCalled(t, "RemoteManifestExists", mock.Anything, mock.Anything)
}

func TestListImages_FatalLookup(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, fixture)

	oracle := registry.NewMockOracle()
	oracle.On("LocalImageExists", mock.Anything, mock.Anything).Return(registry.NotFound, nil)
	oracle.On("RemoteManifestExists", mock.Anything, mock.Anything).Return(registry.NotFound,
		&registry.LookupError{Op: registry.OpRemote, Ref: "x", Code: 125, Err: errRegistryDown})

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: oracle})},
		"--no-docker", "-f", path, "list", "images", "--tag", "16.2")

	require.Error(t, res.err)
	require.ErrorIs(t, res.err, registry.ErrLookupFailed)
	assert.Equal(t, 125, errorhandler.ExitCode(res.err))
	assert.Empty(t, res.stdout)
}

func TestListImages_TagFromEnvironment(t *testing.T) {
	t.Setenv("POSE_TAG", "16.2")

	path := writeFixture(t, fixture)

	res := execute(t, []di.Module{di.ProvideOracleFactory(fixedFactory{oracle: resolvingOracle()})},
		"--no-docker", "-f", path, "list", "images", "--pretty", "oneline")

	require.NoError(t, res.err)
	assert.Equal(t, "nginx postgres:16.2 rabbitmq:3\n", res.stdout)
}

func TestList_UnknownObject(t *testing.T) {
	t.Parallel()

	res := execute(t, nil, "list", "containers")

	require.Error(t, res.err)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(res.err))
	assert.Contains(t, res.err.Error(), `unknown command "containers" for "pose list"`)
}
