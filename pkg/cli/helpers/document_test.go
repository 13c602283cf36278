package helpers_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
	"github.com/devantler-tech/pose/pkg/compose"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const composeText = "services:\n  app:\n    image: app:1.0\n"

func writeComposeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "compose.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func loadWithRunner(
	t *testing.T,
	r runner.Runner,
	opts helpers.GlobalOptions,
	stderr *bytes.Buffer,
) (helpers.Source, error) {
	t.Helper()

	var (
		source  helpers.Source
		loadErr error
	)

	err := di.New(di.ProvideRunner(r)).Invoke(func(injector di.Injector) error {
		source, loadErr = helpers.LoadDocument(context.Background(), injector, opts, stderr)

		return nil
	})
	require.NoError(t, err)

	return source, loadErr
}

func TestLoadDocument_NoDocker(t *testing.T) {
	t.Parallel()

	path := writeComposeFile(t, composeText)

	var stderr bytes.Buffer

	source, err := loadWithRunner(t, runner.NewMockRunner(),
		helpers.GlobalOptions{Files: []string{path}, NoDocker: true}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, composeText, source.Text)
	assert.Equal(t, []string{"app"}, source.Document.RootElementNames(compose.ServicesKey))
	assert.Empty(t, stderr.String())
}

func TestLoadDocument_NoDockerMultipleFiles(t *testing.T) {
	t.Parallel()

	_, err := loadWithRunner(t, runner.NewMockRunner(),
		helpers.GlobalOptions{Files: []string{"a.yaml", "b.yaml"}, NoDocker: true}, &bytes.Buffer{})

	require.ErrorIs(t, err, helpers.ErrMultipleFilesWithoutDocker)
	assert.Equal(t, errorhandler.ExitUsage, errorhandler.ExitCode(err))
}

func TestLoadDocument_Docker(t *testing.T) {
	t.Parallel()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, []string{"compose", "-f", "compose.yaml", "config", "--no-interpolate"}).
		Return(runner.Result{Stdout: composeText, Stderr: "version is obsolete\n"}, nil)

	var stderr bytes.Buffer

	source, err := loadWithRunner(t, fake,
		helpers.GlobalOptions{Files: []string{"compose.yaml"}, NoInterpolate: true}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, composeText, source.Text)
	assert.Contains(t, stderr.String(), "the following are warnings from compose:")
	assert.Contains(t, stderr.String(), "version is obsolete")
	fake.AssertExpectations(t)
}

func TestLoadDocument_DockerWarningsQuiet(t *testing.T) {
	t.Parallel()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return(runner.Result{Stdout: composeText, Stderr: "noise\n"}, nil)

	var stderr bytes.Buffer

	_, err := loadWithRunner(t, fake, helpers.GlobalOptions{Quiet: true}, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
}

func TestLoadDocument_DockerMissingFallsBack(t *testing.T) {
	t.Parallel()

	path := writeComposeFile(t, composeText)

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return(runner.Result{}, fmt.Errorf("%w: docker: executable file not found", runner.ErrStart))

	var stderr bytes.Buffer

	source, err := loadWithRunner(t, fake, helpers.GlobalOptions{Files: []string{path}}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, composeText, source.Text)
	assert.Contains(t, stderr.String(), "parsing will be executed without compose")
}

func TestLoadDocument_DockerFailure(t *testing.T) {
	t.Parallel()

	fake := runner.NewMockRunner()
	fake.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return(runner.Result{}, &runner.CommandError{Command: "docker compose config", Code: 14, Stderr: "no such file"})

	_, err := loadWithRunner(t, fake, helpers.GlobalOptions{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, 14, errorhandler.ExitCode(err))
}

func TestParseDocument_ExitCodes(t *testing.T) {
	t.Parallel()

	_, err := helpers.ParseDocument("- a\n- b\n")
	require.ErrorIs(t, err, compose.ErrNotMapping)
	assert.Equal(t, 13, errorhandler.ExitCode(err))

	_, err = helpers.ParseDocument("services: [\n")
	require.ErrorIs(t, err, compose.ErrInvalidYAML)
	assert.Equal(t, 15, errorhandler.ExitCode(err))
}
