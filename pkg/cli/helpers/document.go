package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	clientcompose "github.com/devantler-tech/pose/pkg/client/compose"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/cmd/runner"
	"github.com/devantler-tech/pose/pkg/compose"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/devantler-tech/pose/pkg/utils/notify"
)

// Parse failure exit codes.
const (
	notMappingExitCode  = 13
	invalidYAMLExitCode = 15
)

// ErrMultipleFilesWithoutDocker is returned when --no-docker is combined with more than one --file.
var ErrMultipleFilesWithoutDocker = errors.New("multiple '--file' arguments cannot be used with '--no-docker'")

// Source is the raw text a document was parsed from, with the document itself.
type Source struct {
	Text     string
	Document *compose.Document
}

// LoadDocument materializes the compose document selected by opts and parses it.
// Without --no-docker the canonical document comes from `docker compose config`;
// when docker cannot be started the first file is read directly instead. Warnings go to
// stderr unless opts.Quiet is set.
func LoadDocument(
	ctx context.Context,
	injector di.Injector,
	opts GlobalOptions,
	stderr io.Writer,
) (Source, error) {
	text, err := loadText(ctx, injector, opts, stderr)
	if err != nil {
		return Source{}, err
	}

	document, err := ParseDocument(text)
	if err != nil {
		return Source{}, err
	}

	return Source{Text: text, Document: document}, nil
}

// ParseDocument parses text and attaches the CLI exit code of the parse failure.
func ParseDocument(text string) (*compose.Document, error) {
	document, err := compose.Parse(text)
	if err == nil {
		return document, nil
	}

	if errors.Is(err, compose.ErrNotMapping) {
		return nil, errorhandler.WithExitCode(err, notMappingExitCode)
	}

	return nil, errorhandler.WithExitCode(err, invalidYAMLExitCode)
}

func loadText(
	ctx context.Context,
	injector di.Injector,
	opts GlobalOptions,
	stderr io.Writer,
) (string, error) {
	if opts.NoDocker {
		if len(opts.Files) > 1 {
			return "", errorhandler.UsageError(ErrMultipleFilesWithoutDocker)
		}

		return readFile(opts, stderr)
	}

	r, err := di.ResolveRunner(injector)
	if err != nil {
		return "", fmt.Errorf("resolve runner: %w", err)
	}

	output, err := clientcompose.Config(ctx, r, clientcompose.ConfigOptions{
		Files:         opts.Files,
		NoConsistency: opts.NoConsistency,
		NoInterpolate: opts.NoInterpolate,
		NoNormalize:   opts.NoNormalize,
	})
	if errors.Is(err, runner.ErrStart) {
		notify.Warningf(stderr, "%v", err)
		notify.Warningf(stderr, "parsing will be executed without compose")

		return readFile(opts, stderr)
	}

	if err != nil {
		return "", err
	}

	if !opts.Quiet && output.Warnings != "" {
		notify.Warningf(stderr, "the following are warnings from compose:")
		_, _ = io.WriteString(stderr, output.Warnings)
	}

	return output.Document, nil
}

func readFile(opts GlobalOptions, stderr io.Writer) (string, error) {
	explicit := ""
	if len(opts.Files) > 0 {
		explicit = opts.Files[0]
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	text, warning, err := clientcompose.ReadFile(dir, explicit)
	if err != nil {
		return "", err
	}

	if warning != "" && !opts.Quiet {
		notify.Warningf(stderr, "%s", warning)
	}

	return text, nil
}
