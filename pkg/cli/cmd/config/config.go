package config

import (
	"fmt"
	"io"

	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/compose"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/devantler-tech/pose/pkg/fsutil"
	"github.com/devantler-tech/pose/pkg/svc/diff"
	"github.com/spf13/cobra"
)

const (
	outputFlag = "output"
	diffFlag   = "diff"
)

// serializeExitCode is returned when the document cannot be rendered.
const serializeExitCode = 20

// Diff header names.
const (
	originalName = "a/compose.yaml"
	renderedName = "b/compose.yaml"
)

const configCmdLong = `Parse, resolve and render the compose file in canonical format.

With --tag, service images are replaced by their TAG version wherever it
exists locally or in the registry, leaving everything else untouched.

Examples:
  # Render the document with the images of the current branch
  pose config --tag "$(git branch --show-current)" -o compose-ci.yaml

  # Show which images would change
  pose config --tag feature-x --diff`

// NewConfigCmd creates the config command.
func NewConfigCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Parse, resolve and render compose file in canonical format",
		Long:         configCmdLong,
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
	}

	cmd.Flags().StringP(outputFlag, "o", "", "Save to file (default to stdout)")
	cmd.Flags().Bool(diffFlag, false, "Print a unified diff of the changes instead of the document")
	helpers.AddTagFlags(cmd)

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, handleConfigRunE)

	return cmd
}

// --- internals ---

func handleConfigRunE(cmd *cobra.Command, _ []string, injector di.Injector) error {
	settings := helpers.NewSettings(cmd)

	resolver, err := helpers.BuildResolver(injector, helpers.ReadTagOptions(settings), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	source, err := helpers.LoadDocument(cmd.Context(), injector,
		helpers.ReadGlobalOptions(settings), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	original, err := render(source.Document)
	if err != nil {
		return err
	}

	rendered := original

	if resolver != nil {
		_, err = source.Document.UpdateImagesTag(cmd.Context(), resolver)
		if err != nil {
			return err
		}

		rendered, err = render(source.Document)
		if err != nil {
			return err
		}
	}

	output := settings.GetString(outputFlag)
	if output != "" {
		_, err = fsutil.WriteFile(output, rendered)
		if err != nil {
			return err //nolint:wrapcheck // WriteError carries the path and exit code.
		}
	}

	switch {
	case settings.GetBool(diffFlag):
		return write(cmd.OutOrStdout(), diff.Unified(originalName, renderedName, original, rendered, diff.DefaultContext))
	case output == "":
		return write(cmd.OutOrStdout(), rendered)
	default:
		return nil
	}
}

func render(document *compose.Document) (string, error) {
	text, err := document.Serialize()
	if err != nil {
		return "", errorhandler.WithExitCode(err, serializeExitCode)
	}

	return text, nil
}

func write(out io.Writer, text string) error {
	_, err := io.WriteString(out, text)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}
