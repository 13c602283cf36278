package slug

import (
	"fmt"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/di"
	textslug "github.com/devantler-tech/pose/pkg/slug"
	"github.com/spf13/cobra"
)

const slugCmdLong = `Output a version of TEXT usable as an image tag.

The text is trimmed and lowercased, every character other than a letter, a
digit or '.' becomes '-', and the result is cut to 63 characters. Without
TEXT the name of the current git branch is used.`

// NewSlugCmd creates the slug command.
func NewSlugCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "slug [TEXT]",
		Short:        "Output a slug version of the text passed, or the current git branch",
		Long:         slugCmdLong,
		Args:         errorhandler.UsageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, args []string, injector di.Injector) error {
			text, err := slugSource(cmd, args, injector)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), textslug.Slug(text))
			if err != nil {
				return fmt.Errorf("write slug: %w", err)
			}

			return nil
		})

	return cmd
}

func slugSource(cmd *cobra.Command, args []string, injector di.Injector) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	provider, err := di.ResolveBranchProvider(injector)
	if err != nil {
		return "", fmt.Errorf("resolve branch provider: %w", err)
	}

	return provider.CurrentBranch(cmd.Context()) //nolint:wrapcheck // BranchError carries the exit code.
}
