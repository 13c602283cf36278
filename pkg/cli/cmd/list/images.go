package list

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/spf13/cobra"
)

const (
	filterFlag      = "filter"
	tagFilterPrefix = "tag="
)

// ErrWrongFilter is returned for a --filter expression without the tag= prefix.
var ErrWrongFilter = errors.New("wrong filter")

const imagesCmdLong = `List the distinct images declared by the services, sorted.

With --tag, each image is checked for a version tagged TAG, first in the local
image store and then in its registry, and replaced by it when found.

Examples:
  # List images tagged 3.8
  pose list images --filter tag=3.8

  # Use the images built for the current branch where they exist
  pose list images --tag "$(git branch --show-current)"

  # Only consider images of the backend repository
  pose list images --tag feature-x --tag-filter 'regex=^registry.example.com/backend/'`

// NewImagesCmd creates the command listing service images.
func NewImagesCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "images",
		Short:        "List image names declared by the services",
		Long:         imagesCmdLong,
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
	}

	helpers.AddPrettyFlag(cmd)
	helpers.AddTagFlags(cmd)
	cmd.Flags().String(filterFlag, "", "Only list images with the given tag, e.g. 'tag=3.8'")

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, _ []string, injector di.Injector) error {
			settings := helpers.NewSettings(cmd)

			filterTag, err := parseTagFilter(settings.GetString(filterFlag))
			if err != nil {
				return err
			}

			resolver, err := helpers.BuildResolver(injector, helpers.ReadTagOptions(settings), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			source, err := helpers.LoadDocument(cmd.Context(), injector,
				helpers.ReadGlobalOptions(settings), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			images, ok, err := source.Document.ResolveImages(cmd.Context(), filterTag, resolver)
			if err != nil {
				return err
			}

			if !ok {
				return errorhandler.WithExitCode(ErrNoServices, missingSectionExitCode)
			}

			return helpers.PrintNames(cmd.OutOrStdout(), images, settings.GetString(helpers.PrettyFlag))
		})

	return cmd
}

// parseTagFilter returns the tag of a tag=TAG expression. An empty expression means no filter.
func parseTagFilter(expr string) (string, error) {
	if expr == "" {
		return "", nil
	}

	tag, found := strings.CutPrefix(expr, tagFilterPrefix)
	if !found {
		return "", errorhandler.UsageError(
			fmt.Errorf("%w '%s', only '%s' filter supported", ErrWrongFilter, expr, tagFilterPrefix))
	}

	return tag, nil
}
