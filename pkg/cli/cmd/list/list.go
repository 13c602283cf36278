package list

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/compose"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/spf13/cobra"
)

// Exit codes of list failures.
const (
	missingSectionExitCode = 15
	noSuchServiceExitCode  = 16
)

// List errors.
var (
	// ErrNoServices is returned when the document has no services section.
	ErrNoServices = errors.New("No services section found") //nolint:staticcheck // user-facing message
	// ErrNoProfiles is returned when no profiles can be collected because there are no services.
	ErrNoProfiles = errors.New("No profiles section found") //nolint:staticcheck // user-facing message
	// ErrNoSuchService is returned by depends and envs for an unknown service.
	ErrNoSuchService = errors.New("No such service found") //nolint:staticcheck // user-facing message
)

// NewListCmd creates the list command.
func NewListCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List objects found in the compose file",
		Long:         "List the names of services, volumes, networks, configs, secrets, profiles or images.",
		Args:         errorhandler.NoSubcommandArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	for _, element := range []struct{ name, short string }{
		{compose.ServicesKey, "List service names"},
		{compose.VolumesKey, "List volume names"},
		{compose.NetworksKey, "List network names"},
		{compose.ConfigsKey, "List config names"},
		{compose.SecretsKey, "List secret names"},
	} {
		cmd.AddCommand(newRootElementCmd(runtimeContainer, element.name, element.short))
	}

	cmd.AddCommand(NewProfilesCmd(runtimeContainer))
	cmd.AddCommand(NewImagesCmd(runtimeContainer))
	cmd.AddCommand(NewDependsCmd(runtimeContainer))
	cmd.AddCommand(NewEnvsCmd(runtimeContainer))

	return cmd
}

func newRootElementCmd(runtimeContainer *di.Runtime, element, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          element,
		Short:        short,
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
	}

	helpers.AddPrettyFlag(cmd)

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, _ []string, injector di.Injector) error {
			settings := helpers.NewSettings(cmd)

			source, err := helpers.LoadDocument(cmd.Context(), injector,
				helpers.ReadGlobalOptions(settings), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return helpers.PrintNames(cmd.OutOrStdout(),
				source.Document.RootElementNames(element), settings.GetString(helpers.PrettyFlag))
		})

	return cmd
}

// NewProfilesCmd creates the command listing the profiles declared by the services.
func NewProfilesCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "profiles",
		Short:        "List profile names declared by the services",
		Args:         errorhandler.UsageArgs(cobra.NoArgs),
		SilenceUsage: true,
	}

	helpers.AddPrettyFlag(cmd)

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, _ []string, injector di.Injector) error {
			settings := helpers.NewSettings(cmd)

			source, err := helpers.LoadDocument(cmd.Context(), injector,
				helpers.ReadGlobalOptions(settings), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			profiles, ok := source.Document.ProfileNames()
			if !ok {
				return errorhandler.WithExitCode(ErrNoProfiles, missingSectionExitCode)
			}

			return helpers.PrintNames(cmd.OutOrStdout(), profiles, settings.GetString(helpers.PrettyFlag))
		})

	return cmd
}

func noSuchService(name string) error {
	return errorhandler.WithExitCode(fmt.Errorf("%w: %s", ErrNoSuchService, name), noSuchServiceExitCode)
}
