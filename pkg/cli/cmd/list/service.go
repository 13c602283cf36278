package list

import (
	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/compose"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/spf13/cobra"
)

// NewDependsCmd creates the command listing the dependencies of a service.
func NewDependsCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return newServiceCmd(runtimeContainer, "depends SERVICE",
		"List the services a service depends on", compose.ServiceDependsOn)
}

// NewEnvsCmd creates the command listing the environment variables of a service as KEY=VALUE.
func NewEnvsCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return newServiceCmd(runtimeContainer, "envs SERVICE",
		"List the environment variables of a service", compose.ServiceEnvironment)
}

// newServiceCmd builds a command printing one line per value extracted from the
// named service. A service without the attribute prints nothing.
func newServiceCmd(
	runtimeContainer *di.Runtime,
	use, short string,
	extract func(*compose.Mapping) ([]string, bool),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         errorhandler.UsageArgs(cobra.ExactArgs(1)),
		SilenceUsage: true,
	}

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, args []string, injector di.Injector) error {
			source, err := helpers.LoadDocument(cmd.Context(), injector,
				helpers.ReadGlobalOptions(helpers.NewSettings(cmd)), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			service, ok := source.Document.Service(args[0])
			if !ok {
				return noSuchService(args[0])
			}

			values, _ := extract(service)

			return helpers.PrintNames(cmd.OutOrStdout(), values, helpers.PrettyFull)
		})

	return cmd
}
