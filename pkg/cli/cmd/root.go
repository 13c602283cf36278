package cmd

import (
	"fmt"

	"github.com/devantler-tech/pose/pkg/cli/cmd/config"
	"github.com/devantler-tech/pose/pkg/cli/cmd/get"
	"github.com/devantler-tech/pose/pkg/cli/cmd/list"
	"github.com/devantler-tech/pose/pkg/cli/cmd/slug"
	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const rootCmdLong = `pose reads a docker compose document and answers queries about it.

It lists services, volumes, networks, configs, secrets, profiles, images,
service dependencies and environment variables, renders the canonical
document, and can replace image tags with a tag (typically the current git
branch) wherever an image with that tag exists locally or in its registry.`

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithModules(version, commit, date)
}

// NewRootCmdWithModules creates the root command with extra dependency modules
// registered after the defaults, so they can replace any of them.
func NewRootCmdWithModules(version, commit, date string, modules ...di.Module) *cobra.Command {
	logger := logrus.New()
	runtimeContainer := di.NewRuntime(append([]di.Module{di.ProvideLogger(logger)}, modules...)...)

	cmd := &cobra.Command{
		Use:          "pose",
		Short:        "Query and rewrite docker compose documents",
		Long:         rootCmdLong,
		Args:         errorhandler.NoSubcommandArgs,
		RunE:         handleRootRunE,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := helpers.ReadGlobalOptions(helpers.NewSettings(cmd))

			return helpers.ConfigureLogger(logger, cmd.ErrOrStderr(), opts)
		},
	}

	// Set version if available
	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	helpers.AddGlobalFlags(cmd)

	// Add all subcommands
	cmd.AddCommand(list.NewListCmd(runtimeContainer))
	cmd.AddCommand(config.NewConfigCmd(runtimeContainer))
	cmd.AddCommand(slug.NewSlugCmd(runtimeContainer))
	cmd.AddCommand(get.NewGetCmd(runtimeContainer, version))

	return cmd
}

// Execute runs the provided root command. A failure is an *errorhandler.CommandError
// whose message is ready to print and whose ExitCode is the process exit code.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	return executor.Execute(cmd) //nolint:wrapcheck // CommandError is the boundary type.
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
