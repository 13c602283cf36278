package get

import (
	"fmt"
	"time"

	"github.com/devantler-tech/pose/pkg/cli/helpers"
	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/devantler-tech/pose/pkg/svc/fetch"
	"github.com/devantler-tech/pose/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFlag         = "output"
	scriptFlag         = "script"
	timeoutConnectFlag = "timeout-connect"
	maxTimeFlag        = "max-time"
)

const getCmdLong = `Download a file, typically a compose file.

With --script FROM:TO the first FROM in the URL is replaced by TO when the URL
is invalid, or when it answers 404, and the download is retried once. This
allows trying a branch-specific file first and falling back to a default one.

Examples:
  # Fetch the compose file of the current branch, falling back to main
  pose get "https://example.com/repo/raw/$(pose slug)/compose.yaml" \
    --script "$(pose slug):main"`

// NewGetCmd creates the get command. version is sent in the User-Agent header.
func NewGetCmd(runtimeContainer *di.Runtime, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "get URL",
		Short:        "Download a file",
		Long:         getCmdLong,
		Args:         errorhandler.UsageArgs(cobra.ExactArgs(1)),
		SilenceUsage: true,
	}

	cmd.Flags().StringP(outputFlag, "o", "", "Save to file (default use the same filename set in the URL)")
	cmd.Flags().String(scriptFlag, "",
		"Replace the first FROM with TO in the URL and retry when the URL is invalid or not found")
	cmd.Flags().Int(timeoutConnectFlag, int(fetch.DefaultConnectTimeout/time.Second),
		"Maximum time in seconds allowed for connection")
	cmd.Flags().Int(maxTimeFlag, int(fetch.DefaultMaxTime/time.Second),
		"Maximum time in seconds allowed for the whole operation")

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, args []string, injector di.Injector) error {
			return handleGetRunE(cmd, args[0], version, injector)
		})

	return cmd
}

// --- internals ---

func handleGetRunE(cmd *cobra.Command, rawURL, version string, injector di.Injector) error {
	settings := helpers.NewSettings(cmd)

	script, err := parseScript(settings)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return fmt.Errorf("resolve logger: %w", err)
	}

	fetcher := fetch.NewFetcher(fetch.Options{
		ConnectTimeout: time.Duration(settings.GetInt(timeoutConnectFlag)) * time.Second,
		MaxTime:        time.Duration(settings.GetInt(maxTimeFlag)) * time.Second,
		UserAgent:      "pose/" + version,
		Logger:         logger,
	})

	path, err := fetcher.Get(cmd.Context(), fetch.Request{
		URL:    rawURL,
		Output: settings.GetString(outputFlag),
		Script: script,
	})
	if err != nil {
		return err //nolint:wrapcheck // fetch errors carry the exit code.
	}

	if !settings.GetBool(helpers.QuietFlag) {
		notify.Successf(cmd.ErrOrStderr(), "saved %s", path)
	}

	return nil
}

func parseScript(settings *viper.Viper) (*fetch.Script, error) {
	expr := settings.GetString(scriptFlag)
	if expr == "" {
		return nil, nil
	}

	script, err := fetch.ParseScript(expr)
	if err != nil {
		return nil, errorhandler.UsageError(err)
	}

	return &script, nil
}
