package helpers

import (
	"errors"
	"io"
	"strings"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that back every flag, e.g. POSE_NO_DOCKER.
const EnvPrefix = "POSE"

// Global flag names.
const (
	FileFlag          = "file"
	VerboseFlag       = "verbose"
	QuietFlag         = "quiet"
	NoDockerFlag      = "no-docker"
	NoConsistencyFlag = "no-consistency"
	NoInterpolateFlag = "no-interpolate"
	NoNormalizeFlag   = "no-normalize"
)

// ErrVerboseAndQuiet is returned when both --verbose and --quiet are set.
var ErrVerboseAndQuiet = errors.New("--verbose and --quiet cannot be used together")

// GlobalOptions holds the flags shared by every command.
type GlobalOptions struct {
	Files         []string
	Verbose       bool
	Quiet         bool
	NoDocker      bool
	NoConsistency bool
	NoInterpolate bool
	NoNormalize   bool
}

// AddGlobalFlags registers the shared flags as persistent flags of root.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()

	flags.StringArrayP(FileFlag, "f", nil, "Compose configuration file (repeatable)")
	flags.Bool(VerboseFlag, false, "Increase verbosity")
	flags.BoolP(QuietFlag, "q", false, "Only display relevant information or errors")
	flags.Bool(NoDockerFlag, false, "Don't call docker compose to parse compose model")
	flags.Bool(NoConsistencyFlag, false,
		"Don't check model consistency - warning: may produce invalid Compose output")
	flags.Bool(NoInterpolateFlag, false, "Don't interpolate environment variables")
	flags.Bool(NoNormalizeFlag, false, "Don't normalize compose model")
}

// NewSettings returns a viper instance bound to every flag of cmd, local and
// inherited, falling back to POSE_* environment variables.
func NewSettings(cmd *cobra.Command) *viper.Viper {
	settings := viper.New()
	settings.SetEnvPrefix(EnvPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		_ = settings.BindPFlag(flag.Name, flag)
	})

	return settings
}

// ReadGlobalOptions reads the shared flags from settings.
func ReadGlobalOptions(settings *viper.Viper) GlobalOptions {
	return GlobalOptions{
		Files:         settings.GetStringSlice(FileFlag),
		Verbose:       settings.GetBool(VerboseFlag),
		Quiet:         settings.GetBool(QuietFlag),
		NoDocker:      settings.GetBool(NoDockerFlag),
		NoConsistency: settings.GetBool(NoConsistencyFlag),
		NoInterpolate: settings.GetBool(NoInterpolateFlag),
		NoNormalize:   settings.GetBool(NoNormalizeFlag),
	}
}

// ConfigureLogger sends logger output to out at the level chosen by opts: debug
// with --verbose, warn with --quiet, info otherwise.
func ConfigureLogger(logger *logrus.Logger, out io.Writer, opts GlobalOptions) error {
	if opts.Verbose && opts.Quiet {
		return errorhandler.UsageError(ErrVerboseAndQuiet)
	}

	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case opts.Verbose:
		logger.SetLevel(logrus.DebugLevel)
	case opts.Quiet:
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return nil
}
