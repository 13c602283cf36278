package helpers

import (
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/pose/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/pose/pkg/compose"
	"github.com/devantler-tech/pose/pkg/di"
	"github.com/devantler-tech/pose/pkg/registry"
	"github.com/devantler-tech/pose/pkg/svc/tagresolver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Tag resolution flag names.
const (
	TagFlag                = "tag"
	TagFilterFlag          = "tag-filter"
	IgnoreUnauthorizedFlag = "ignore-unauthorized"
	NoSlugFlag             = "no-slug"
	OfflineFlag            = "offline"
	ThreadsFlag            = "threads"
	ProgressFlag           = "progress"
	RegistryBackendFlag    = "registry-backend"
)

// Worker bounds for --threads.
const (
	DefaultThreads = 8
	MinThreads     = 1
	MaxThreads     = 32
)

// Tag flag validation errors.
var (
	// ErrTagFilterWithoutTag is returned when --tag-filter is given without --tag.
	ErrTagFilterWithoutTag = errors.New("--tag-filter requires --tag")
	// ErrThreadsOutOfRange is returned when --threads is outside MinThreads..MaxThreads.
	ErrThreadsOutOfRange = errors.New("--threads out of range")
)

// TagOptions holds the tag resolution flags.
type TagOptions struct {
	Enabled            bool
	Tag                string
	Filter             string
	IgnoreUnauthorized bool
	NoSlug             bool
	Offline            bool
	Threads            int
	Progress           bool
	Backend            string
}

// AddTagFlags registers the tag resolution flags on cmd.
func AddTagFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String(TagFlag, "",
		"Replace image tags with TAG where the TAG version exists locally or in the registry "+
			"(TAG is slugified unless --no-slug is set)")
	flags.String(TagFilterFlag, "",
		"Only resolve images matching regex=EXPR, or not matching regex!=EXPR")
	flags.Bool(IgnoreUnauthorizedFlag, false, "Treat registry authorization failures as not found")
	flags.Bool(NoSlugFlag, false, "Use TAG verbatim instead of slugifying it")
	flags.Bool(OfflineFlag, false, "Only look for TAG versions in the local image store")
	flags.Int(ThreadsFlag, DefaultThreads,
		fmt.Sprintf("Number of concurrent lookups (%d to %d)", MinThreads, MaxThreads))
	flags.Bool(ProgressFlag, false, "Print per-image resolution progress to stderr")
	flags.String(RegistryBackendFlag, registry.BackendCLI,
		fmt.Sprintf("Registry lookup backend (%s or %s)", registry.BackendCLI, registry.BackendEngine))
}

// ReadTagOptions reads the tag resolution flags from settings. Resolution is enabled
// when the tag flag is set on the command line or through POSE_TAG.
func ReadTagOptions(settings *viper.Viper) TagOptions {
	return TagOptions{
		Enabled:            settings.IsSet(TagFlag),
		Tag:                settings.GetString(TagFlag),
		Filter:             settings.GetString(TagFilterFlag),
		IgnoreUnauthorized: settings.GetBool(IgnoreUnauthorizedFlag),
		NoSlug:             settings.GetBool(NoSlugFlag),
		Offline:            settings.GetBool(OfflineFlag),
		Threads:            settings.GetInt(ThreadsFlag),
		Progress:           settings.GetBool(ProgressFlag),
		Backend:            settings.GetString(RegistryBackendFlag),
	}
}

// BuildResolver returns the tag resolver configured by opts, or nil when resolution
// is not enabled. Invalid flag combinations are usage errors.
func BuildResolver(injector di.Injector, opts TagOptions, stderr io.Writer) (compose.Resolver, error) {
	if !opts.Enabled {
		if opts.Filter != "" {
			return nil, errorhandler.UsageError(ErrTagFilterWithoutTag)
		}

		return nil, nil
	}

	if opts.Threads < MinThreads || opts.Threads > MaxThreads {
		return nil, errorhandler.UsageError(fmt.Errorf("%w: %d is not in %d..%d",
			ErrThreadsOutOfRange, opts.Threads, MinThreads, MaxThreads))
	}

	var filter *tagresolver.FilterRule

	if opts.Filter != "" {
		rule, err := tagresolver.ParseFilterRule(opts.Filter)
		if err != nil {
			return nil, errorhandler.UsageError(err)
		}

		filter = rule
	}

	factory, err := di.ResolveOracleFactory(injector)
	if err != nil {
		return nil, fmt.Errorf("resolve oracle factory: %w", err)
	}

	oracle, err := factory.New(opts.Backend)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownBackend) {
			return nil, errorhandler.UsageError(err)
		}

		return nil, err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger: %w", err)
	}

	resolverOpts := tagresolver.Options{
		Tag:                opts.Tag,
		Filter:             filter,
		IgnoreUnauthorized: opts.IgnoreUnauthorized,
		NoSlug:             opts.NoSlug,
		Offline:            opts.Offline,
		Workers:            opts.Threads,
		Logger:             logger,
	}

	if opts.Progress {
		resolverOpts.Progress = stderr
	}

	resolver, err := tagresolver.New(oracle, resolverOpts)
	if err != nil {
		return nil, errorhandler.UsageError(err)
	}

	return resolver, nil
}
