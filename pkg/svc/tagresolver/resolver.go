package tagresolver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/pose/pkg/cmd/parallel"
	"github.com/devantler-tech/pose/pkg/image"
	"github.com/devantler-tech/pose/pkg/registry"
	"github.com/devantler-tech/pose/pkg/slug"
	"github.com/devantler-tech/pose/pkg/utils/notify"
	"github.com/sirupsen/logrus"
)

// Resolution errors.
var (
	// ErrEmptyTag is returned when the replacement tag is empty after slugification.
	ErrEmptyTag = errors.New("replacement tag is empty")
	// ErrUnauthorized is returned when a registry refuses a lookup that is not ignored.
	ErrUnauthorized = errors.New("registry refused the manifest lookup")
	// ErrUnexpectedLocalStatus is wrapped when a local check reports a refusal, which only
	// remote checks may do.
	ErrUnexpectedLocalStatus = errors.New("local image check reported unauthorized")
)

// Options configures a Resolver.
type Options struct {
	// Tag is the desired replacement tag. It is slugified unless NoSlug is set.
	Tag string
	// Filter restricts which images are looked up. Nil allows every image.
	Filter *FilterRule
	// IgnoreUnauthorized turns registry refusals into pass-through outcomes.
	IgnoreUnauthorized bool
	// NoSlug uses Tag verbatim.
	NoSlug bool
	// Offline skips remote manifest checks.
	Offline bool
	// Workers caps concurrent lookups. Non-positive means parallel.DefaultMaxWorkers.
	Workers int
	// Progress receives one line per resolved image. Nil disables progress output.
	Progress io.Writer
	// Logger receives debug traces. Nil uses the logrus standard logger.
	Logger logrus.FieldLogger
}

// Resolver substitutes the tag of image references with a desired tag wherever the
// substituted reference exists locally or in its registry.
type Resolver struct {
	oracle   registry.Oracle
	opts     Options
	tag      string
	progress io.Writer
	logger   logrus.FieldLogger
}

// New creates a resolver consulting oracle.
func New(oracle registry.Oracle, opts Options) (*Resolver, error) {
	tag := opts.Tag
	if !opts.NoSlug {
		tag = slug.Slug(tag)
	}

	if tag == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyTag, opts.Tag)
	}

	resolver := &Resolver{oracle: oracle, opts: opts, tag: tag, logger: opts.Logger}

	if opts.Progress != nil {
		resolver.progress = parallel.NewSyncWriter(opts.Progress)
	}

	if resolver.logger == nil {
		resolver.logger = logrus.StandardLogger()
	}

	return resolver, nil
}

// Tag returns the replacement tag after slugification.
func (r *Resolver) Tag() string {
	return r.tag
}

// Resolve produces one outcome per image, sorted by resolved reference. Lookups run
// on a bounded pool of workers sharing one job stack. A lookup failure that is not an
// absence, or a registry refusal that is not ignored, aborts the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, images []string) ([]image.Outcome, error) {
	if len(images) == 0 {
		return []image.Outcome{}, nil
	}

	workers := parallel.Workers(len(images), r.opts.Workers)
	results := make(chan image.Outcome, len(images))

	r.logger.Debugf("resolving %d images to tag %q with %d workers", len(images), r.tag, workers)

	err := parallel.Drain(ctx, parallel.NewStack(images), workers,
		func(ctx context.Context, raw string) error {
			outcome, resolveErr := r.resolveOne(ctx, raw)
			if resolveErr != nil {
				return resolveErr
			}

			results <- outcome

			return nil
		})
	close(results)

	if err != nil {
		return nil, err
	}

	outcomes := make([]image.Outcome, 0, len(images))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}

	image.SortOutcomes(outcomes)

	return outcomes, nil
}

func (r *Resolver) resolveOne(ctx context.Context, raw string) (image.Outcome, error) {
	original := image.ParseReference(raw)

	if !r.opts.Filter.Allows(raw) {
		r.report(notify.InfoType, "%s: skipped by filter", raw)

		return image.PassThrough(original), nil
	}

	candidate := original.WithTag(r.tag)
	// Same reference: nothing to substitute, so no lookup is made.
	if candidate.String() == original.String() {
		return image.PassThrough(original), nil
	}

	status, err := r.oracle.LocalImageExists(ctx, candidate.String())
	if err == nil && status == registry.Unauthorized {
		err = &registry.LookupError{Op: registry.OpLocal, Ref: candidate.String(), Err: ErrUnexpectedLocalStatus}
	}

	if err != nil {
		return image.Outcome{}, fmt.Errorf("resolve %s: %w", raw, err)
	}

	if status == registry.Found {
		r.report(notify.SuccessType, "%s: found locally", candidate)

		return image.Outcome{Original: original, Resolved: candidate}, nil
	}

	if r.opts.Offline {
		r.report(notify.ActivityType, "%s: not found locally", candidate)

		return image.PassThrough(original), nil
	}

	status, err = r.oracle.RemoteManifestExists(ctx, candidate.String())
	if err != nil {
		return image.Outcome{}, fmt.Errorf("resolve %s: %w", raw, err)
	}

	switch status {
	case registry.Found:
		r.report(notify.SuccessType, "%s: found in registry", candidate)

		return image.Outcome{Original: original, Resolved: candidate}, nil
	case registry.Unauthorized:
		if !r.opts.IgnoreUnauthorized {
			return image.Outcome{}, fmt.Errorf("%w: %s", ErrUnauthorized, candidate)
		}

		r.report(notify.WarningType, "%s: unauthorized, ignored", candidate)

		return image.PassThrough(original), nil
	default:
		r.report(notify.ActivityType, "%s: not found", candidate)

		return image.PassThrough(original), nil
	}
}

func (r *Resolver) report(msgType notify.MessageType, format string, args ...any) {
	r.logger.Debugf(format, args...)

	if r.progress == nil {
		return
	}

	notify.WriteMessage(notify.Message{
		Type:    msgType,
		Content: format,
		Args:    args,
		Writer:  r.progress,
	})
}
