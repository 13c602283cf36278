package oci

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devantler-tech/pose/pkg/client/netretry"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
	"github.com/siderolabs/go-retry/retry"
)

// Manifest lookup retry defaults.
const (
	defaultLookupTimeout = 30 * time.Second
	defaultRetryUnit     = 500 * time.Millisecond
)

// ManifestChecker answers whether a tagged manifest exists in a remote registry.
type ManifestChecker interface {
	// ManifestExists returns true when the registry serves a manifest for ref and
	// false when it reports the manifest or repository as unknown.
	ManifestExists(ctx context.Context, ref string) (bool, error)
}

// ManifestOptions configures a ManifestChecker.
type ManifestOptions struct {
	// Insecure allows plain HTTP registries, like `docker manifest inspect --insecure`.
	Insecure bool
	// Keychain resolves credentials. Defaults to the docker config keychain.
	Keychain authn.Keychain
	// Transport overrides the HTTP transport.
	Transport http.RoundTripper
	// Timeout bounds all attempts of one lookup, retries included.
	Timeout time.Duration
	// RetryUnit is the base delay between retries of transient failures.
	RetryUnit time.Duration
}

type manifestChecker struct {
	opts ManifestOptions
}

// NewManifestChecker creates a checker backed by go-containerregistry.
func NewManifestChecker(opts ManifestOptions) ManifestChecker {
	if opts.Keychain == nil {
		opts.Keychain = authn.DefaultKeychain
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultLookupTimeout
	}

	if opts.RetryUnit <= 0 {
		opts.RetryUnit = defaultRetryUnit
	}

	return &manifestChecker{opts: opts}
}

// ManifestExists issues a HEAD request for the manifest, retrying transient failures
// with exponential backoff until the lookup timeout.
func (c *manifestChecker) ManifestExists(ctx context.Context, raw string) (bool, error) {
	ref, err := c.parseReference(raw)
	if err != nil {
		return false, err
	}

	var (
		found   bool
		lastErr error
	)

	err = retry.Exponential(c.opts.Timeout, retry.WithUnits(c.opts.RetryUnit)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			_, headErr := remote.Head(ref, c.remoteOptions(ctx)...)

			switch {
			case headErr == nil:
				found = true

				return nil
			case isNotFoundError(headErr):
				found = false

				return nil
			case netretry.IsRetryable(headErr):
				lastErr = headErr

				return retry.ExpectedError(headErr)
			default:
				lastErr = headErr

				return headErr
			}
		})
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}

		return false, fmt.Errorf("manifest %s: %w", raw, classifyRegistryError(lastErr))
	}

	return found, nil
}

func (c *manifestChecker) parseReference(raw string) (name.Reference, error) {
	nameOpts := []name.Option{name.WeakValidation}
	if c.opts.Insecure {
		nameOpts = append(nameOpts, name.Insecure)
	}

	ref, err := name.ParseReference(raw, nameOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidReference, raw, err)
	}

	return ref, nil
}

func (c *manifestChecker) remoteOptions(ctx context.Context) []remote.Option {
	remoteOpts := []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(c.opts.Keychain),
	}

	if c.opts.Transport != nil {
		remoteOpts = append(remoteOpts, remote.WithTransport(c.opts.Transport))
	}

	return remoteOpts
}

// isNotFoundError checks if the error indicates the manifest doesn't exist.
func isNotFoundError(err error) bool {
	var transportErr *transport.Error
	if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "manifest unknown") ||
		strings.Contains(errStr, "name_unknown") ||
		strings.Contains(errStr, "name unknown")
}

// classifyRegistryError maps low-level registry errors onto the package sentinels,
// keeping the original error in the chain.
func classifyRegistryError(err error) error {
	var transportErr *transport.Error
	if errors.As(err, &transportErr) {
		switch transportErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %w", ErrRegistryAuthRequired, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrRegistryPermissionDenied, err)
		}
	}

	lowerErr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lowerErr, "unauthorized"),
		strings.Contains(lowerErr, "authentication required"):
		return fmt.Errorf("%w: %w", ErrRegistryAuthRequired, err)
	case strings.Contains(lowerErr, "denied"),
		strings.Contains(lowerErr, "forbidden"):
		return fmt.Errorf("%w: %w", ErrRegistryPermissionDenied, err)
	case strings.Contains(lowerErr, "no such host"),
		strings.Contains(lowerErr, "connection refused"),
		strings.Contains(lowerErr, "dial tcp"):
		return fmt.Errorf("%w: %w", ErrRegistryUnreachable, err)
	default:
		return err
	}
}
