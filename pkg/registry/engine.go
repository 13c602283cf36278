package registry

import (
	"context"
	"errors"

	"github.com/devantler-tech/pose/pkg/client/docker"
	"github.com/devantler-tech/pose/pkg/client/oci"
)

// EngineOracle answers local checks through the Docker Engine API and remote checks
// by querying the registry directly.
type EngineOracle struct {
	images    docker.ImageInspector
	manifests oci.ManifestChecker
}

// NewEngineOracle creates an oracle from an engine client and a manifest checker.
func NewEngineOracle(images docker.ImageInspector, manifests oci.ManifestChecker) *EngineOracle {
	return &EngineOracle{images: images, manifests: manifests}
}

// LocalImageExists inspects the image in the engine's local store.
func (o *EngineOracle) LocalImageExists(ctx context.Context, ref string) (Status, error) {
	found, err := docker.ImageExists(ctx, o.images, ref)
	if err != nil {
		return NotFound, &LookupError{Op: OpLocal, Ref: ref, Err: err}
	}

	return statusOf(found), nil
}

// RemoteManifestExists asks the registry for the manifest.
func (o *EngineOracle) RemoteManifestExists(ctx context.Context, ref string) (Status, error) {
	found, err := o.manifests.ManifestExists(ctx, ref)

	switch {
	case err == nil:
		return statusOf(found), nil
	case errors.Is(err, oci.ErrRegistryAuthRequired),
		errors.Is(err, oci.ErrRegistryPermissionDenied):
		return Unauthorized, nil
	default:
		return NotFound, &LookupError{Op: OpRemote, Ref: ref, Err: err}
	}
}

func statusOf(found bool) Status {
	if found {
		return Found
	}

	return NotFound
}
