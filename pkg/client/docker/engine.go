package docker

import (
	"context"
	"errors"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// Error definitions for container engine operations.
var (
	// ErrAPIClientNil is returned when apiClient is nil.
	ErrAPIClientNil = errors.New("apiClient cannot be nil")
)

// ImageInspector is the slice of the Docker API used to look up local images.
type ImageInspector interface {
	ImageInspect(
		ctx context.Context,
		imageID string,
		opts ...client.ImageInspectOption,
	) (image.InspectResponse, error)
}

// GetDockerClient creates a Docker client using environment configuration.
func GetDockerClient() (client.APIClient, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}

// ImageExists reports whether ref is present in the engine's local image store.
// A missing image is not an error.
func ImageExists(ctx context.Context, apiClient ImageInspector, ref string) (bool, error) {
	if apiClient == nil {
		return false, ErrAPIClientNil
	}

	_, err := apiClient.ImageInspect(ctx, ref)
	if err == nil {
		return true, nil
	}

	if cerrdefs.IsNotFound(err) {
		return false, nil
	}

	return false, fmt.Errorf("inspect local image %s: %w", ref, err)
}
