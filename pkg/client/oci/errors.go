package oci

import "errors"

// Manifest lookup errors.
var (
	// ErrInvalidReference indicates that an image reference could not be parsed.
	ErrInvalidReference = errors.New("invalid image reference")
	// ErrRegistryAuthRequired is returned when the registry refuses anonymous access.
	ErrRegistryAuthRequired = errors.New("registry requires authentication")
	// ErrRegistryPermissionDenied is returned when credentials lack read access.
	ErrRegistryPermissionDenied = errors.New("registry access denied")
	// ErrRegistryUnreachable is returned when the registry cannot be reached.
	ErrRegistryUnreachable = errors.New("registry is unreachable")
)
