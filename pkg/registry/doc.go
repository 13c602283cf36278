// Package registry answers whether an image reference exists, locally in the
// container engine or remotely in its registry.
//
// Two oracles are provided: CLIOracle shells out to the docker binary and classifies
// its exit status and stderr, EngineOracle talks to the Docker Engine API and to the
// registry directly. CachedOracle decorates either one so repeated lookups of the same
// candidate reference cost one call.
package registry
