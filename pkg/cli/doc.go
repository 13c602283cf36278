// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: The pose command tree (list, config, slug, get)
//   - cli/helpers: Global flags, document loading and tag resolution flags
//   - cli/ui/errorhandler: Cobra execution and error to exit code mapping
//
// Commands resolve their collaborators from the pose runtime container, so tests
// can replace the process runner, registry oracle and branch provider.
package cli
