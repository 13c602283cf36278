// Package helpers provides common CLI utilities for command handling.
//
// Key functionality:
//   - Global flags and their POSE_* environment fallbacks
//   - Logger configuration from --verbose and --quiet
//   - Loading the compose document through docker compose or from disk
//   - Tag resolution flags and resolver construction
//   - Name list printing in full or oneline format
package helpers
