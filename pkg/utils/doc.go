// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// the pose codebase:
//
//   - notify: Formatted message display with symbols and colors
package utils
