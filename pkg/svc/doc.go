// Package svc provides service layer components for pose.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the underlying clients.
//
// Subpackages:
//   - diff: Unified line diff of rendered documents
//   - fetch: HTTP download of compose files with URL rewrite fallback
//   - tagresolver: Concurrent image tag resolution against a registry oracle
package svc
