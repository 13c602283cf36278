// Package cmd provides the command-line interface for pose.
//
// This package contains the root command and delegates to subcommand packages:
//   - list: names of services, volumes, networks, configs, secrets, profiles and images,
//     plus the dependencies and environment of a single service
//   - config: render the compose document, optionally with image tags resolved
//   - slug: turn text or the current git branch into a tag-safe slug
//   - get: download a compose file with an optional fallback URL rewrite
package cmd
