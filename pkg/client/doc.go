// Package client provides clients for the external tools pose talks to.
//
//   - compose: `docker compose config` and compose file discovery
//   - docker: Docker Engine API client and local image inspection
//   - git: Current branch lookup through go-git with a git binary fallback
//   - netretry: Retry classification for transient registry errors
//   - oci: Remote manifest existence checks against OCI registries
package client
