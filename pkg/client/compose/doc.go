// Package compose locates compose files and materializes their canonical form with
// `docker compose config`.
package compose
