// Package config provides the config command, which renders the compose document
// after optional image tag resolution.
package config
