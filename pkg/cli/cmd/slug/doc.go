// Package slug provides the slug command.
package slug
