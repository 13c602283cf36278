// Package fetch downloads a file over HTTP, optionally retrying with a URL rewritten
// by a FROM:TO replacement script when the first URL is invalid or not found.
package fetch
