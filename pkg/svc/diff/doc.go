// Package diff renders line-based unified diffs between two renderings of a document.
package diff
