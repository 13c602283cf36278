// Package tagresolver decides, for a set of image references, which ones can be
// switched to a desired tag because the retagged image exists locally or remotely.
package tagresolver
