// Package image provides the container image reference value types shared by the
// compose document model and the tag resolution engine.
//
// A Reference splits an image string such as "registry.example.com:5000/team/app:1.2"
// into its name and tag parts. A reference without an explicit tag reports "latest" as
// its tag but keeps rendering without one, so pass-through references are reproduced
// exactly as they were written in the compose document.
package image
