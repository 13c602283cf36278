// Package compose provides an ordered, lossless model of a compose document together with
// the accessors and mutations pose performs on it.
//
// A Document owns a tree of three node kinds:
//   - Scalar: leaf text, kept verbatim (numbers and booleans keep their literal form)
//   - Sequence: ordered list of nodes
//   - Mapping: ordered map with unique string keys, iterated in parse order
//
// Accessors (RootElementNames, Service, ServiceEnvironment, ServiceDependsOn, ProfileNames,
// Images) are read-only. The only mutation is ApplyResolvedImages, which rewrites the image
// scalar of affected services in place and leaves every other node untouched.
package compose
