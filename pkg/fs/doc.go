// Package fs defines the canonical, backend-agnostic representation of a
// file-system entry used across RoamFS.
//
// Every storage backend (local disk, SFTP, S3, ...) translates its native
// listing format into the types in this package, and every consumer (sync
// engines, CLIs, UIs) reads from them. The package is a pure data model: no
// I/O, no caching, no directory traversal. All types are plain
// immutable-after-construction values that are safe to copy and to share
// across goroutines without synchronization.
//
// The three layers, leaves first:
//
//   - UnixPex / PexClass: a Unix-style permission aggregate and the rwx
//     capability set for a single subject class.
//   - Metadata: descriptive attributes of an entry (size, timestamps,
//     ownership, permissions, link target), independent of name and path.
//   - Entry: a closed union over exactly Directory and File, with uniform
//     accessors and explicit, non-silent downcasts.
package fs
