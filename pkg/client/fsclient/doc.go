// Package fsclient implements the client contract on top of an afero
// filesystem. It is the reference backend: NewMemory wraps an in-memory
// filesystem used by tests and the conformance suite, NewLocal wraps a
// directory of the local disk so the CLI can browse it through the same
// interface as the remote backends.
package fsclient
