// Package client defines the contract every RoamFS storage backend must
// satisfy, together with the typed errors backends report through it.
//
// A backend is anything that can resolve remote (or local) paths into
// fs.Entry values and move bytes in and out of them: local disk, SFTP, S3,
// and so on. Consumers program against the Client interface and never
// against a concrete backend.
//
// Backends that cannot support an operation return an ErrUnsupportedFeature
// RemoteError rather than approximating the behavior.
package client
