package client

import (
	"context"
	"io"
	"path"

	"github.com/roamfs/roamfs/pkg/fs"
)

// Client is the operation set a storage backend exposes to consumers.
//
// All paths are slash-separated. Relative paths are resolved against the
// backend's working directory (see Pwd and ResolvePath). Every blocking
// operation takes a context; backends honor cancellation between protocol
// round trips but do not guarantee mid-transfer aborts beyond what their
// protocol allows.
//
// Listings are returned as a flat sequence of fs.Entry values. Ordering is
// the backend's choice and is not part of the contract. Backends must only
// ever publish fully-formed, immutable entries: an object the backend
// cannot classify as file or directory is omitted from results, never
// surfaced as a third kind.
type Client interface {
	// Connect establishes the session with the backend. Calling Connect
	// on an already-connected client is an error.
	Connect(ctx context.Context) error

	// Disconnect tears the session down. Calling Disconnect on a client
	// that is not connected is an error.
	Disconnect(ctx context.Context) error

	// IsConnected reports whether the session is established.
	IsConnected() bool

	// Pwd returns the current working directory (absolute).
	Pwd(ctx context.Context) (string, error)

	// ChangeDir changes the working directory. The target must exist and
	// be a directory.
	ChangeDir(ctx context.Context, dir string) error

	// List returns the entries contained in the directory at path.
	List(ctx context.Context, path string) ([]fs.Entry, error)

	// Stat resolves path into a single entry.
	Stat(ctx context.Context, path string) (fs.Entry, error)

	// SetStat applies the reported attributes of md (permissions,
	// ownership, times) to the object at path, to the extent the backend
	// supports them.
	SetStat(ctx context.Context, path string, md fs.Metadata) error

	// Exists reports whether path resolves to an entry.
	Exists(ctx context.Context, path string) (bool, error)

	// MakeDir creates a directory at path. The parent must exist.
	MakeDir(ctx context.Context, path string) error

	// RemoveFile removes the file at path.
	RemoveFile(ctx context.Context, path string) error

	// RemoveDir removes the directory at path, which must be empty.
	RemoveDir(ctx context.Context, path string) error

	// RemoveDirAll removes the directory at path and everything below it.
	RemoveDirAll(ctx context.Context, path string) error

	// Rename moves the object at src to dst.
	Rename(ctx context.Context, src, dst string) error

	// Copy duplicates the object at src to dst.
	Copy(ctx context.Context, src, dst string) error

	// Symlink creates a symbolic link at linkPath pointing to target.
	Symlink(ctx context.Context, linkPath, target string) error

	// Open opens the file at path for reading. The caller owns the
	// returned stream and must close it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Create opens the file at path for writing, truncating any existing
	// content. The write is complete only once the stream is closed.
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// Append opens the file at path for writing at its end, creating it
	// when missing.
	Append(ctx context.Context, path string) (io.WriteCloser, error)
}

// ResolvePath resolves p against the working directory cwd and returns a
// cleaned absolute slash path. Absolute inputs are cleaned and returned
// as-is.
func ResolvePath(cwd, p string) string {
	if p == "" {
		return path.Clean(cwd)
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(cwd, p)
}
