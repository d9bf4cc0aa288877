package logger

import "log/slog"

// Standard field keys for structured logging. Use these keys consistently
// across backends so logs from different protocols aggregate cleanly.
const (
	KeyBackend    = "backend"     // Backend type: memory, local, sftp, s3
	KeyOperation  = "operation"   // Client operation name: List, Stat, Create, ...
	KeyPath       = "path"        // Full file/directory path
	KeyOldPath    = "old_path"    // Source path for rename/copy operations
	KeyNewPath    = "new_path"    // Destination path for rename/copy operations
	KeyCwd        = "cwd"         // Working directory
	KeySize       = "size"        // Size in bytes
	KeyEntries    = "entries"     // Number of directory entries
	KeyHost       = "host"        // Remote host
	KeyBucket     = "bucket"      // S3 bucket name
	KeyKey        = "key"         // Object key in cloud storage
	KeySessionID  = "session_id"  // Backend session identifier
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
)

// Field constructors for type safety.

// Backend returns a slog.Attr for the backend type
func Backend(name string) slog.Attr {
	return slog.String(KeyBackend, name)
}

// Operation returns a slog.Attr for the client operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Path returns a slog.Attr for a file/directory path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// OldPath returns a slog.Attr for the source path of a rename/copy
func OldPath(p string) slog.Attr {
	return slog.String(KeyOldPath, p)
}

// NewPath returns a slog.Attr for the destination path of a rename/copy
func NewPath(p string) slog.Attr {
	return slog.String(KeyNewPath, p)
}

// Cwd returns a slog.Attr for the working directory
func Cwd(p string) slog.Attr {
	return slog.String(KeyCwd, p)
}

// Size returns a slog.Attr for a size in bytes
func Size(s uint64) slog.Attr {
	return slog.Uint64(KeySize, s)
}

// Entries returns a slog.Attr for a directory entry count
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Host returns a slog.Attr for a remote host
func Host(h string) slog.Attr {
	return slog.String(KeyHost, h)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(b string) slog.Attr {
	return slog.String(KeyBucket, b)
}

// Key returns a slog.Attr for an object key
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// SessionID returns a slog.Attr for a backend session identifier
func SessionID(id string) slog.Attr {
	return slog.String(KeySessionID, id)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
