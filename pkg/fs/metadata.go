package fs

import "time"

// FileType classifies a filesystem object once the backend has resolved it.
type FileType int

const (
	// FileTypeRegular is an ordinary file.
	FileTypeRegular FileType = iota

	// FileTypeDirectory is a directory.
	FileTypeDirectory

	// FileTypeSymlink is a symbolic link whose target the backend reports
	// in Metadata.Symlink.
	FileTypeSymlink
)

// String returns a human-readable name for the file type.
func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "file"
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Metadata holds the descriptive attributes of a filesystem entry,
// independent of its name and path. Two entries at different paths with the
// same attributes carry equal Metadata.
//
// Backends fill in every field their protocol can supply and leave the rest
// at the documented defaults. Pointer fields are nil when the backend did
// not report the attribute, which is distinct from a reported zero value.
//
// Size is the one deliberate exception: a backend that cannot report a size
// leaves it at 0, so "empty file" and "size unknown" are indistinguishable.
// This mirrors the behavior of the systems RoamFS talks to, where a listing
// always carries some size figure.
//
// A Metadata value is constructed once per listing or stat call and never
// mutated afterwards; it owns no resources and is safe to copy freely.
type Metadata struct {
	// Size is the entry size in bytes. 0 when the backend cannot report it.
	Size uint64

	// Accessed is the last access time, nil when not reported.
	Accessed *time.Time

	// Modified is the last modification time, nil when not reported.
	Modified *time.Time

	// Created is the creation (birth) time, nil when not reported.
	Created *time.Time

	// UID is the numeric owner id, nil when not reported.
	UID *uint32

	// GID is the numeric group id, nil when not reported.
	GID *uint32

	// Mode is the permission aggregate, nil when the backend cannot report
	// permissions. Consumers must treat nil as the most conservative case
	// (no capability known to be granted).
	Mode *UnixPex

	// Symlink is the link target path. Empty unless the entry is a
	// symbolic link and the backend reports the target.
	Symlink string

	// Type is the resolved file type. Defaults to FileTypeRegular.
	Type FileType
}

// Equal reports field-wise equality between two Metadata values. Pointer
// fields compare by pointed-to value, times with time.Time.Equal, so two
// independently constructed Metadata with the same attributes are equal.
func (m Metadata) Equal(other Metadata) bool {
	return m.Size == other.Size &&
		timePtrEqual(m.Accessed, other.Accessed) &&
		timePtrEqual(m.Modified, other.Modified) &&
		timePtrEqual(m.Created, other.Created) &&
		uint32PtrEqual(m.UID, other.UID) &&
		uint32PtrEqual(m.GID, other.GID) &&
		pexPtrEqual(m.Mode, other.Mode) &&
		m.Symlink == other.Symlink &&
		m.Type == other.Type
}

// IsSymlink reports whether the entry was resolved as a symbolic link.
func (m Metadata) IsSymlink() bool { return m.Type == FileTypeSymlink }

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func uint32PtrEqual(a, b *uint32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func pexPtrEqual(a, b *UnixPex) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
