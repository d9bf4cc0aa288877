package fs

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Downcast mismatch errors. AsFile and AsDirectory return these (wrapped
// with the entry path) when the entry holds the other variant.
var (
	// ErrNotAFile is returned when downcasting a directory-backed entry
	// to a file.
	ErrNotAFile = errors.New("entry is not a file")

	// ErrNotADirectory is returned when downcasting a file-backed entry
	// to a directory.
	ErrNotADirectory = errors.New("entry is not a directory")
)

// Entry is one file-system object produced by a backend: either a
// *Directory or a *File, never anything else. The union is closed; the
// unexported method prevents implementations outside this package.
//
// All accessors are total for any Entry built through NewDirectory or
// NewFile. Only the downcasts can observe a variant mismatch, and they
// surface it explicitly: AsFile/AsDirectory return an error the caller
// must handle, MustFile/MustDirectory panic. Neither ever silently
// returns a wrong-variant or default value.
type Entry interface {
	// Name returns the entry's base name.
	Name() string

	// Path returns the entry's absolute path.
	Path() string

	// Metadata returns a copy of the entry's metadata.
	Metadata() Metadata

	// Extension returns the file extension and true for files that have
	// one. For directories it is always ("", false).
	Extension() (string, bool)

	// IsDir reports whether the entry is a directory.
	IsDir() bool

	// IsFile reports whether the entry is a file. Exactly one of IsDir
	// and IsFile is true.
	IsFile() bool

	// IsHidden reports whether the entry name starts with a dot. Applies
	// uniformly to both variants.
	IsHidden() bool

	// AsFile returns the entry as a *File, or an error wrapping
	// ErrNotAFile when the entry is a directory.
	AsFile() (*File, error)

	// AsDirectory returns the entry as a *Directory, or an error wrapping
	// ErrNotADirectory when the entry is a file.
	AsDirectory() (*Directory, error)

	// MustFile is the fast-fail variant of AsFile: it panics on a
	// directory-backed entry. Reserved for call sites where the variant
	// is a proven invariant.
	MustFile() *File

	// MustDirectory is the fast-fail variant of AsDirectory: it panics on
	// a file-backed entry.
	MustDirectory() *Directory

	// sealed closes the union to this package.
	sealed()
}

// header carries the fields shared by both variants and implements the
// variant-independent half of Entry.
type header struct {
	name string
	path string
	md   Metadata
}

func (h header) Name() string       { return h.name }
func (h header) Path() string       { return h.path }
func (h header) Metadata() Metadata { return h.md }
func (h header) IsHidden() bool     { return strings.HasPrefix(h.name, ".") }
func (h header) sealed()            {}

// Directory is the directory variant of Entry.
type Directory struct {
	header
}

// File is the file variant of Entry. It additionally carries an optional
// extension derived from the name.
type File struct {
	header
	ext    string
	hasExt bool
}

// NewDirectory builds a Directory entry.
//
// name must be non-empty and contain no path separators; dirPath must be
// absolute and its final component must equal name. The root directory is
// the single allowed exception: name "/" with path "/".
func NewDirectory(name, dirPath string, md Metadata) (*Directory, error) {
	if err := validateEntry(name, dirPath); err != nil {
		return nil, err
	}
	// Symlink-to-directory entries keep their symlink flag; everything
	// else is a plain directory.
	if md.Type != FileTypeSymlink {
		md.Type = FileTypeDirectory
	}
	return &Directory{header: header{name: name, path: path.Clean(dirPath), md: md}}, nil
}

// NewFile builds a File entry. The extension is derived from the last dot
// in the name; a name whose only dot is the leading one has no extension.
//
// The name/path constraints are the same as for NewDirectory, minus the
// root exception.
func NewFile(name, filePath string, md Metadata) (*File, error) {
	if name == "/" {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	if err := validateEntry(name, filePath); err != nil {
		return nil, err
	}
	ext, ok := deriveExtension(name)
	if md.Type != FileTypeSymlink {
		md.Type = FileTypeRegular
	}
	return &File{
		header: header{name: name, path: path.Clean(filePath), md: md},
		ext:    ext,
		hasExt: ok,
	}, nil
}

// validateEntry enforces the name/path consistency invariants shared by
// both variants.
func validateEntry(name, entryPath string) error {
	if name == "" {
		return errors.New("entry name must not be empty")
	}
	if name != "/" && strings.ContainsRune(name, '/') {
		return fmt.Errorf("entry name %q must not contain path separators", name)
	}
	if !path.IsAbs(entryPath) {
		return fmt.Errorf("entry path %q must be absolute", entryPath)
	}
	if base := path.Base(path.Clean(entryPath)); base != name {
		return fmt.Errorf("entry path %q is inconsistent with name %q", entryPath, name)
	}
	return nil
}

// deriveExtension extracts the suffix after the last dot of name,
// ignoring a leading dot (hidden-file marker). Returns false when the
// name yields no extension.
func deriveExtension(name string) (string, bool) {
	base := strings.TrimPrefix(name, ".")
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return "", false
	}
	return base[i+1:], true
}

// Directory variant dispatch.

func (d *Directory) Extension() (string, bool) { return "", false }
func (d *Directory) IsDir() bool               { return true }
func (d *Directory) IsFile() bool              { return false }

func (d *Directory) AsFile() (*File, error) {
	return nil, fmt.Errorf("%s: %w", d.path, ErrNotAFile)
}

func (d *Directory) AsDirectory() (*Directory, error) { return d, nil }

func (d *Directory) MustFile() *File {
	panic(fmt.Sprintf("fs: MustFile called on directory %q", d.path))
}

func (d *Directory) MustDirectory() *Directory { return d }

// File variant dispatch.

func (f *File) Extension() (string, bool) { return f.ext, f.hasExt }
func (f *File) IsDir() bool               { return false }
func (f *File) IsFile() bool              { return true }

func (f *File) AsFile() (*File, error) { return f, nil }

func (f *File) AsDirectory() (*Directory, error) {
	return nil, fmt.Errorf("%s: %w", f.path, ErrNotADirectory)
}

func (f *File) MustFile() *File { return f }

func (f *File) MustDirectory() *Directory {
	panic(fmt.Sprintf("fs: MustDirectory called on file %q", f.path))
}
