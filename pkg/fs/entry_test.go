package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectoryEntry(t *testing.T) {
	dir, err := NewDirectory("foo", "/foo", Metadata{})
	require.NoError(t, err)

	var entry Entry = dir
	assert.Equal(t, uint64(0), entry.Metadata().Size)
	assert.True(t, entry.IsDir())
	assert.False(t, entry.IsFile())

	got, err := entry.AsDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/foo", got.Path())
	assert.Equal(t, FileTypeDirectory, got.Metadata().Type)
}

func TestNewFileEntry(t *testing.T) {
	file, err := NewFile("bar.txt", "/bar.txt", Metadata{})
	require.NoError(t, err)

	var entry Entry = file
	assert.Equal(t, "/bar.txt", entry.Path())
	assert.Equal(t, "bar.txt", entry.Name())
	ext, ok := entry.Extension()
	assert.True(t, ok)
	assert.Equal(t, "txt", ext)
	assert.False(t, entry.IsDir())
	assert.True(t, entry.IsFile())
	assert.False(t, entry.IsHidden())

	got, err := entry.AsFile()
	require.NoError(t, err)
	assert.Equal(t, "/bar.txt", got.Path())
}

func TestVariantExclusivity(t *testing.T) {
	dir, err := NewDirectory("d", "/d", Metadata{})
	require.NoError(t, err)
	file, err := NewFile("f", "/f", Metadata{})
	require.NoError(t, err)

	for _, entry := range []Entry{dir, file} {
		assert.NotEqual(t, entry.IsDir(), entry.IsFile(), "exactly one of IsDir/IsFile must hold for %q", entry.Path())
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name   string
		hidden bool
	}{
		{"bar.txt", false},
		{".gitignore", true},
		{".git", true},
		{"normal", false},
		{"with.dots.txt", false},
		{"..double", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewFile(tt.name, "/"+tt.name, Metadata{})
			require.NoError(t, err)
			assert.Equal(t, tt.hidden, file.IsHidden())

			dir, err := NewDirectory(tt.name, "/"+tt.name, Metadata{})
			require.NoError(t, err)
			assert.Equal(t, tt.hidden, dir.IsHidden())
		})
	}
}

func TestHiddenDirectoryHasNoExtension(t *testing.T) {
	dir, err := NewDirectory(".git", "/.git", Metadata{})
	require.NoError(t, err)

	assert.True(t, dir.IsHidden())
	ext, ok := dir.Extension()
	assert.False(t, ok)
	assert.Empty(t, ext)
}

func TestDirectoryExtensionAlwaysAbsent(t *testing.T) {
	// Even a dotted directory name never yields an extension.
	dir, err := NewDirectory("archive.d", "/archive.d", Metadata{})
	require.NoError(t, err)

	ext, ok := dir.Extension()
	assert.False(t, ok)
	assert.Empty(t, ext)
}

func TestExtensionDerivation(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		ok   bool
	}{
		{"bar.txt", "txt", true},
		{"archive.tar.gz", "gz", true},
		{"noext", "", false},
		{".gitignore", "", false},
		{".config.yml", "yml", true},
		{"trailing.", "", false},
		// Only the first leading dot marks a hidden name; the second dot
		// in "..hidden" starts an extension.
		{"..hidden", "hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewFile(tt.name, "/"+tt.name, Metadata{})
			require.NoError(t, err)
			ext, ok := file.Extension()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestDowncastMismatchFails(t *testing.T) {
	file, err := NewFile("bar.txt", "/bar.txt", Metadata{})
	require.NoError(t, err)
	dir, err := NewDirectory("foo", "/foo", Metadata{})
	require.NoError(t, err)

	// File-backed entry is never a directory.
	got, err := Entry(file).AsDirectory()
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotADirectory)

	// Directory-backed entry is never a file.
	gotFile, err := Entry(dir).AsFile()
	assert.Nil(t, gotFile)
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestMustDowncastPanics(t *testing.T) {
	file, err := NewFile("bar.txt", "/bar.txt", Metadata{})
	require.NoError(t, err)
	dir, err := NewDirectory("foo", "/foo", Metadata{})
	require.NoError(t, err)

	assert.Panics(t, func() { Entry(file).MustDirectory() })
	assert.Panics(t, func() { Entry(dir).MustFile() })

	assert.NotPanics(t, func() { Entry(file).MustFile() })
	assert.NotPanics(t, func() { Entry(dir).MustDirectory() })
}

func TestEntryValidation(t *testing.T) {
	tests := []struct {
		name      string
		entryName string
		path      string
	}{
		{"empty name", "", "/foo"},
		{"separator in name", "a/b", "/a/b"},
		{"relative path", "foo", "foo"},
		{"path name mismatch", "foo", "/bar"},
		{"path ends elsewhere", "foo", "/foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDirectory(tt.entryName, tt.path, Metadata{})
			assert.Error(t, err)
			_, err = NewFile(tt.entryName, tt.path, Metadata{})
			assert.Error(t, err)
		})
	}
}

func TestRootDirectory(t *testing.T) {
	// The root is the single entry whose name is the separator itself.
	root, err := NewDirectory("/", "/", Metadata{})
	require.NoError(t, err)
	assert.Equal(t, "/", root.Path())
	assert.True(t, root.IsDir())

	// Only the directory variant gets the root exception.
	_, err = NewFile("/", "/", Metadata{})
	assert.Error(t, err)
}

func TestNestedEntryPaths(t *testing.T) {
	file, err := NewFile("report.pdf", "/documents/2025/report.pdf", Metadata{Size: 1024})
	require.NoError(t, err)

	assert.Equal(t, "report.pdf", file.Name())
	assert.Equal(t, "/documents/2025/report.pdf", file.Path())
	assert.Equal(t, uint64(1024), file.Metadata().Size)
}

func TestSymlinkEntryKeepsFlag(t *testing.T) {
	md := Metadata{Type: FileTypeSymlink, Symlink: "/real/target"}

	file, err := NewFile("link", "/link", md)
	require.NoError(t, err)
	assert.True(t, file.Metadata().IsSymlink())
	assert.Equal(t, "/real/target", file.Metadata().Symlink)

	dir, err := NewDirectory("linkdir", "/linkdir", md)
	require.NoError(t, err)
	assert.True(t, dir.Metadata().IsSymlink())
}
