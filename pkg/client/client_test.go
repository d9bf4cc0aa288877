package client

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamfs/roamfs/pkg/fs"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		cwd  string
		p    string
		want string
	}{
		{"/", "foo", "/foo"},
		{"/home/user", "docs", "/home/user/docs"},
		{"/home/user", "/etc", "/etc"},
		{"/home/user", "..", "/home"},
		{"/home/user", "../other/./x", "/home/other/x"},
		{"/home/user", "", "/home/user"},
		{"/", "/", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolvePath(tt.cwd, tt.p), "ResolvePath(%q, %q)", tt.cwd, tt.p)
	}
}

// fakeFileInfo is a minimal os.FileInfo for translation tests.
type fakeFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	dir     bool
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return f.dir }
func (f fakeFileInfo) Sys() any           { return nil }

func TestEntryFromFileInfoFile(t *testing.T) {
	now := time.Now()
	fi := fakeFileInfo{name: "report.pdf", size: 2048, mode: 0o644, modTime: now}

	entry, err := EntryFromFileInfo("/docs/report.pdf", fi, "")
	require.NoError(t, err)

	assert.True(t, entry.IsFile())
	assert.Equal(t, "report.pdf", entry.Name())
	assert.Equal(t, "/docs/report.pdf", entry.Path())
	assert.Equal(t, uint64(2048), entry.Metadata().Size)
	require.NotNil(t, entry.Metadata().Mode)
	assert.Equal(t, uint32(0o644), entry.Metadata().Mode.Mode())
	require.NotNil(t, entry.Metadata().Modified)
	assert.True(t, entry.Metadata().Modified.Equal(now))

	ext, ok := entry.Extension()
	assert.True(t, ok)
	assert.Equal(t, "pdf", ext)
}

func TestEntryFromFileInfoDirectory(t *testing.T) {
	fi := fakeFileInfo{name: "docs", mode: 0o755 | os.ModeDir, dir: true}

	entry, err := EntryFromFileInfo("/docs", fi, "")
	require.NoError(t, err)

	assert.True(t, entry.IsDir())
	assert.Equal(t, fs.FileTypeDirectory, entry.Metadata().Type)
	_, ok := entry.Extension()
	assert.False(t, ok)
}

func TestEntryFromFileInfoSymlink(t *testing.T) {
	fi := fakeFileInfo{name: "link.txt", size: 5, mode: 0o777}

	entry, err := EntryFromFileInfo("/link.txt", fi, "/real.txt")
	require.NoError(t, err)

	assert.True(t, entry.IsFile())
	assert.Equal(t, fs.FileTypeSymlink, entry.Metadata().Type)
	assert.Equal(t, "/real.txt", entry.Metadata().Symlink)
}

func TestEntryFromFileInfoSetuid(t *testing.T) {
	fi := fakeFileInfo{name: "sudo", size: 1, mode: 0o755 | os.ModeSetuid}

	entry, err := EntryFromFileInfo("/bin/sudo", fi, "")
	require.NoError(t, err)

	require.NotNil(t, entry.Metadata().Mode)
	assert.True(t, entry.Metadata().Mode.SetUID)
	assert.Equal(t, uint32(0o4755), entry.Metadata().Mode.Mode())
}

func TestUnixPexFromFileMode(t *testing.T) {
	tests := []struct {
		mode os.FileMode
		want uint32
	}{
		{0o644, 0o644},
		{0o755 | os.ModeDir, 0o755},
		{0o755 | os.ModeSetuid, 0o4755},
		{0o755 | os.ModeSetgid, 0o2755},
		{0o777 | os.ModeSticky, 0o1777},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UnixPexFromFileMode(tt.mode).Mode(), "mode %v", tt.mode)
	}
}
