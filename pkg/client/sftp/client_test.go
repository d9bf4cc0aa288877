package sftp

import (
	"fmt"
	"os"
	"testing"
	"time"

	sftppkg "github.com/pkg/sftp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamfs/roamfs/pkg/client"
)

func TestConfigAddress(t *testing.T) {
	cfg := Config{Host: "files.example.com"}
	assert.Equal(t, "files.example.com:22", cfg.Address())

	cfg.Port = 2222
	assert.Equal(t, "files.example.com:2222", cfg.Address())

	cfg = Config{Host: "::1", Port: 22}
	assert.Equal(t, "[::1]:22", cfg.Address())
}

func TestConfigAuthMethods(t *testing.T) {
	_, err := Config{Host: "h", User: "u"}.authMethods()
	assert.Error(t, err, "no credentials must be rejected")

	methods, err := Config{Host: "h", User: "u", Password: "secret"}.authMethods()
	require.NoError(t, err)
	assert.Len(t, methods, 1)

	_, err = Config{Host: "h", User: "u", PrivateKeyPath: "/does/not/exist"}.authMethods()
	assert.Error(t, err)
}

func TestConfigHostKeyCallback(t *testing.T) {
	cb, err := Config{InsecureIgnoreHostKey: true}.hostKeyCallback()
	require.NoError(t, err)
	assert.NotNil(t, cb)

	_, err = Config{}.hostKeyCallback()
	assert.Error(t, err, "missing known_hosts must be rejected")
}

func TestOperationsBeforeConnect(t *testing.T) {
	c := New(Config{Host: "h", User: "u", Password: "p"})
	ctx := t.Context()

	_, err := c.List(ctx, "/")
	assert.True(t, client.IsCode(err, client.ErrNotConnected))

	err = c.Disconnect(ctx)
	assert.True(t, client.IsCode(err, client.ErrNotConnected))

	assert.False(t, c.IsConnected())
}

func TestWrapErr(t *testing.T) {
	notExist := fmt.Errorf("remote: %w", os.ErrNotExist)
	assert.True(t, client.IsCode(wrapErr("/x", notExist), client.ErrNoSuchFileOrDirectory))

	denied := fmt.Errorf("remote: %w", os.ErrPermission)
	assert.True(t, client.IsCode(wrapErr("/x", denied), client.ErrPermissionDenied))

	assert.True(t, client.IsCode(wrapErr("/x", fmt.Errorf("boom")), client.ErrIO))
	assert.NoError(t, wrapErr("/x", nil))
}

// statInfo is an os.FileInfo carrying an *sftp.FileStat, the shape the
// protocol library produces.
type statInfo struct {
	name string
	size int64
	mode os.FileMode
	mod  time.Time
	sys  *sftppkg.FileStat
}

func (s statInfo) Name() string       { return s.name }
func (s statInfo) Size() int64        { return s.size }
func (s statInfo) Mode() os.FileMode  { return s.mode }
func (s statInfo) ModTime() time.Time { return s.mod }
func (s statInfo) IsDir() bool        { return s.mode.IsDir() }
func (s statInfo) Sys() any           { return s.sys }

func TestEntryFromInfoFile(t *testing.T) {
	mod := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	fi := statInfo{
		name: "report.pdf",
		size: 4096,
		mode: 0o644,
		mod:  mod,
		sys: &sftppkg.FileStat{
			UID:   1000,
			GID:   100,
			Atime: uint32(mod.Add(time.Hour).Unix()),
		},
	}

	entry, err := entryFromInfo("/docs/report.pdf", fi, "")
	require.NoError(t, err)

	file, err := entry.AsFile()
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", file.Name())
	assert.EqualValues(t, 4096, file.Metadata().Size)

	md := file.Metadata()
	require.NotNil(t, md.UID)
	assert.EqualValues(t, 1000, *md.UID)
	require.NotNil(t, md.GID)
	assert.EqualValues(t, 100, *md.GID)
	require.NotNil(t, md.Accessed)
	assert.Equal(t, mod.Add(time.Hour).Unix(), md.Accessed.Unix())
	require.NotNil(t, md.Mode)
	assert.Equal(t, uint32(0o644), md.Mode.Mode())
}

func TestEntryFromInfoDirectory(t *testing.T) {
	fi := statInfo{name: "src", mode: os.ModeDir | 0o755, mod: time.Now()}

	entry, err := entryFromInfo("/home/user/src", fi, "")
	require.NoError(t, err)
	assert.True(t, entry.IsDir())
	assert.Equal(t, "/home/user/src", entry.Path())

	_, ok := entry.Extension()
	assert.False(t, ok)
}

func TestEntryFromInfoSymlink(t *testing.T) {
	fi := statInfo{name: "current", size: 12, mode: 0o644, mod: time.Now()}

	entry, err := entryFromInfo("/releases/current", fi, "/releases/v2")
	require.NoError(t, err)

	md := entry.Metadata()
	assert.True(t, md.IsSymlink())
	assert.Equal(t, "/releases/v2", md.Symlink)
}

func TestCurrentOwnership(t *testing.T) {
	uid, gid := currentOwnership(statInfo{sys: &sftppkg.FileStat{UID: 7, GID: 8}})
	assert.Equal(t, 7, uid)
	assert.Equal(t, 8, gid)

	uid, gid = currentOwnership(statInfo{})
	assert.Equal(t, 0, uid)
	assert.Equal(t, 0, gid)
}
