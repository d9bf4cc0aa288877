package s3

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
)

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		path   string
		key    string
		prefix string
	}{
		{"/", "", ""},
		{"/file.txt", "file.txt", "file.txt/"},
		{"/a/b/c.bin", "a/b/c.bin", "a/b/c.bin/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.key, keyFor(tt.path), "keyFor(%q)", tt.path)
		assert.Equal(t, tt.prefix, dirPrefix(tt.path), "dirPrefix(%q)", tt.path)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, isNotFound(nil))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(errors.New("api error NoSuchKey: not there")))
	assert.True(t, isNotFound(errors.New("StatusCode: 404")))
	assert.False(t, isNotFound(errors.New("connection reset")))
}

func TestIsAccessDenied(t *testing.T) {
	assert.False(t, isAccessDenied(nil))
	assert.True(t, isAccessDenied(errors.New("api error AccessDenied")))
	assert.True(t, isAccessDenied(errors.New("StatusCode: 403")))
	assert.False(t, isAccessDenied(errors.New("timeout")))
}

func TestWrapErr(t *testing.T) {
	assert.NoError(t, wrapErr("/x", nil))
	assert.True(t, client.IsCode(wrapErr("/x", &types.NoSuchKey{}), client.ErrNoSuchFileOrDirectory))
	assert.True(t, client.IsCode(wrapErr("/x", errors.New("AccessDenied")), client.ErrPermissionDenied))
	assert.True(t, client.IsCode(wrapErr("/x", errors.New("boom")), client.ErrIO))
}

func TestFileEntry(t *testing.T) {
	size := int64(2048)
	mod := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)

	entry, err := fileEntry("/backups/dump.sql.gz", &size, &mod)
	require.NoError(t, err)

	assert.True(t, entry.IsFile())
	assert.Equal(t, "dump.sql.gz", entry.Name())
	assert.EqualValues(t, 2048, entry.Metadata().Size)
	require.NotNil(t, entry.Metadata().Modified)
	assert.True(t, entry.Metadata().Modified.Equal(mod))

	ext, ok := entry.Extension()
	assert.True(t, ok)
	assert.Equal(t, "gz", ext)
}

func TestFileEntryWithoutAttributes(t *testing.T) {
	entry, err := fileEntry("/blob", nil, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 0, entry.Metadata().Size)
	assert.Nil(t, entry.Metadata().Modified)
}

func TestDirEntry(t *testing.T) {
	entry, err := dirEntry("/photos/2025")
	require.NoError(t, err)

	assert.True(t, entry.IsDir())
	assert.Equal(t, "2025", entry.Name())
	assert.Equal(t, fs.FileTypeDirectory, entry.Metadata().Type)
}

func TestOperationsBeforeConnect(t *testing.T) {
	c := New(Config{Bucket: "bucket"})
	ctx := t.Context()

	_, err := c.List(ctx, "/")
	assert.True(t, client.IsCode(err, client.ErrNotConnected))

	err = c.SetStat(ctx, "/x", fs.Metadata{})
	assert.True(t, client.IsCode(err, client.ErrNotConnected))

	err = c.Disconnect(ctx)
	assert.True(t, client.IsCode(err, client.ErrNotConnected))
}

func TestUnsupportedOperations(t *testing.T) {
	c := New(Config{Bucket: "bucket"})
	// Fake an established session; SetStat and Symlink never touch the
	// network.
	c.cwd = "/"

	err := c.SetStat(t.Context(), "/x", fs.Metadata{})
	assert.True(t, client.IsCode(err, client.ErrUnsupportedFeature))

	err = c.Symlink(t.Context(), "/link", "/target")
	assert.True(t, client.IsCode(err, client.ErrUnsupportedFeature))
}
