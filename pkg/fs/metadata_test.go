package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadataDefaults(t *testing.T) {
	var md Metadata

	assert.Equal(t, uint64(0), md.Size)
	assert.Nil(t, md.Accessed)
	assert.Nil(t, md.Modified)
	assert.Nil(t, md.Created)
	assert.Nil(t, md.UID)
	assert.Nil(t, md.GID)
	assert.Nil(t, md.Mode)
	assert.Empty(t, md.Symlink)
	assert.Equal(t, FileTypeRegular, md.Type)
	assert.False(t, md.IsSymlink())
}

func TestMetadataEqual(t *testing.T) {
	now := time.Now()
	uid := uint32(1000)
	gid := uint32(100)
	mode := FromMode(0o644)

	build := func() Metadata {
		// Fresh pointers each call so equality must follow values, not
		// pointer identity.
		n := now
		u := uid
		g := gid
		m := mode
		return Metadata{
			Size:     42,
			Modified: &n,
			UID:      &u,
			GID:      &g,
			Mode:     &m,
		}
	}

	a := build()
	b := build()
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	c := build()
	c.Size = 43
	assert.False(t, a.Equal(c))

	d := build()
	d.UID = nil
	assert.False(t, a.Equal(d))

	e := build()
	later := now.Add(time.Second)
	e.Modified = &later
	assert.False(t, a.Equal(e))

	f := build()
	m := FromMode(0o600)
	f.Mode = &m
	assert.False(t, a.Equal(f))
}

func TestMetadataEqualTimeZones(t *testing.T) {
	// The same instant in different zones is still the same timestamp.
	utc := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cet := utc.In(time.FixedZone("CET", 3600))

	a := Metadata{Modified: &utc}
	b := Metadata{Modified: &cet}
	assert.True(t, a.Equal(b))
}

func TestMetadataIndependentOfPath(t *testing.T) {
	// Metadata carries no name or path: entries at different paths with
	// the same attributes compare equal in their metadata.
	md := Metadata{Size: 7, Type: FileTypeRegular}

	a, err := NewFile("a.txt", "/dir1/a.txt", md)
	assert.NoError(t, err)
	b, err := NewFile("b.txt", "/dir2/b.txt", md)
	assert.NoError(t, err)

	assert.True(t, a.Metadata().Equal(b.Metadata()))
}

func TestMetadataSymlink(t *testing.T) {
	md := Metadata{Type: FileTypeSymlink, Symlink: "/target"}
	assert.True(t, md.IsSymlink())
	assert.Equal(t, "/target", md.Symlink)
}
