package s3

import (
	"path"
	"time"

	"github.com/roamfs/roamfs/pkg/fs"
)

// fileEntry builds the entry for an object at rp from the attributes S3
// reports. S3 has no permissions or ownership to map, so the metadata
// carries only size and modification time.
func fileEntry(rp string, size *int64, modified *time.Time) (fs.Entry, error) {
	md := fs.Metadata{Type: fs.FileTypeRegular}
	if size != nil {
		md.Size = uint64(*size)
	}
	if modified != nil {
		m := *modified
		md.Modified = &m
	}
	return fs.NewFile(path.Base(rp), rp, md)
}

// dirEntry builds the entry for a directory prefix at rp.
func dirEntry(rp string) (fs.Entry, error) {
	return fs.NewDirectory(path.Base(rp), rp, fs.Metadata{Type: fs.FileTypeDirectory})
}
