package output

import (
	"time"

	"github.com/roamfs/roamfs/internal/bytesize"
	"github.com/roamfs/roamfs/pkg/fs"
)

// FormatMode renders the permission column of a listing: the type marker
// followed by the ls-style permission triads, or dashes when the backend
// reports no permissions.
func FormatMode(entry fs.Entry) string {
	marker := "-"
	switch {
	case entry.Metadata().IsSymlink():
		marker = "l"
	case entry.IsDir():
		marker = "d"
	}

	if mode := entry.Metadata().Mode; mode != nil {
		return marker + mode.String()
	}
	return marker + "---------"
}

// FormatSize renders a file size in the largest fitting unit. Directories
// render as a dash.
func FormatSize(entry fs.Entry) string {
	if entry.IsDir() {
		return "-"
	}
	return bytesize.ByteSize(entry.Metadata().Size).String()
}

// FormatTime renders a timestamp for listings, or a dash when the backend
// did not report one.
func FormatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("Jan _2 15:04 2006")
}

// FormatName renders the name column, marking symlink targets the way ls
// does.
func FormatName(entry fs.Entry) string {
	md := entry.Metadata()
	if md.IsSymlink() && md.Symlink != "" {
		return entry.Name() + " -> " + md.Symlink
	}
	return entry.Name()
}
