package sftp

import (
	"os"
	"path"
	"time"

	sftppkg "github.com/pkg/sftp"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
)

// entryFromInfo builds the canonical entry for absPath from an SFTP
// FileInfo. The protocol reports ownership and access time natively
// through *sftp.FileStat, which os.FileInfo does not carry, so this
// supplements the generic conversion.
//
// fi must describe the resolved object; linkTarget is the symlink
// destination when the path is a link.
func entryFromInfo(absPath string, fi os.FileInfo, linkTarget string) (fs.Entry, error) {
	name := path.Base(path.Clean(absPath))

	mode := client.UnixPexFromFileMode(fi.Mode())
	modified := fi.ModTime()

	md := fs.Metadata{
		Modified: &modified,
		Mode:     &mode,
		Symlink:  linkTarget,
	}
	if linkTarget != "" {
		md.Type = fs.FileTypeSymlink
	}

	if st, ok := fi.Sys().(*sftppkg.FileStat); ok && st != nil {
		uid, gid := st.UID, st.GID
		md.UID = &uid
		md.GID = &gid
		if st.Atime != 0 {
			accessed := time.Unix(int64(st.Atime), 0)
			md.Accessed = &accessed
		}
	}

	if fi.IsDir() {
		return fs.NewDirectory(name, absPath, md)
	}
	md.Size = uint64(fi.Size())
	return fs.NewFile(name, absPath, md)
}

// statEntry resolves rp into a published entry, following a trailing
// symlink to classify it.
func statEntry(sess *sftppkg.Client, rp string) (fs.Entry, error) {
	fi, err := sess.Lstat(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}

	var target string
	if fi.Mode()&os.ModeSymlink != 0 {
		target, _ = sess.ReadLink(rp)
		fi, err = sess.Stat(rp)
		if err != nil {
			return nil, client.NewNoSuchFileError(rp, err)
		}
	}

	if !fi.IsDir() && !fi.Mode().IsRegular() {
		return nil, client.NewStatFailedError(rp, os.ErrInvalid)
	}

	entry, err := entryFromInfo(rp, fi, target)
	if err != nil {
		return nil, client.NewStatFailedError(rp, err)
	}
	return entry, nil
}
