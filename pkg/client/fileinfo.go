package client

import (
	"os"
	"path"

	"github.com/roamfs/roamfs/pkg/fs"
)

// UnixPexFromFileMode converts the permission and setuid/setgid/sticky
// bits of an os.FileMode into a permission aggregate.
func UnixPexFromFileMode(mode os.FileMode) fs.UnixPex {
	m := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		m |= 0o4000
	}
	if mode&os.ModeSetgid != 0 {
		m |= 0o2000
	}
	if mode&os.ModeSticky != 0 {
		m |= 0o1000
	}
	return fs.FromMode(m)
}

// EntryFromFileInfo builds the canonical entry for the object at absPath
// from an os.FileInfo, the shape most Go-facing protocols (local disk,
// SFTP) already speak.
//
// fi must describe the resolved object: for symbolic links the caller
// stats the target to classify the entry as file or directory and passes
// the target path as linkTarget. Objects that resolve to neither variant
// (devices, sockets, dangling links) are the caller's responsibility to
// omit before calling.
func EntryFromFileInfo(absPath string, fi os.FileInfo, linkTarget string) (fs.Entry, error) {
	name := path.Base(path.Clean(absPath))

	mode := UnixPexFromFileMode(fi.Mode())
	modified := fi.ModTime()

	md := fs.Metadata{
		Modified: &modified,
		Mode:     &mode,
		Symlink:  linkTarget,
	}
	if linkTarget != "" {
		md.Type = fs.FileTypeSymlink
	}
	if uid, gid := ownership(fi); uid != nil {
		md.UID = uid
		md.GID = gid
	}

	if fi.IsDir() {
		return fs.NewDirectory(name, absPath, md)
	}
	md.Size = uint64(fi.Size())
	return fs.NewFile(name, absPath, md)
}
