//go:build unix

package client

import (
	"os"
	"syscall"
)

// ownership extracts the numeric owner and group ids from a FileInfo when
// the underlying stat data carries them. Backends whose FileInfo has no
// syscall data (in-memory filesystems) report no ownership.
func ownership(fi os.FileInfo) (uid, gid *uint32) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return nil, nil
	}
	u := st.Uid
	g := st.Gid
	return &u, &g
}
