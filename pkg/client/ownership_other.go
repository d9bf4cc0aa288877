//go:build !unix

package client

import "os"

// ownership is a no-op on platforms without Unix stat data.
func ownership(os.FileInfo) (uid, gid *uint32) {
	return nil, nil
}
