package fsclient

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"time"

	"github.com/spf13/afero"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// List returns the entries contained in the directory at p. Children that
// cannot be resolved or classified are omitted.
func (c *Client) List(ctx context.Context, p string) (entries []fs.Entry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "List", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	fi, err := c.afs.Stat(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}
	if !fi.IsDir() {
		return nil, client.NewNotDirectoryError(rp)
	}

	infos, err := afero.ReadDir(c.afs, rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}

	entries = make([]fs.Entry, 0, len(infos))
	for _, info := range infos {
		entry, err := c.statEntry(path.Join(rp, info.Name()))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	logger.Debug("listed directory",
		logger.Backend(c.name),
		logger.Path(rp),
		logger.Entries(len(entries)))
	return entries, nil
}

// Stat resolves p into a single entry.
func (c *Client) Stat(ctx context.Context, p string) (entry fs.Entry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Stat", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return c.statEntry(rp)
}

// SetStat applies the reported attributes of md to the object at p.
func (c *Client) SetStat(ctx context.Context, p string, md fs.Metadata) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "SetStat", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	fi, err := c.afs.Stat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}

	if md.Mode != nil {
		if err := c.afs.Chmod(rp, fileMode(*md.Mode)); err != nil {
			return wrapErr(rp, err)
		}
	}

	if md.UID != nil || md.GID != nil {
		uid, gid := -1, -1
		if md.UID != nil {
			uid = int(*md.UID)
		}
		if md.GID != nil {
			gid = int(*md.GID)
		}
		if err := c.afs.Chown(rp, uid, gid); err != nil {
			return wrapErr(rp, err)
		}
	}

	if md.Accessed != nil || md.Modified != nil {
		atime, mtime := fi.ModTime(), fi.ModTime()
		if md.Accessed != nil {
			atime = *md.Accessed
		}
		if md.Modified != nil {
			mtime = *md.Modified
		}
		if err := c.afs.Chtimes(rp, atime, mtime); err != nil {
			return wrapErr(rp, err)
		}
	}

	return nil
}

// Exists reports whether p resolves to an entry.
func (c *Client) Exists(ctx context.Context, p string) (ok bool, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Exists", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return false, err
	}

	if _, err := c.afs.Stat(rp); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, wrapErr(rp, err)
	}
	return true, nil
}

// MakeDir creates a directory at p.
func (c *Client) MakeDir(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "MakeDir", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	if _, err := c.afs.Stat(rp); err == nil {
		return client.NewDirectoryAlreadyExistsError(rp)
	}
	if err := c.afs.Mkdir(rp, 0o755); err != nil {
		switch {
		case errors.Is(err, os.ErrExist):
			return client.NewDirectoryAlreadyExistsError(rp)
		case errors.Is(err, os.ErrNotExist):
			return client.NewNoSuchFileError(path.Dir(rp), err)
		default:
			return wrapErr(rp, err)
		}
	}

	logger.Debug("created directory", logger.Backend(c.name), logger.Path(rp))
	return nil
}

// RemoveFile removes the file at p. Symbolic links are removed without
// following them.
func (c *Client) RemoveFile(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "RemoveFile", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	fi, err := c.lstat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if fi.IsDir() {
		return client.NewIsDirectoryError(rp)
	}

	if err := c.afs.Remove(rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed file", logger.Backend(c.name), logger.Path(rp))
	return nil
}

// RemoveDir removes the empty directory at p.
func (c *Client) RemoveDir(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "RemoveDir", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	fi, err := c.lstat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if !fi.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	infos, err := afero.ReadDir(c.afs, rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if len(infos) > 0 {
		return client.NewDirectoryNotEmptyError(rp)
	}

	if err := c.afs.Remove(rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed directory", logger.Backend(c.name), logger.Path(rp))
	return nil
}

// RemoveDirAll removes the directory at p and everything below it. The
// target must exist.
func (c *Client) RemoveDirAll(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "RemoveDirAll", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	if _, err := c.lstat(rp); err != nil {
		return wrapErr(rp, err)
	}
	if err := c.afs.RemoveAll(rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed tree", logger.Backend(c.name), logger.Path(rp))
	return nil
}

// Rename moves the object at src to dst.
func (c *Client) Rename(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Rename", start, err) }()

	rpSrc, err := c.resolve(ctx, src)
	if err != nil {
		return err
	}
	rpDst, err := c.resolve(ctx, dst)
	if err != nil {
		return err
	}

	if _, err := c.lstat(rpSrc); err != nil {
		return wrapErr(rpSrc, err)
	}
	if err := c.afs.Rename(rpSrc, rpDst); err != nil {
		return wrapErr(rpSrc, err)
	}

	logger.Debug("renamed",
		logger.Backend(c.name),
		logger.OldPath(rpSrc),
		logger.NewPath(rpDst))
	return nil
}

// Copy duplicates the object at src to dst. Directories are copied
// recursively; children that are neither files nor directories are
// skipped.
func (c *Client) Copy(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Copy", start, err) }()

	rpSrc, err := c.resolve(ctx, src)
	if err != nil {
		return err
	}
	rpDst, err := c.resolve(ctx, dst)
	if err != nil {
		return err
	}

	fi, err := c.afs.Stat(rpSrc)
	if err != nil {
		return wrapErr(rpSrc, err)
	}

	if fi.IsDir() {
		err = c.copyTree(rpSrc, rpDst)
	} else {
		err = c.copyFile(rpSrc, rpDst)
	}
	if err != nil {
		return err
	}

	logger.Debug("copied",
		logger.Backend(c.name),
		logger.OldPath(rpSrc),
		logger.NewPath(rpDst))
	return nil
}

func (c *Client) copyFile(src, dst string) error {
	in, err := c.afs.Open(src)
	if err != nil {
		return wrapErr(src, err)
	}
	defer in.Close()

	out, err := c.afs.Create(dst)
	if err != nil {
		return client.NewFileCreateDeniedError(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return client.NewIOError(dst, err)
	}
	if err := out.Close(); err != nil {
		return client.NewIOError(dst, err)
	}
	return nil
}

func (c *Client) copyTree(src, dst string) error {
	if err := c.afs.MkdirAll(dst, 0o755); err != nil {
		return wrapErr(dst, err)
	}

	infos, err := afero.ReadDir(c.afs, src)
	if err != nil {
		return wrapErr(src, err)
	}
	for _, info := range infos {
		s := path.Join(src, info.Name())
		d := path.Join(dst, info.Name())
		switch {
		case info.IsDir():
			if err := c.copyTree(s, d); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := c.copyFile(s, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Symlink creates a symbolic link at linkPath pointing to target. The
// underlying filesystem must support symlinks; the in-memory one does
// not.
func (c *Client) Symlink(ctx context.Context, linkPath, target string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Symlink", start, err) }()

	rp, err := c.resolve(ctx, linkPath)
	if err != nil {
		return err
	}

	sl, ok := c.afs.(afero.Symlinker)
	if !ok {
		return client.NewUnsupportedFeatureError("Symlink")
	}
	if err := sl.SymlinkIfPossible(target, rp); err != nil {
		if errors.Is(err, afero.ErrNoSymlink) {
			return client.NewUnsupportedFeatureError("Symlink")
		}
		return wrapErr(rp, err)
	}

	logger.Debug("created symlink",
		logger.Backend(c.name),
		logger.Path(rp),
		logger.NewPath(target))
	return nil
}
