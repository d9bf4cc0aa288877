package sftp

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"time"

	sftppkg "github.com/pkg/sftp"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// List returns the entries contained in the directory at p. Children that
// cannot be resolved or classified are omitted.
func (c *Client) List(ctx context.Context, p string) (entries []fs.Entry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "List", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	fi, err := sess.Stat(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}
	if !fi.IsDir() {
		return nil, client.NewNotDirectoryError(rp)
	}

	infos, err := sess.ReadDir(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}

	entries = make([]fs.Entry, 0, len(infos))
	for _, info := range infos {
		entry, err := statEntry(sess, path.Join(rp, info.Name()))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	logger.Debug("listed directory",
		logger.Backend(backendName),
		logger.Path(rp),
		logger.Entries(len(entries)))
	return entries, nil
}

// Stat resolves p into a single entry.
func (c *Client) Stat(ctx context.Context, p string) (entry fs.Entry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Stat", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return statEntry(sess, rp)
}

// SetStat applies the reported attributes of md to the object at p.
func (c *Client) SetStat(ctx context.Context, p string, md fs.Metadata) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "SetStat", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	fi, err := sess.Stat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}

	if md.Mode != nil {
		if err := sess.Chmod(rp, os.FileMode(md.Mode.Mode())); err != nil {
			return wrapErr(rp, err)
		}
	}

	if md.UID != nil || md.GID != nil {
		// SFTP setstat carries both IDs; fill the missing one from the
		// current attributes.
		uid, gid := currentOwnership(fi)
		if md.UID != nil {
			uid = int(*md.UID)
		}
		if md.GID != nil {
			gid = int(*md.GID)
		}
		if err := sess.Chown(rp, uid, gid); err != nil {
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
		if err := sess.Chtimes(rp, atime, mtime); err != nil {
			return wrapErr(rp, err)
		}
	}

	return nil
}

// Exists reports whether p resolves to an entry.
func (c *Client) Exists(ctx context.Context, p string) (ok bool, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Exists", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return false, err
	}

	if _, err := sess.Stat(rp); err != nil {
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
	defer func() { metrics.ObserveOp(c.metrics, backendName, "MakeDir", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	if _, err := sess.Stat(rp); err == nil {
		return client.NewDirectoryAlreadyExistsError(rp)
	}
	if err := sess.Mkdir(rp); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return client.NewNoSuchFileError(path.Dir(rp), err)
		}
		return wrapErr(rp, err)
	}

	logger.Debug("created directory", logger.Backend(backendName), logger.Path(rp))
	return nil
}

// RemoveFile removes the file at p without following symlinks.
func (c *Client) RemoveFile(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "RemoveFile", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	fi, err := sess.Lstat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if fi.IsDir() {
		return client.NewIsDirectoryError(rp)
	}

	if err := sess.Remove(rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed file", logger.Backend(backendName), logger.Path(rp))
	return nil
}

// RemoveDir removes the empty directory at p.
func (c *Client) RemoveDir(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "RemoveDir", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	fi, err := sess.Stat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if !fi.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	infos, err := sess.ReadDir(rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if len(infos) > 0 {
		return client.NewDirectoryNotEmptyError(rp)
	}

	if err := sess.RemoveDirectory(rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed directory", logger.Backend(backendName), logger.Path(rp))
	return nil
}

// RemoveDirAll removes the directory at p and everything below it.
func (c *Client) RemoveDirAll(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "RemoveDirAll", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	if _, err := sess.Lstat(rp); err != nil {
		return wrapErr(rp, err)
	}
	if err := sess.RemoveAll(rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed tree", logger.Backend(backendName), logger.Path(rp))
	return nil
}

// Rename moves the object at src to dst.
func (c *Client) Rename(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Rename", start, err) }()

	sess, rpSrc, err := c.resolve(ctx, src)
	if err != nil {
		return err
	}
	_, cwd, err := c.session(ctx)
	if err != nil {
		return err
	}
	rpDst := client.ResolvePath(cwd, dst)

	if _, err := sess.Lstat(rpSrc); err != nil {
		return wrapErr(rpSrc, err)
	}
	if err := sess.Rename(rpSrc, rpDst); err != nil {
		return wrapErr(rpSrc, err)
	}

	logger.Debug("renamed",
		logger.Backend(backendName),
		logger.OldPath(rpSrc),
		logger.NewPath(rpDst))
	return nil
}

// Copy duplicates the file at src to dst by streaming it through the
// session; SFTP has no server-side copy.
func (c *Client) Copy(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Copy", start, err) }()

	sess, rpSrc, err := c.resolve(ctx, src)
	if err != nil {
		return err
	}
	_, cwd, err := c.session(ctx)
	if err != nil {
		return err
	}
	rpDst := client.ResolvePath(cwd, dst)

	fi, err := sess.Stat(rpSrc)
	if err != nil {
		return wrapErr(rpSrc, err)
	}
	if fi.IsDir() {
		return client.NewUnsupportedFeatureError("Copy of directories")
	}

	in, err := sess.Open(rpSrc)
	if err != nil {
		return client.NewCouldNotOpenFileError(rpSrc, err)
	}
	defer in.Close()

	out, err := sess.Create(rpDst)
	if err != nil {
		return client.NewFileCreateDeniedError(rpDst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return client.NewIOError(rpDst, err)
	}
	if err := out.Close(); err != nil {
		return client.NewIOError(rpDst, err)
	}

	logger.Debug("copied",
		logger.Backend(backendName),
		logger.OldPath(rpSrc),
		logger.NewPath(rpDst))
	return nil
}

// Symlink creates a symbolic link at linkPath pointing to target.
func (c *Client) Symlink(ctx context.Context, linkPath, target string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Symlink", start, err) }()

	sess, rp, err := c.resolve(ctx, linkPath)
	if err != nil {
		return err
	}

	if err := sess.Symlink(target, rp); err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("created symlink",
		logger.Backend(backendName),
		logger.Path(rp),
		logger.NewPath(target))
	return nil
}

// currentOwnership extracts the uid/gid pair from a stat result, falling
// back to 0 when the attributes are absent.
func currentOwnership(fi os.FileInfo) (uid, gid int) {
	if st, ok := fi.Sys().(*sftppkg.FileStat); ok && st != nil {
		return int(st.UID), int(st.GID)
	}
	return 0, 0
}
