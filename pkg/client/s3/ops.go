package s3

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// deleteBatchSize is the DeleteObjects request limit.
const deleteBatchSize = 1000

// statPath resolves rp against the bucket. A path is a file when an
// object exists under its key, and a directory when a marker object or
// any object exists below its prefix.
func (c *Client) statPath(ctx context.Context, sdk *s3.Client, rp string) (fs.Entry, error) {
	if rp == "/" {
		return fs.NewDirectory("/", "/", fs.Metadata{Type: fs.FileTypeDirectory})
	}

	key := keyFor(rp)
	head, err := sdk.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return fileEntry(rp, head.ContentLength, head.LastModified)
	}
	if !isNotFound(err) {
		return nil, wrapErr(rp, err)
	}

	ok, err := c.prefixExists(ctx, sdk, dirPrefix(rp))
	if err != nil {
		return nil, wrapErr(rp, err)
	}
	if ok {
		return dirEntry(rp)
	}
	return nil, client.NewNoSuchFileError(rp, nil)
}

// prefixExists reports whether any object lives under prefix.
func (c *Client) prefixExists(ctx context.Context, sdk *s3.Client, prefix string) (bool, error) {
	out, err := sdk.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.cfg.Bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, err
	}
	return len(out.Contents) > 0, nil
}

// List returns the direct children of the directory at p. Subdirectories
// come from the delimiter grouping, files from the object listing.
func (c *Client) List(ctx context.Context, p string) (entries []fs.Entry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "List", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	entry, err := c.statPath(ctx, sdk, rp)
	if err != nil {
		return nil, err
	}
	if !entry.IsDir() {
		return nil, client.NewNotDirectoryError(rp)
	}

	prefix := dirPrefix(rp)
	entries = []fs.Entry{}

	paginator := s3.NewListObjectsV2Paginator(sdk, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.cfg.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapErr(rp, err)
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			child, err := dirEntry(path.Join(rp, name))
			if err != nil {
				continue
			}
			entries = append(entries, child)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				// The directory's own marker object.
				continue
			}
			name := strings.TrimPrefix(key, prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			child, err := fileEntry(path.Join(rp, name), obj.Size, obj.LastModified)
			if err != nil {
				continue
			}
			entries = append(entries, child)
		}
	}

	logger.Debug("listed directory",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.Path(rp),
		logger.Entries(len(entries)))
	return entries, nil
}

// Stat resolves p into a single entry.
func (c *Client) Stat(ctx context.Context, p string) (entry fs.Entry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Stat", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return c.statPath(ctx, sdk, rp)
}

// SetStat is not expressible on S3 objects.
func (c *Client) SetStat(ctx context.Context, p string, md fs.Metadata) error {
	if _, _, err := c.session(ctx); err != nil {
		return err
	}
	return client.NewUnsupportedFeatureError("SetStat")
}

// Exists reports whether p resolves to an entry.
func (c *Client) Exists(ctx context.Context, p string) (ok bool, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Exists", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return false, err
	}

	if _, err := c.statPath(ctx, sdk, rp); err != nil {
		if client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MakeDir creates a zero-byte marker object for the directory at p.
func (c *Client) MakeDir(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "MakeDir", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}
	if rp == "/" {
		return client.NewDirectoryAlreadyExistsError(rp)
	}

	if _, err := c.statPath(ctx, sdk, rp); err == nil {
		return client.NewDirectoryAlreadyExistsError(rp)
	} else if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		return err
	}

	parent := path.Dir(rp)
	pe, err := c.statPath(ctx, sdk, parent)
	if err != nil {
		return err
	}
	if !pe.IsDir() {
		return client.NewNotDirectoryError(parent)
	}

	_, err = sdk.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(dirPrefix(rp)),
		Body:   strings.NewReader(""),
	})
	if err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("created directory",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.Path(rp))
	return nil
}

// RemoveFile removes the object at p.
func (c *Client) RemoveFile(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "RemoveFile", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}

	entry, err := c.statPath(ctx, sdk, rp)
	if err != nil {
		return err
	}
	if entry.IsDir() {
		return client.NewIsDirectoryError(rp)
	}

	_, err = sdk.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(keyFor(rp)),
	})
	if err != nil {
		return wrapErr(rp, err)
	}

	logger.Debug("removed file",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.Path(rp))
	return nil
}

// RemoveDir removes the empty directory at p by deleting its marker
// object.
func (c *Client) RemoveDir(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "RemoveDir", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}
	if rp == "/" {
		return client.NewProtocolError("cannot remove the bucket root", nil)
	}

	entry, err := c.statPath(ctx, sdk, rp)
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	prefix := dirPrefix(rp)
	out, err := sdk.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.cfg.Bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(2),
	})
	if err != nil {
		return wrapErr(rp, err)
	}
	for _, obj := range out.Contents {
		if aws.ToString(obj.Key) != prefix {
			return client.NewDirectoryNotEmptyError(rp)
		}
	}

	_, err = sdk.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(prefix),
	})
	if err != nil && !isNotFound(err) {
		return wrapErr(rp, err)
	}

	logger.Debug("removed directory",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.Path(rp))
	return nil
}

// RemoveDirAll removes every object below the directory at p, including
// its marker.
func (c *Client) RemoveDirAll(ctx context.Context, p string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "RemoveDirAll", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return err
	}
	if rp == "/" {
		return client.NewProtocolError("cannot remove the bucket root", nil)
	}

	entry, err := c.statPath(ctx, sdk, rp)
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	prefix := dirPrefix(rp)
	var batch []types.ObjectIdentifier

	paginator := s3.NewListObjectsV2Paginator(sdk, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.cfg.Bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return wrapErr(rp, err)
		}
		for _, obj := range page.Contents {
			batch = append(batch, types.ObjectIdentifier{Key: obj.Key})
			if len(batch) == deleteBatchSize {
				if err := c.deleteBatch(ctx, sdk, rp, batch); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
	}
	if len(batch) > 0 {
		if err := c.deleteBatch(ctx, sdk, rp, batch); err != nil {
			return err
		}
	}

	logger.Debug("removed tree",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.Path(rp))
	return nil
}

func (c *Client) deleteBatch(ctx context.Context, sdk *s3.Client, rp string, batch []types.ObjectIdentifier) error {
	_, err := sdk.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(c.cfg.Bucket),
		Delete: &types.Delete{
			Objects: batch,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return wrapErr(rp, err)
	}
	return nil
}

// Rename moves the object at src to dst as a server-side copy followed by
// a delete. S3 cannot rename prefixes atomically, so directories are not
// supported.
func (c *Client) Rename(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Rename", start, err) }()

	if err := c.copyObject(ctx, src, dst, "Rename"); err != nil {
		return err
	}

	sdk, rpSrc, err := c.resolve(ctx, src)
	if err != nil {
		return err
	}
	_, err = sdk.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(keyFor(rpSrc)),
	})
	if err != nil {
		return wrapErr(rpSrc, err)
	}
	return nil
}

// Copy duplicates the object at src to dst server-side.
func (c *Client) Copy(ctx context.Context, src, dst string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Copy", start, err) }()

	return c.copyObject(ctx, src, dst, "Copy")
}

func (c *Client) copyObject(ctx context.Context, src, dst, op string) error {
	sdk, rpSrc, err := c.resolve(ctx, src)
	if err != nil {
		return err
	}
	_, cwd, err := c.session(ctx)
	if err != nil {
		return err
	}
	rpDst := client.ResolvePath(cwd, dst)

	entry, err := c.statPath(ctx, sdk, rpSrc)
	if err != nil {
		return err
	}
	if entry.IsDir() {
		return client.NewUnsupportedFeatureError(op + " of directories")
	}

	_, err = sdk.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(c.cfg.Bucket),
		Key:        aws.String(keyFor(rpDst)),
		CopySource: aws.String(c.cfg.Bucket + "/" + keyFor(rpSrc)),
	})
	if err != nil {
		return wrapErr(rpSrc, err)
	}

	logger.Debug("copied object",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.OldPath(rpSrc),
		logger.NewPath(rpDst))
	return nil
}

// Symlink is not expressible on S3.
func (c *Client) Symlink(ctx context.Context, linkPath, target string) error {
	if _, _, err := c.session(ctx); err != nil {
		return err
	}
	return client.NewUnsupportedFeatureError("Symlink")
}
