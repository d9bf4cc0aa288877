package s3

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// Open streams the object at p.
func (c *Client) Open(ctx context.Context, p string) (_ io.ReadCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Open", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	out, err := sdk.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(keyFor(rp)),
	})
	if err != nil {
		if isNotFound(err) {
			// The key may still name a directory.
			if entry, statErr := c.statPath(ctx, sdk, rp); statErr == nil && entry.IsDir() {
				return nil, client.NewIsDirectoryError(rp)
			}
			return nil, client.NewNoSuchFileError(rp, err)
		}
		return nil, wrapErr(rp, err)
	}
	return &countingReader{body: out.Body, metrics: c.metrics}, nil
}

// Create buffers writes and uploads the object when the stream is closed.
// S3 has no partial writes, so the upload is all-or-nothing.
func (c *Client) Create(ctx context.Context, p string) (_ io.WriteCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Create", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if entry, statErr := c.statPath(ctx, sdk, rp); statErr == nil && entry.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	return &bufferedWriter{
		ctx:     ctx,
		sdk:     sdk,
		bucket:  c.cfg.Bucket,
		key:     keyFor(rp),
		path:    rp,
		metrics: c.metrics,
	}, nil
}

// Append downloads the existing object into the buffer and continues
// writing after it; the whole object is re-uploaded on close.
func (c *Client) Append(ctx context.Context, p string) (_ io.WriteCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Append", start, err) }()

	sdk, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if entry, statErr := c.statPath(ctx, sdk, rp); statErr == nil && entry.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	w := &bufferedWriter{
		ctx:     ctx,
		sdk:     sdk,
		bucket:  c.cfg.Bucket,
		key:     keyFor(rp),
		path:    rp,
		metrics: c.metrics,
	}

	out, err := sdk.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(keyFor(rp)),
	})
	if err != nil {
		if !isNotFound(err) {
			return nil, wrapErr(rp, err)
		}
		return w, nil
	}
	defer out.Body.Close()

	if _, err := io.Copy(&w.buf, out.Body); err != nil {
		return nil, client.NewIOError(rp, err)
	}
	return w, nil
}

type countingReader struct {
	body    io.ReadCloser
	metrics metrics.ClientMetrics
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.body.Read(p)
	metrics.AddRead(r.metrics, backendName, int64(n))
	return n, err
}

func (r *countingReader) Close() error { return r.body.Close() }

// bufferedWriter accumulates the object body in memory and uploads it in
// one PutObject call on Close.
type bufferedWriter struct {
	ctx     context.Context
	sdk     *s3.Client
	bucket  string
	key     string
	path    string
	metrics metrics.ClientMetrics
	buf     bytes.Buffer
	closed  bool
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	metrics.AddWritten(w.metrics, backendName, int64(n))
	return n, err
}

func (w *bufferedWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.sdk.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	if err != nil {
		return client.NewIOError(w.path, err)
	}
	return nil
}
