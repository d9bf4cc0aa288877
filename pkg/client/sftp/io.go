package sftp

import (
	"context"
	"io"
	"os"
	"time"

	sftppkg "github.com/pkg/sftp"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// Open opens the file at p for reading.
func (c *Client) Open(ctx context.Context, p string) (_ io.ReadCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Open", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	fi, err := sess.Stat(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}
	if fi.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	f, err := sess.Open(rp)
	if err != nil {
		return nil, client.NewCouldNotOpenFileError(rp, err)
	}
	return &countingReader{f: f, metrics: c.metrics}, nil
}

// Create opens the file at p for writing, truncating existing content.
func (c *Client) Create(ctx context.Context, p string) (_ io.WriteCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Create", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if fi, err := sess.Stat(rp); err == nil && fi.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	f, err := sess.Create(rp)
	if err != nil {
		return nil, client.NewFileCreateDeniedError(rp, err)
	}
	return &countingWriter{f: f, metrics: c.metrics}, nil
}

// Append opens the file at p for writing at its end, creating it when
// missing.
func (c *Client) Append(ctx context.Context, p string) (_ io.WriteCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, backendName, "Append", start, err) }()

	sess, rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if fi, err := sess.Stat(rp); err == nil && fi.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	f, err := sess.OpenFile(rp, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
	if err != nil {
		return nil, client.NewCouldNotOpenFileError(rp, err)
	}
	return &countingWriter{f: f, metrics: c.metrics}, nil
}

type countingReader struct {
	f       *sftppkg.File
	metrics metrics.ClientMetrics
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.f.Read(p)
	metrics.AddRead(r.metrics, backendName, int64(n))
	return n, err
}

func (r *countingReader) Close() error { return r.f.Close() }

type countingWriter struct {
	f       *sftppkg.File
	metrics metrics.ClientMetrics
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	metrics.AddWritten(w.metrics, backendName, int64(n))
	return n, err
}

func (w *countingWriter) Close() error { return w.f.Close() }
