package fsclient

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// Open opens the file at p for reading.
func (c *Client) Open(ctx context.Context, p string) (_ io.ReadCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Open", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	fi, err := c.afs.Stat(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}
	if fi.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	f, err := c.afs.Open(rp)
	if err != nil {
		return nil, client.NewCouldNotOpenFileError(rp, err)
	}
	return &countingReader{f: f, metrics: c.metrics, backend: c.name}, nil
}

// Create opens the file at p for writing, truncating existing content.
func (c *Client) Create(ctx context.Context, p string) (_ io.WriteCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Create", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if fi, err := c.afs.Stat(rp); err == nil && fi.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	f, err := c.afs.Create(rp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, client.NewNoSuchFileError(rp, err)
		}
		return nil, client.NewFileCreateDeniedError(rp, err)
	}
	return &countingWriter{f: f, metrics: c.metrics, backend: c.name}, nil
}

// Append opens the file at p for writing at its end, creating it when
// missing.
func (c *Client) Append(ctx context.Context, p string) (_ io.WriteCloser, err error) {
	start := time.Now()
	defer func() { metrics.ObserveOp(c.metrics, c.name, "Append", start, err) }()

	rp, err := c.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if fi, err := c.afs.Stat(rp); err == nil && fi.IsDir() {
		return nil, client.NewIsDirectoryError(rp)
	}

	f, err := c.afs.OpenFile(rp, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, client.NewCouldNotOpenFileError(rp, err)
	}
	return &countingWriter{f: f, metrics: c.metrics, backend: c.name}, nil
}

// countingReader forwards reads to the underlying file and feeds the
// bytes-read counter.
type countingReader struct {
	f       afero.File
	metrics metrics.ClientMetrics
	backend string
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.f.Read(p)
	metrics.AddRead(r.metrics, r.backend, int64(n))
	return n, err
}

func (r *countingReader) Close() error { return r.f.Close() }

// countingWriter forwards writes to the underlying file and feeds the
// bytes-written counter.
type countingWriter struct {
	f       afero.File
	metrics metrics.ClientMetrics
	backend string
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	metrics.AddWritten(w.metrics, w.backend, int64(n))
	return n, err
}

func (w *countingWriter) Close() error { return w.f.Close() }
