package fsclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// Client is a client.Client backed by an afero.Fs.
type Client struct {
	afs     afero.Fs
	name    string
	metrics metrics.ClientMetrics

	mu        sync.Mutex
	connected bool
	cwd       string
	sessionID string
}

var _ client.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithMetrics injects an instrumentation sink. A nil sink disables
// metrics.
func WithMetrics(m metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New wraps an arbitrary afero filesystem. name identifies the backend in
// logs and metrics.
func New(afs afero.Fs, name string, opts ...Option) *Client {
	c := &Client{afs: afs, name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewMemory creates a client over a fresh in-memory filesystem.
func NewMemory(opts ...Option) *Client {
	return New(afero.NewMemMapFs(), "memory", opts...)
}

// NewLocal creates a client rooted at the given directory of the local
// disk. Paths handed to the client are interpreted relative to root, so a
// client cannot escape it.
func NewLocal(root string, opts ...Option) *Client {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root), "local", opts...)
}

// Connect establishes the session and positions the working directory at
// the filesystem root.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return client.NewAlreadyConnectedError()
	}
	if _, err := c.afs.Stat("/"); err != nil {
		return client.NewConnectionError(err)
	}

	c.connected = true
	c.cwd = "/"
	c.sessionID = uuid.NewString()

	logger.Debug("backend connected",
		logger.Backend(c.name),
		logger.SessionID(c.sessionID))
	return nil
}

// Disconnect tears the session down.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return client.NewNotConnectedError()
	}

	logger.Debug("backend disconnected",
		logger.Backend(c.name),
		logger.SessionID(c.sessionID))

	c.connected = false
	c.cwd = ""
	c.sessionID = ""
	return nil
}

// IsConnected reports whether the session is established.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Pwd returns the current working directory.
func (c *Client) Pwd(ctx context.Context) (string, error) {
	return c.ensureConnected(ctx)
}

// ChangeDir moves the working directory to dir, which must exist and be a
// directory.
func (c *Client) ChangeDir(ctx context.Context, dir string) error {
	rp, err := c.resolve(ctx, dir)
	if err != nil {
		return err
	}

	entry, err := c.statEntry(rp)
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	c.mu.Lock()
	c.cwd = rp
	c.mu.Unlock()

	logger.Debug("changed directory", logger.Backend(c.name), logger.Cwd(rp))
	return nil
}

// ensureConnected checks the context and the session state, returning the
// current working directory.
func (c *Client) ensureConnected(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return "", client.NewNotConnectedError()
	}
	return c.cwd, nil
}

// resolve turns p into an absolute cleaned path against the working
// directory.
func (c *Client) resolve(ctx context.Context, p string) (string, error) {
	cwd, err := c.ensureConnected(ctx)
	if err != nil {
		return "", err
	}
	return client.ResolvePath(cwd, p), nil
}

// lstat stats without following a trailing symlink when the filesystem
// supports it.
func (c *Client) lstat(rp string) (os.FileInfo, error) {
	if lst, ok := c.afs.(afero.Lstater); ok {
		fi, _, err := lst.LstatIfPossible(rp)
		return fi, err
	}
	return c.afs.Stat(rp)
}

// statEntry resolves rp into a published entry. Symbolic links are
// followed to classify the target; the link destination is preserved in
// the entry metadata. Objects that are neither files nor directories
// cannot be represented and report a stat failure.
func (c *Client) statEntry(rp string) (fs.Entry, error) {
	fi, err := c.lstat(rp)
	if err != nil {
		return nil, wrapErr(rp, err)
	}

	var target string
	if fi.Mode()&os.ModeSymlink != 0 {
		if lr, ok := c.afs.(afero.LinkReader); ok {
			target, _ = lr.ReadlinkIfPossible(rp)
		}
		fi, err = c.afs.Stat(rp)
		if err != nil {
			// Dangling link: there is nothing to classify.
			return nil, client.NewNoSuchFileError(rp, err)
		}
	}

	if !fi.IsDir() && !fi.Mode().IsRegular() {
		return nil, client.NewStatFailedError(rp, fmt.Errorf("unsupported file type %v", fi.Mode().Type()))
	}

	entry, err := client.EntryFromFileInfo(rp, fi, target)
	if err != nil {
		return nil, client.NewStatFailedError(rp, err)
	}
	return entry, nil
}

// wrapErr translates a filesystem error into the uniform error type.
func wrapErr(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return client.NewNoSuchFileError(path, err)
	case errors.Is(err, os.ErrPermission):
		return client.NewPermissionDeniedError(path, err)
	default:
		return client.NewIOError(path, err)
	}
}

// fileMode converts a permission aggregate into an os.FileMode including
// the setuid, setgid and sticky bits.
func fileMode(px fs.UnixPex) os.FileMode {
	m := px.Mode()
	fm := os.FileMode(m & 0o777)
	if m&0o4000 != 0 {
		fm |= os.ModeSetuid
	}
	if m&0o2000 != 0 {
		fm |= os.ModeSetgid
	}
	if m&0o1000 != 0 {
		fm |= os.ModeSticky
	}
	return fm
}
