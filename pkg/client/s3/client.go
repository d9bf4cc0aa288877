package s3

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// Client is a client.Client backed by an S3 bucket.
type Client struct {
	cfg     Config
	metrics metrics.ClientMetrics

	mu        sync.Mutex
	s3        *s3.Client
	cwd       string
	sessionID string
}

var _ client.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithMetrics injects an instrumentation sink.
func WithMetrics(m metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

const backendName = "s3"

// New creates an unconnected S3 client from cfg.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithSDKClient wraps an existing SDK client. Used by tests that build
// the client against a local S3 stand-in.
func NewWithSDKClient(sdk *s3.Client, cfg Config, opts ...Option) *Client {
	c := New(cfg, opts...)
	c.s3 = sdk
	return c
}

// Connect builds the SDK client and verifies the bucket is reachable. The
// working directory starts at the bucket root.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cwd != "" {
		return client.NewAlreadyConnectedError()
	}

	if c.s3 == nil {
		sdk, err := c.cfg.buildClient(ctx)
		if err != nil {
			return client.NewConnectionError(err)
		}
		c.s3 = sdk
	}

	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.cfg.Bucket),
	})
	if err != nil {
		c.s3 = nil
		if isAccessDenied(err) {
			return client.NewAuthenticationFailedError(err)
		}
		return client.NewConnectionError(err)
	}

	c.cwd = "/"
	c.sessionID = uuid.NewString()

	logger.Debug("backend connected",
		logger.Backend(backendName),
		logger.Bucket(c.cfg.Bucket),
		logger.SessionID(c.sessionID))
	return nil
}

// Disconnect releases the session. The SDK client holds no persistent
// connection, so this only clears state.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cwd == "" {
		return client.NewNotConnectedError()
	}

	logger.Debug("backend disconnected",
		logger.Backend(backendName),
		logger.SessionID(c.sessionID))

	c.cwd = ""
	c.sessionID = ""
	return nil
}

// IsConnected reports whether the session is established.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cwd != ""
}

// Pwd returns the current working directory.
func (c *Client) Pwd(ctx context.Context) (string, error) {
	_, cwd, err := c.session(ctx)
	return cwd, err
}

// ChangeDir moves the working directory to dir.
func (c *Client) ChangeDir(ctx context.Context, dir string) error {
	sdk, cwd, err := c.session(ctx)
	if err != nil {
		return err
	}
	rp := client.ResolvePath(cwd, dir)

	entry, err := c.statPath(ctx, sdk, rp)
	if err != nil {
		return err
	}
	if !entry.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	c.mu.Lock()
	c.cwd = rp
	c.mu.Unlock()

	logger.Debug("changed directory", logger.Backend(backendName), logger.Cwd(rp))
	return nil
}

// session checks the context and returns the live SDK client with the
// working directory.
func (c *Client) session(ctx context.Context) (*s3.Client, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cwd == "" {
		return nil, "", client.NewNotConnectedError()
	}
	return c.s3, c.cwd, nil
}

// resolve resolves p against the working directory.
func (c *Client) resolve(ctx context.Context, p string) (*s3.Client, string, error) {
	sdk, cwd, err := c.session(ctx)
	if err != nil {
		return nil, "", err
	}
	return sdk, client.ResolvePath(cwd, p), nil
}

// keyFor maps an absolute path onto an object key. The root maps to the
// empty key.
func keyFor(rp string) string {
	return strings.TrimPrefix(rp, "/")
}

// dirPrefix maps an absolute path onto the listing prefix for its
// children.
func dirPrefix(rp string) string {
	key := keyFor(rp)
	if key == "" {
		return ""
	}
	return key + "/"
}

// isNotFound checks if an error is an S3 not found error.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "NoSuchKey") ||
		strings.Contains(errStr, "NotFound") ||
		strings.Contains(errStr, "404")
}

// isAccessDenied checks if an error is an S3 access denial.
func isAccessDenied(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "AccessDenied") ||
		strings.Contains(errStr, "InvalidAccessKeyId") ||
		strings.Contains(errStr, "SignatureDoesNotMatch") ||
		strings.Contains(errStr, "403")
}

// wrapErr translates an SDK error into the uniform error type.
func wrapErr(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return client.NewNoSuchFileError(path, err)
	case isAccessDenied(err):
		return client.NewPermissionDeniedError(path, err)
	default:
		return client.NewIOError(path, err)
	}
}
