package sftp

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	sftppkg "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/roamfs/roamfs/internal/logger"
	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/metrics"
)

// Client is a client.Client speaking SFTP.
type Client struct {
	cfg     Config
	metrics metrics.ClientMetrics

	mu        sync.Mutex
	conn      *ssh.Client
	sftp      *sftppkg.Client
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

const backendName = "sftp"

// New creates an unconnected SFTP client from cfg.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the server, runs the SSH handshake and opens the SFTP
// subsystem. The working directory starts at the server-reported home
// directory, falling back to /.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sftp != nil {
		return client.NewAlreadyConnectedError()
	}

	methods, err := c.cfg.authMethods()
	if err != nil {
		return client.NewAuthenticationFailedError(err)
	}
	hostKey, err := c.cfg.hostKeyCallback()
	if err != nil {
		return client.NewConnectionError(err)
	}

	sshCfg := &ssh.ClientConfig{
		User:            c.cfg.User,
		Auth:            methods,
		HostKeyCallback: hostKey,
		Timeout:         c.cfg.timeout(),
	}

	addr := c.cfg.Address()
	dialer := net.Dialer{Timeout: c.cfg.timeout()}
	tcp, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		var addrErr *net.AddrError
		if errors.As(err, &addrErr) {
			return client.NewBadAddressError(addr, err)
		}
		return client.NewConnectionError(err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(tcp, addr, sshCfg)
	if err != nil {
		tcp.Close()
		if isAuthError(err) {
			return client.NewAuthenticationFailedError(err)
		}
		return client.NewConnectionError(err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	sess, err := sftppkg.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return client.NewProtocolError("could not open sftp subsystem", err)
	}

	cwd, err := sess.Getwd()
	if err != nil || cwd == "" {
		cwd = "/"
	}

	c.conn = sshClient
	c.sftp = sess
	c.cwd = cwd
	c.sessionID = uuid.NewString()

	logger.Debug("backend connected",
		logger.Backend(backendName),
		logger.Host(c.cfg.Host),
		logger.Cwd(cwd),
		logger.SessionID(c.sessionID))
	return nil
}

// Disconnect closes the SFTP session and the SSH connection.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sftp == nil {
		return client.NewNotConnectedError()
	}

	logger.Debug("backend disconnected",
		logger.Backend(backendName),
		logger.SessionID(c.sessionID))

	sftpErr := c.sftp.Close()
	connErr := c.conn.Close()
	c.sftp = nil
	c.conn = nil
	c.cwd = ""
	c.sessionID = ""

	if sftpErr != nil {
		return client.NewConnectionError(sftpErr)
	}
	if connErr != nil {
		return client.NewConnectionError(connErr)
	}
	return nil
}

// IsConnected reports whether the session is established.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sftp != nil
}

// Pwd returns the current working directory.
func (c *Client) Pwd(ctx context.Context) (string, error) {
	_, cwd, err := c.session(ctx)
	return cwd, err
}

// ChangeDir moves the working directory to dir.
func (c *Client) ChangeDir(ctx context.Context, dir string) error {
	sess, cwd, err := c.session(ctx)
	if err != nil {
		return err
	}
	rp := client.ResolvePath(cwd, dir)

	fi, err := sess.Stat(rp)
	if err != nil {
		return wrapErr(rp, err)
	}
	if !fi.IsDir() {
		return client.NewNotDirectoryError(rp)
	}

	c.mu.Lock()
	c.cwd = rp
	c.mu.Unlock()

	logger.Debug("changed directory", logger.Backend(backendName), logger.Cwd(rp))
	return nil
}

// session checks the context and returns the live SFTP session with the
// working directory.
func (c *Client) session(ctx context.Context) (*sftppkg.Client, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sftp == nil {
		return nil, "", client.NewNotConnectedError()
	}
	return c.sftp, c.cwd, nil
}

// resolve resolves p against the working directory.
func (c *Client) resolve(ctx context.Context, p string) (*sftppkg.Client, string, error) {
	sess, cwd, err := c.session(ctx)
	if err != nil {
		return nil, "", err
	}
	return sess, client.ResolvePath(cwd, p), nil
}

// isAuthError reports whether an SSH handshake failure was an
// authentication rejection rather than a transport problem.
func isAuthError(err error) bool {
	var authErr *ssh.ServerAuthError
	if errors.As(err, &authErr) {
		return true
	}
	// The handshake wraps auth failures in a plain error mentioning the
	// failed methods.
	return err != nil && strings.Contains(err.Error(), "unable to authenticate")
}

// wrapErr translates an SFTP protocol error into the uniform error type.
func wrapErr(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return client.NewNoSuchFileError(path, err)
	case errors.Is(err, os.ErrPermission):
		return client.NewPermissionDeniedError(path, err)
	case errors.Is(err, sftppkg.ErrSSHFxOpUnsupported):
		return client.NewUnsupportedFeatureError("operation")
	default:
		return client.NewIOError(path, err)
	}
}
