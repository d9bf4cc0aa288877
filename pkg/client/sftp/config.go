package sftp

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Config holds the connection parameters for an SFTP backend.
type Config struct {
	// Host is the server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host" validate:"required"`

	// Port is the SSH port. Defaults to 22 when zero.
	Port int `mapstructure:"port" yaml:"port,omitempty" validate:"min=0,max=65535"`

	// User is the login name.
	User string `mapstructure:"user" yaml:"user" validate:"required"`

	// Password enables password authentication when non-empty.
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	// PrivateKeyPath enables public-key authentication when non-empty.
	PrivateKeyPath string `mapstructure:"private_key_path" yaml:"private_key_path,omitempty"`

	// PrivateKeyPassphrase decrypts an encrypted private key.
	PrivateKeyPassphrase string `mapstructure:"private_key_passphrase" yaml:"private_key_passphrase,omitempty"`

	// KnownHostsPath points at an OpenSSH known_hosts file used to verify
	// the server key. Required unless InsecureIgnoreHostKey is set.
	KnownHostsPath string `mapstructure:"known_hosts_path" yaml:"known_hosts_path,omitempty"`

	// InsecureIgnoreHostKey disables host key verification. Only for
	// testing.
	InsecureIgnoreHostKey bool `mapstructure:"insecure_ignore_host_key" yaml:"insecure_ignore_host_key,omitempty"`

	// Timeout bounds the TCP dial and SSH handshake. Defaults to 30s
	// when zero.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// Address returns the host:port dial target.
func (c Config) Address() string {
	port := c.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// timeout returns the configured timeout or the default.
func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 30 * time.Second
}

// authMethods assembles the SSH authentication methods the configuration
// enables, most specific first.
func (c Config) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if c.PrivateKeyPath != "" {
		key, err := os.ReadFile(c.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read private key %s: %w", c.PrivateKeyPath, err)
		}
		var signer ssh.Signer
		if c.PrivateKeyPassphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(key, []byte(c.PrivateKeyPassphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(key)
		}
		if err != nil {
			return nil, fmt.Errorf("parse private key %s: %w", c.PrivateKeyPath, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if c.Password != "" {
		methods = append(methods, ssh.Password(c.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method configured for %s@%s", c.User, c.Host)
	}
	return methods, nil
}

// hostKeyCallback builds the server key verifier.
func (c Config) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if c.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if c.KnownHostsPath == "" {
		return nil, fmt.Errorf("known_hosts_path is required unless host key verification is disabled")
	}
	cb, err := knownhosts.New(c.KnownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("load known hosts %s: %w", c.KnownHostsPath, err)
	}
	return cb, nil
}
