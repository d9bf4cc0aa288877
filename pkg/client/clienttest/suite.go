package clienttest

import (
	"io"
	"strings"
	"testing"

	"github.com/roamfs/roamfs/pkg/client"
)

// ClientFactory creates a fresh, unconnected client for each test. The
// factory receives *testing.T so it can use t.TempDir() for backends that
// need filesystem paths and t.Cleanup() for teardown.
type ClientFactory func(t *testing.T) client.Client

// RunConformanceSuite runs the full conformance test suite against the
// provided client factory. Each test gets a fresh client to ensure
// isolation.
//
// The suite covers three categories:
//   - Lifecycle: connect, disconnect, working directory navigation
//   - DirOps: directory creation, listing, stat, removal
//   - FileOps: read/write streams, rename, copy, removal, symlinks
func RunConformanceSuite(t *testing.T, factory ClientFactory) {
	t.Helper()

	t.Run("Lifecycle", func(t *testing.T) {
		runLifecycleTests(t, factory)
	})

	t.Run("DirOps", func(t *testing.T) {
		runDirOpsTests(t, factory)
	})

	t.Run("FileOps", func(t *testing.T) {
		runFileOpsTests(t, factory)
	})
}

// connect is a helper that connects a fresh client and registers
// disconnection as cleanup.
func connect(t *testing.T, factory ClientFactory) client.Client {
	t.Helper()

	c := factory(t)
	ctx := t.Context()

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Disconnect(t.Context())
	})

	return c
}

// mkdir creates a directory, failing the test on error.
func mkdir(t *testing.T, c client.Client, path string) {
	t.Helper()

	if err := c.MakeDir(t.Context(), path); err != nil {
		t.Fatalf("MakeDir(%q) failed: %v", path, err)
	}
}

// writeFile creates a file with the given content through the streaming
// interface.
func writeFile(t *testing.T, c client.Client, path, content string) {
	t.Helper()

	w, err := c.Create(t.Context(), path)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", path, err)
	}
	if _, err := io.Copy(w, strings.NewReader(content)); err != nil {
		t.Fatalf("write to %q failed: %v", path, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close of %q failed: %v", path, err)
	}
}

// readFile reads a file back through the streaming interface.
func readFile(t *testing.T, c client.Client, path string) string {
	t.Helper()

	r, err := c.Open(t.Context(), path)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", path, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read of %q failed: %v", path, err)
	}
	return string(data)
}

// skipIfUnsupported skips the current subtest when the backend reports the
// operation as unsupported.
func skipIfUnsupported(t *testing.T, err error) {
	t.Helper()

	if client.IsCode(err, client.ErrUnsupportedFeature) {
		t.Skipf("backend does not support this operation: %v", err)
	}
}
