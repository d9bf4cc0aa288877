package clienttest

import (
	"testing"

	"github.com/roamfs/roamfs/pkg/client"
)

// runLifecycleTests runs the connection and navigation conformance tests.
func runLifecycleTests(t *testing.T, factory ClientFactory) {
	t.Run("ConnectDisconnect", func(t *testing.T) { testConnectDisconnect(t, factory) })
	t.Run("NotConnected", func(t *testing.T) { testNotConnected(t, factory) })
	t.Run("Pwd", func(t *testing.T) { testPwd(t, factory) })
	t.Run("ChangeDir", func(t *testing.T) { testChangeDir(t, factory) })
	t.Run("ChangeDirRelative", func(t *testing.T) { testChangeDirRelative(t, factory) })
	t.Run("ChangeDirMissing", func(t *testing.T) { testChangeDirMissing(t, factory) })
	t.Run("ChangeDirToFile", func(t *testing.T) { testChangeDirToFile(t, factory) })
}

func testConnectDisconnect(t *testing.T, factory ClientFactory) {
	c := factory(t)
	ctx := t.Context()

	if c.IsConnected() {
		t.Error("IsConnected() = true before Connect")
	}

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	if !c.IsConnected() {
		t.Error("IsConnected() = false after Connect")
	}

	if err := c.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect() failed: %v", err)
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true after Disconnect")
	}
}

func testNotConnected(t *testing.T, factory ClientFactory) {
	c := factory(t)
	ctx := t.Context()

	_, err := c.List(ctx, "/")
	if !client.IsCode(err, client.ErrNotConnected) {
		t.Errorf("List() before Connect = %v, want NotConnected", err)
	}

	_, err = c.Pwd(ctx)
	if !client.IsCode(err, client.ErrNotConnected) {
		t.Errorf("Pwd() before Connect = %v, want NotConnected", err)
	}
}

func testPwd(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	cwd, err := c.Pwd(t.Context())
	if err != nil {
		t.Fatalf("Pwd() failed: %v", err)
	}
	if cwd == "" {
		t.Error("Pwd() returned empty path")
	}
	if cwd[0] != '/' {
		t.Errorf("Pwd() = %q, want absolute path", cwd)
	}
}

func testChangeDir(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/projects")

	if err := c.ChangeDir(ctx, "/projects"); err != nil {
		t.Fatalf("ChangeDir(/projects) failed: %v", err)
	}

	cwd, err := c.Pwd(ctx)
	if err != nil {
		t.Fatalf("Pwd() failed: %v", err)
	}
	if cwd != "/projects" {
		t.Errorf("Pwd() = %q, want /projects", cwd)
	}
}

func testChangeDirRelative(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/a")
	mkdir(t, c, "/a/b")

	if err := c.ChangeDir(ctx, "/a"); err != nil {
		t.Fatalf("ChangeDir(/a) failed: %v", err)
	}
	if err := c.ChangeDir(ctx, "b"); err != nil {
		t.Fatalf("ChangeDir(b) failed: %v", err)
	}

	cwd, err := c.Pwd(ctx)
	if err != nil {
		t.Fatalf("Pwd() failed: %v", err)
	}
	if cwd != "/a/b" {
		t.Errorf("Pwd() = %q, want /a/b", cwd)
	}

	if err := c.ChangeDir(ctx, ".."); err != nil {
		t.Fatalf("ChangeDir(..) failed: %v", err)
	}
	cwd, _ = c.Pwd(ctx)
	if cwd != "/a" {
		t.Errorf("Pwd() after .. = %q, want /a", cwd)
	}
}

func testChangeDirMissing(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	err := c.ChangeDir(t.Context(), "/does/not/exist")
	if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		t.Errorf("ChangeDir(missing) = %v, want NoSuchFileOrDirectory", err)
	}
}

func testChangeDirToFile(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	writeFile(t, c, "/plain.txt", "data")

	err := c.ChangeDir(t.Context(), "/plain.txt")
	if !client.IsCode(err, client.ErrNotDirectory) {
		t.Errorf("ChangeDir(file) = %v, want NotDirectory", err)
	}
}
