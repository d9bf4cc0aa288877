package clienttest

import (
	"testing"
	"time"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/fs"
)

// runFileOpsTests runs the file operation conformance tests.
func runFileOpsTests(t *testing.T, factory ClientFactory) {
	t.Run("CreateAndOpen", func(t *testing.T) { testCreateAndOpen(t, factory) })
	t.Run("CreateTruncates", func(t *testing.T) { testCreateTruncates(t, factory) })
	t.Run("Append", func(t *testing.T) { testAppend(t, factory) })
	t.Run("OpenMissing", func(t *testing.T) { testOpenMissing(t, factory) })
	t.Run("OpenDirectory", func(t *testing.T) { testOpenDirectory(t, factory) })
	t.Run("StatFile", func(t *testing.T) { testStatFile(t, factory) })
	t.Run("RemoveFile", func(t *testing.T) { testRemoveFile(t, factory) })
	t.Run("RemoveFileOnDirectory", func(t *testing.T) { testRemoveFileOnDirectory(t, factory) })
	t.Run("Rename", func(t *testing.T) { testRenameFile(t, factory) })
	t.Run("RenameMissing", func(t *testing.T) { testRenameMissing(t, factory) })
	t.Run("Copy", func(t *testing.T) { testCopyFile(t, factory) })
	t.Run("SetStat", func(t *testing.T) { testSetStat(t, factory) })
	t.Run("Symlink", func(t *testing.T) { testSymlink(t, factory) })
}

func testCreateAndOpen(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	writeFile(t, c, "/hello.txt", "hello roamfs")

	got := readFile(t, c, "/hello.txt")
	if got != "hello roamfs" {
		t.Errorf("read back %q, want %q", got, "hello roamfs")
	}
}

func testCreateTruncates(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	writeFile(t, c, "/trunc.txt", "original long content")
	writeFile(t, c, "/trunc.txt", "short")

	got := readFile(t, c, "/trunc.txt")
	if got != "short" {
		t.Errorf("read back %q, want %q", got, "short")
	}
}

func testAppend(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/log.txt", "line1\n")

	w, err := c.Append(ctx, "/log.txt")
	skipIfUnsupported(t, err)
	if err != nil {
		t.Fatalf("Append(/log.txt) failed: %v", err)
	}
	if _, err := w.Write([]byte("line2\n")); err != nil {
		t.Fatalf("append write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("append close failed: %v", err)
	}

	got := readFile(t, c, "/log.txt")
	if got != "line1\nline2\n" {
		t.Errorf("read back %q, want %q", got, "line1\nline2\n")
	}
}

func testOpenMissing(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	_, err := c.Open(t.Context(), "/ghost.txt")
	if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		t.Errorf("Open(missing) = %v, want NoSuchFileOrDirectory", err)
	}
}

func testOpenDirectory(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	mkdir(t, c, "/folder")

	_, err := c.Open(t.Context(), "/folder")
	if err == nil {
		t.Fatal("Open(directory) succeeded, want error")
	}
	if !client.IsCode(err, client.ErrIsDirectory) && !client.IsCode(err, client.ErrCouldNotOpenFile) {
		t.Errorf("Open(directory) = %v, want IsDirectory or CouldNotOpenFile", err)
	}
}

func testStatFile(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/report.tar.gz", "payload bytes")

	entry, err := c.Stat(ctx, "/report.tar.gz")
	if err != nil {
		t.Fatalf("Stat(/report.tar.gz) failed: %v", err)
	}
	if !entry.IsFile() {
		t.Fatal("Stat() of a file returned a directory entry")
	}
	if entry.Metadata().Size != uint64(len("payload bytes")) {
		t.Errorf("Size = %d, want %d", entry.Metadata().Size, len("payload bytes"))
	}
	if ext, ok := entry.Extension(); !ok || ext != "gz" {
		t.Errorf("Extension() = %q, %v, want gz, true", ext, ok)
	}

	writeFile(t, c, "/.hidden", "secret")
	hidden, err := c.Stat(ctx, "/.hidden")
	if err != nil {
		t.Fatalf("Stat(/.hidden) failed: %v", err)
	}
	if !hidden.IsHidden() {
		t.Error("dot file should report hidden")
	}
}

func testRemoveFile(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/temp.txt", "bye")

	if err := c.RemoveFile(ctx, "/temp.txt"); err != nil {
		t.Fatalf("RemoveFile(/temp.txt) failed: %v", err)
	}

	ok, err := c.Exists(ctx, "/temp.txt")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if ok {
		t.Error("file still exists after RemoveFile")
	}

	err = c.RemoveFile(ctx, "/temp.txt")
	if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		t.Errorf("RemoveFile(missing) = %v, want NoSuchFileOrDirectory", err)
	}
}

func testRemoveFileOnDirectory(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	mkdir(t, c, "/notafile")

	err := c.RemoveFile(t.Context(), "/notafile")
	if !client.IsCode(err, client.ErrIsDirectory) {
		t.Errorf("RemoveFile(directory) = %v, want IsDirectory", err)
	}
}

func testRenameFile(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/old.txt", "moving")

	if err := c.Rename(ctx, "/old.txt", "/new.txt"); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}

	if got := readFile(t, c, "/new.txt"); got != "moving" {
		t.Errorf("renamed content = %q, want %q", got, "moving")
	}

	ok, err := c.Exists(ctx, "/old.txt")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if ok {
		t.Error("source still exists after Rename")
	}
}

func testRenameMissing(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	err := c.Rename(t.Context(), "/vanished.txt", "/anywhere.txt")
	if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		t.Errorf("Rename(missing) = %v, want NoSuchFileOrDirectory", err)
	}
}

func testCopyFile(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/src.txt", "duplicate me")

	err := c.Copy(ctx, "/src.txt", "/dst.txt")
	skipIfUnsupported(t, err)
	if err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}

	if got := readFile(t, c, "/dst.txt"); got != "duplicate me" {
		t.Errorf("copied content = %q, want %q", got, "duplicate me")
	}
	if got := readFile(t, c, "/src.txt"); got != "duplicate me" {
		t.Errorf("source content = %q after copy, want %q", got, "duplicate me")
	}
}

func testSetStat(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/chmod.txt", "perms")

	mode := fs.FromMode(0o640)
	modified := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	err := c.SetStat(ctx, "/chmod.txt", fs.Metadata{
		Mode:     &mode,
		Modified: &modified,
		Type:     fs.FileTypeRegular,
	})
	skipIfUnsupported(t, err)
	if err != nil {
		t.Fatalf("SetStat() failed: %v", err)
	}

	entry, err := c.Stat(ctx, "/chmod.txt")
	if err != nil {
		t.Fatalf("Stat() after SetStat failed: %v", err)
	}
	md := entry.Metadata()
	if md.Mode == nil || md.Mode.Mode() != 0o640 {
		t.Errorf("Mode after SetStat = %v, want 0640", md.Mode)
	}
	if md.Modified == nil || !md.Modified.Equal(modified) {
		t.Errorf("Modified after SetStat = %v, want %v", md.Modified, modified)
	}
}

func testSymlink(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	writeFile(t, c, "/target.txt", "pointed at")

	err := c.Symlink(ctx, "/link.txt", "/target.txt")
	skipIfUnsupported(t, err)
	if err != nil {
		t.Fatalf("Symlink() failed: %v", err)
	}

	if got := readFile(t, c, "/link.txt"); got != "pointed at" {
		t.Errorf("content through link = %q, want %q", got, "pointed at")
	}
}
