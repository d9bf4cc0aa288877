package clienttest

import (
	"sort"
	"testing"

	"github.com/roamfs/roamfs/pkg/client"
)

// runDirOpsTests runs the directory operation conformance tests.
func runDirOpsTests(t *testing.T, factory ClientFactory) {
	t.Run("MakeDir", func(t *testing.T) { testMakeDir(t, factory) })
	t.Run("MakeDirExisting", func(t *testing.T) { testMakeDirExisting(t, factory) })
	t.Run("List", func(t *testing.T) { testList(t, factory) })
	t.Run("ListEmpty", func(t *testing.T) { testListEmpty(t, factory) })
	t.Run("ListMissing", func(t *testing.T) { testListMissing(t, factory) })
	t.Run("ListFile", func(t *testing.T) { testListFile(t, factory) })
	t.Run("Stat", func(t *testing.T) { testStatDirectory(t, factory) })
	t.Run("Exists", func(t *testing.T) { testExists(t, factory) })
	t.Run("RemoveDir", func(t *testing.T) { testRemoveDir(t, factory) })
	t.Run("RemoveDirNotEmpty", func(t *testing.T) { testRemoveDirNotEmpty(t, factory) })
	t.Run("RemoveDirAll", func(t *testing.T) { testRemoveDirAll(t, factory) })
}

func testMakeDir(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/docs")

	entry, err := c.Stat(ctx, "/docs")
	if err != nil {
		t.Fatalf("Stat(/docs) failed: %v", err)
	}
	if !entry.IsDir() {
		t.Error("created directory stats as non-directory")
	}
	if entry.Name() != "docs" {
		t.Errorf("Name() = %q, want docs", entry.Name())
	}
	if entry.Path() != "/docs" {
		t.Errorf("Path() = %q, want /docs", entry.Path())
	}
}

func testMakeDirExisting(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	mkdir(t, c, "/dup")

	err := c.MakeDir(t.Context(), "/dup")
	if !client.IsCode(err, client.ErrDirectoryAlreadyExists) {
		t.Errorf("MakeDir(existing) = %v, want DirectoryAlreadyExists", err)
	}
}

func testList(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/work")
	writeFile(t, c, "/work/alpha.txt", "a")
	writeFile(t, c, "/work/beta.txt", "b")
	mkdir(t, c, "/work/gamma")

	entries, err := c.List(ctx, "/work")
	if err != nil {
		t.Fatalf("List(/work) failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
		if e.Path() != "/work/"+e.Name() {
			t.Errorf("Path() = %q, want /work/%s", e.Path(), e.Name())
		}
	}
	sort.Strings(names)

	want := []string{"alpha.txt", "beta.txt", "gamma"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}

	for _, e := range entries {
		if e.Name() == "gamma" && !e.IsDir() {
			t.Error("gamma should list as a directory")
		}
		if e.Name() == "alpha.txt" && !e.IsFile() {
			t.Error("alpha.txt should list as a file")
		}
	}
}

func testListEmpty(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	mkdir(t, c, "/empty")

	entries, err := c.List(t.Context(), "/empty")
	if err != nil {
		t.Fatalf("List(/empty) failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List(/empty) returned %d entries, want 0", len(entries))
	}
}

func testListMissing(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	_, err := c.List(t.Context(), "/nope")
	if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		t.Errorf("List(missing) = %v, want NoSuchFileOrDirectory", err)
	}
}

func testListFile(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	writeFile(t, c, "/single.txt", "x")

	_, err := c.List(t.Context(), "/single.txt")
	if !client.IsCode(err, client.ErrNotDirectory) {
		t.Errorf("List(file) = %v, want NotDirectory", err)
	}
}

func testStatDirectory(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/statdir")

	entry, err := c.Stat(ctx, "/statdir")
	if err != nil {
		t.Fatalf("Stat(/statdir) failed: %v", err)
	}
	if !entry.IsDir() {
		t.Error("Stat() of a directory returned a file entry")
	}
	if _, ok := entry.Extension(); ok {
		t.Error("directory entry must not carry an extension")
	}

	_, err = c.Stat(ctx, "/absent")
	if !client.IsCode(err, client.ErrNoSuchFileOrDirectory) {
		t.Errorf("Stat(missing) = %v, want NoSuchFileOrDirectory", err)
	}
}

func testExists(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/here")

	ok, err := c.Exists(ctx, "/here")
	if err != nil {
		t.Fatalf("Exists(/here) failed: %v", err)
	}
	if !ok {
		t.Error("Exists(/here) = false, want true")
	}

	ok, err = c.Exists(ctx, "/gone")
	if err != nil {
		t.Fatalf("Exists(/gone) failed: %v", err)
	}
	if ok {
		t.Error("Exists(/gone) = true, want false")
	}
}

func testRemoveDir(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/victim")

	if err := c.RemoveDir(ctx, "/victim"); err != nil {
		t.Fatalf("RemoveDir(/victim) failed: %v", err)
	}

	ok, err := c.Exists(ctx, "/victim")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if ok {
		t.Error("directory still exists after RemoveDir")
	}
}

func testRemoveDirNotEmpty(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)

	mkdir(t, c, "/full")
	writeFile(t, c, "/full/keep.txt", "content")

	err := c.RemoveDir(t.Context(), "/full")
	if !client.IsCode(err, client.ErrDirectoryNotEmpty) {
		t.Errorf("RemoveDir(non-empty) = %v, want DirectoryNotEmpty", err)
	}
}

func testRemoveDirAll(t *testing.T, factory ClientFactory) {
	c := connect(t, factory)
	ctx := t.Context()

	mkdir(t, c, "/tree")
	mkdir(t, c, "/tree/nested")
	writeFile(t, c, "/tree/nested/leaf.txt", "gone soon")

	if err := c.RemoveDirAll(ctx, "/tree"); err != nil {
		t.Fatalf("RemoveDirAll(/tree) failed: %v", err)
	}

	ok, err := c.Exists(ctx, "/tree")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if ok {
		t.Error("tree still exists after RemoveDirAll")
	}
}
