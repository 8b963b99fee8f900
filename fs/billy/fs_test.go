package billy

import (
	"path/filepath"
	"testing"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
)

func testWriteRead(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	p := filepath.Join(root, "nested/dir/file.txt")

	ok, err := fs.Exists(p)
	if err != nil || ok {
		t.Fatalf("Exists(%q) before write = %v, %v; want false, nil", p, ok, err)
	}

	if e := fs.WriteFile(p, []byte("hello"), 0o644); e != nil {
		t.Fatalf("WriteFile failed: %v", e)
	}

	ok, err = fs.Exists(p)
	if err != nil || !ok {
		t.Fatalf("Exists(%q) = %v, %v; want true, nil", p, ok, err)
	}

	b, err := fs.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(b) != "hello" {
		t.Errorf("ReadFile = %q, want %q", string(b), "hello")
	}

	if e := fs.WriteFile(p, []byte("bye"), 0o644); e != nil {
		t.Fatalf("WriteFile overwrite failed: %v", e)
	}
	b, err = fs.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile after overwrite failed: %v", err)
	}
	if string(b) != "bye" {
		t.Errorf("ReadFile after overwrite = %q, want %q", string(b), "bye")
	}
}

func testWriteCreatesParents(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	if e := fs.WriteFile(filepath.Join(root, "a/b/c/file.txt"), []byte("x"), 0o644); e != nil {
		t.Fatalf("WriteFile failed: %v", e)
	}

	entries, err := fs.ReadDir(filepath.Join(root, "a/b"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "c" || !entries[0].IsDir() {
		t.Errorf("ReadDir(a/b) = %v, want single directory c", entries)
	}
}

func testReadDirSorted(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	dir := filepath.Join(root, "sorted")
	for _, name := range []string{"gamma", "alpha", "beta"} {
		if e := fs.WriteFile(filepath.Join(dir, name, "keep"), nil, 0o644); e != nil {
			t.Fatalf("WriteFile failed: %v", e)
		}
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	want := []string{"alpha", "beta", "gamma"}
	if len(entries) != len(want) {
		t.Fatalf("ReadDir returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.Name(), want[i])
		}
	}
}

func testReadMissing(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	if _, err := fs.ReadFile(filepath.Join(root, "missing.txt")); err == nil {
		t.Error("ReadFile of missing file succeeded, want error")
	}
	if _, err := fs.ReadDir(filepath.Join(root, "missing")); err == nil {
		t.Error("ReadDir of missing directory succeeded, want error")
	}
}

// runSuite runs a battery of consistency tests against a Filesystem impl.
func runSuite(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	testWriteRead(t, fs, root)
	testWriteCreatesParents(t, fs, root)
	testReadDirSorted(t, fs, root)
	testReadMissing(t, fs, root)
}

func TestInMemoryFS_Suite(t *testing.T) {
	runSuite(t, NewInMemoryFS(), "/")
}

func TestOSFS_Suite(t *testing.T) {
	root := t.TempDir()
	runSuite(t, NewOSFS(root), "")
}
