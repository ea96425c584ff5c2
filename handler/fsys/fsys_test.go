package fsys_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler/fsys"
)

func mustWriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListEntriesAndListAllEntries(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), []byte("abc"))
	mustWriteFile(t, filepath.Join(root, "s", "b.txt"), []byte("x"))

	h := fsys.New()
	if !h.CanHandle(root) {
		t.Fatal("CanHandle should accept a directory")
	}

	top, err := h.ListEntries(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("want 2 top-level entries, got %d", len(top))
	}

	all, err := h.ListAllEntries(root)
	if err != nil {
		t.Fatal(err)
	}

	byPath := map[string]*entry.Info{}
	for _, e := range all {
		byPath[e.RelativePath] = e
	}

	for _, want := range []string{"a.txt", "s", "s/b.txt"} {
		if _, ok := byPath[want]; !ok {
			t.Errorf("missing entry %q, have %v", want, keys(byPath))
		}
	}

	data, err := h.ReadArchiveFile(root, "s/b.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x" {
		t.Errorf("ReadArchiveFile = %q, want %q", data, "x")
	}
}

func TestWideDirectoryUsesParallelWalk(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < fsys.WideDirThreshold+2; i++ {
		mustWriteFile(t, filepath.Join(root, "d"+pad(i), "leaf.txt"), []byte("x"))
	}

	h := fsys.New()
	all, err := h.ListAllEntries(root)
	if err != nil {
		t.Fatal(err)
	}

	leaves := 0
	for _, e := range all {
		if e.Type == entry.File {
			leaves++
		}
	}
	if leaves != fsys.WideDirThreshold+2 {
		t.Errorf("leaves = %d, want %d", leaves, fsys.WideDirThreshold+2)
	}
}

func keys(m map[string]*entry.Info) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func pad(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	return string(digits[i/10]) + string(digits[i%10])
}
