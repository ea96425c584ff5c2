package entry_test

import (
	"testing"

	"github.com/nabbar/arcvfs/entry"
)

func TestNewNormalizesRelativePath(t *testing.T) {
	e := entry.New("a.txt", "/s//a.txt/", entry.File, "s/a.txt")
	if e.RelativePath != "s/a.txt" {
		t.Errorf("RelativePath = %q, want %q", e.RelativePath, "s/a.txt")
	}
	if e.Key() != e.RelativePath {
		t.Errorf("Key() = %q, want %q", e.Key(), e.RelativePath)
	}
}

func TestNameInArchiveNeverMutatedByClone(t *testing.T) {
	e := entry.NewArchive("inner.zip", "inner.zip", "m/inner.zip")
	c := e.Clone()
	c.Name = "renamed.zip"
	if e.Name == c.Name {
		t.Fatalf("clone aliases original")
	}
	if e.NameInArchive != "m/inner.zip" || c.NameInArchive != "m/inner.zip" {
		t.Errorf("NameInArchive mutated by clone")
	}
}

func TestIsContainer(t *testing.T) {
	if !entry.NewDir("s", "s").IsContainer() {
		t.Error("directory should be a container")
	}
	if !entry.NewArchive("a.zip", "a.zip", "a.zip").IsContainer() {
		t.Error("archive should be a container")
	}
	if entry.New("f.txt", "f.txt", entry.File, "f.txt").IsContainer() {
		t.Error("file should not be a container")
	}
}

func TestCloneDeepCopiesCache(t *testing.T) {
	e := entry.NewArchive("a.zip", "a.zip", "a.zip")
	e.Cache = &entry.Cache{Kind: entry.CacheBytes, Bytes: []byte{1, 2, 3}}
	c := e.Clone()
	c.Cache.Bytes[0] = 9
	if e.Cache.Bytes[0] != 1 {
		t.Error("clone shares underlying byte slice")
	}
}
