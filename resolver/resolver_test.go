package resolver_test

import (
	"testing"
	"time"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/registry"
	"github.com/nabbar/arcvfs/resolver"
)

type zipLikeHandler struct{}

func (zipLikeHandler) Name() string                 { return "ziplike" }
func (zipLikeHandler) SupportedExtensions() []string { return []string{".zip"} }
func (zipLikeHandler) CanHandle(path string) bool {
	return len(path) > 4 && path[len(path)-4:] == ".zip"
}
func (zipLikeHandler) CanHandleBytes([]byte, string) bool                    { return false }
func (zipLikeHandler) ListEntries(string) ([]*entry.Info, error)             { return nil, nil }
func (zipLikeHandler) ListAllEntries(string) ([]*entry.Info, error)          { return nil, nil }
func (zipLikeHandler) ListAllEntriesFromBytes([]byte) ([]*entry.Info, error) { return nil, nil }
func (zipLikeHandler) ReadArchiveFile(string, string) ([]byte, error)        { return nil, nil }
func (zipLikeHandler) ReadFileFromBytes([]byte, string) ([]byte, error)      { return nil, nil }

func TestAnalyzeSplitsAtArchiveBoundary(t *testing.T) {
	r := registry.New()
	r.Register(zipLikeHandler{})
	rv := resolver.New(r)

	archivePath, internalPath, found := rv.Analyze("photos/album.zip/img/one.png", "")
	if !found {
		t.Fatalf("expected a match")
	}
	if archivePath != "photos/album.zip" || internalPath != "img/one.png" {
		t.Fatalf("unexpected split: %q / %q", archivePath, internalPath)
	}
}

func TestAnalyzeFallsBackToArchiveBasePath(t *testing.T) {
	r := registry.New()
	r.Register(zipLikeHandler{})
	rv := resolver.New(r)

	archivePath, internalPath, found := rv.Analyze("img/one.png", "base.zip")
	if !found || archivePath != "base.zip" || internalPath != "img/one.png" {
		t.Fatalf("unexpected result: %q / %q / %v", archivePath, internalPath, found)
	}
}

func TestAnalyzeNoMatch(t *testing.T) {
	r := registry.New()
	rv := resolver.New(r)

	_, _, found := rv.Analyze("plain/dir/file.txt", "")
	if found {
		t.Fatalf("expected no match without any archive-capable handler")
	}
}

type mapLookup map[string]*entry.Info

func (m mapLookup) Get(key string) (*entry.Info, bool) {
	e, ok := m[key]
	return e, ok
}

func TestFindParentArchiveWalksUpward(t *testing.T) {
	now := time.Now()
	archiveEntry := entry.NewArchive("nested.zip", "outer/nested.zip", "nested.zip")
	archiveEntry.ModTime = &now

	lookup := mapLookup{
		"outer/nested.zip": archiveEntry,
	}

	r := registry.New()
	rv := resolver.New(r)

	got, found := rv.FindParentArchive(lookup, "outer/nested.zip/deep/file.txt")
	if !found || got != "outer/nested.zip" {
		t.Fatalf("expected outer/nested.zip, got %q (found=%v)", got, found)
	}
}

func TestFindParentArchiveNoneFound(t *testing.T) {
	r := registry.New()
	rv := resolver.New(r)
	lookup := mapLookup{}

	if got, found := rv.FindParentArchive(lookup, "plain/dir/file.txt"); found {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestFindParentArchiveRootIsParent(t *testing.T) {
	now := time.Now()
	root := entry.NewArchive("base.zip", "", "base.zip")
	root.ModTime = &now

	lookup := mapLookup{
		"": root,
	}

	r := registry.New()
	rv := resolver.New(r)

	got, found := rv.FindParentArchive(lookup, "one.txt")
	if !found || got != "" {
		t.Fatalf("expected root (\"\") to be the parent, got %q (found=%v)", got, found)
	}
}

func TestFindParentArchiveRootNotArchive(t *testing.T) {
	now := time.Now()
	root := entry.New("base", "", entry.Directory, "base")
	root.ModTime = &now

	lookup := mapLookup{
		"": root,
	}

	r := registry.New()
	rv := resolver.New(r)

	if got, found := rv.FindParentArchive(lookup, "one.txt"); found {
		t.Fatalf("expected no match when root is a plain directory, got %q", got)
	}
}
