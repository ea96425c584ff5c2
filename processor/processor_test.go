package processor_test

import (
	"archive/zip"
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nabbar/arcvfs/cache"
	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler/tarfmt"
	"github.com/nabbar/arcvfs/handler/zipfmt"
	"github.com/nabbar/arcvfs/internal/tempstore"
	"github.com/nabbar/arcvfs/processor"
	"github.com/nabbar/arcvfs/registry"
	"github.com/nabbar/arcvfs/resolver"
)

func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func buildTar(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0644}); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	return buf.Bytes()
}

func newTestProcessor() (*processor.Processor, *registry.Registry) {
	reg := registry.New()
	reg.Register(zipfmt.New())
	reg.Register(tarfmt.New())
	rv := resolver.New(reg)
	return processor.New(reg, rv, tempstore.NewSet(), 5), reg
}

func TestMaterializeTopLevelArchive(t *testing.T) {
	dir := t.TempDir()
	data := buildZip(t, map[string][]byte{"inside.txt": []byte("hello")})
	if err := os.WriteFile(filepath.Join(dir, "archive.zip"), data, 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	p, _ := newTestProcessor()
	c := cache.New()

	E := entry.NewArchive("archive.zip", "archive.zip", "archive.zip")
	c.Insert(E)

	children := p.Materialize(E, dir, c, 1)
	if E.Status != entry.Ready {
		t.Fatalf("expected Ready, got %v (%s)", E.Status, E.BrokenReason)
	}
	if len(children) != 1 || children[0].RelativePath != "archive.zip/inside.txt" {
		t.Fatalf("unexpected children: %+v", children)
	}
	if E.Cache == nil || E.Cache.Kind != entry.CacheBytes {
		t.Fatalf("expected bytes cache shape, got %+v", E.Cache)
	}
}

func TestMaterializeNestedArchive(t *testing.T) {
	dir := t.TempDir()
	innerTar := buildTar(t, map[string][]byte{"deep.txt": []byte("nested content")})
	outerZip := buildZip(t, map[string][]byte{"inner.tar": innerTar})
	if err := os.WriteFile(filepath.Join(dir, "outer.zip"), outerZip, 0o644); err != nil {
		t.Fatalf("write outer zip: %v", err)
	}

	p, _ := newTestProcessor()
	c := cache.New()

	outer := entry.NewArchive("outer.zip", "outer.zip", "outer.zip")
	c.Insert(outer)

	children := p.Materialize(outer, dir, c, 1)
	if outer.Status != entry.Ready {
		t.Fatalf("expected outer Ready, got %v (%s)", outer.Status, outer.BrokenReason)
	}

	var innerEntry *entry.Info
	for _, child := range children {
		c.Insert(child)
		if child.RelativePath == "outer.zip/inner.tar" {
			innerEntry = child
		}
	}
	if innerEntry == nil {
		t.Fatalf("expected inner.tar among children: %+v", children)
	}
	innerEntry.Type = entry.Archive
	c.Insert(innerEntry)

	deepChildren := p.Materialize(innerEntry, dir, c, 2)
	if innerEntry.Status != entry.Ready {
		t.Fatalf("expected inner Ready, got %v (%s)", innerEntry.Status, innerEntry.BrokenReason)
	}
	if len(deepChildren) != 1 || deepChildren[0].RelativePath != "outer.zip/inner.tar/deep.txt" {
		t.Fatalf("unexpected deep children: %+v", deepChildren)
	}
}

func TestMaterializeDepthExceededMarksBroken(t *testing.T) {
	dir := t.TempDir()
	data := buildZip(t, map[string][]byte{"inside.txt": []byte("hello")})
	if err := os.WriteFile(filepath.Join(dir, "archive.zip"), data, 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	p, _ := newTestProcessor()
	c := cache.New()

	E := entry.NewArchive("archive.zip", "archive.zip", "archive.zip")
	c.Insert(E)

	children := p.Materialize(E, dir, c, 99)
	if E.Status != entry.Broken || children != nil {
		t.Fatalf("expected Broken with no children past depth limit, got %v %+v", E.Status, children)
	}
}
