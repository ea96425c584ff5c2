package registry_test

import (
	"testing"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/registry"
)

type stubHandler struct {
	name string
	exts []string
	ok   func(path string) bool
}

func (s *stubHandler) Name() string                 { return s.name }
func (s *stubHandler) SupportedExtensions() []string { return s.exts }
func (s *stubHandler) CanHandle(path string) bool    { return s.ok(path) }
func (s *stubHandler) CanHandleBytes(_ []byte, hintPath string) bool {
	return s.ok(hintPath)
}
func (s *stubHandler) ListEntries(string) ([]*entry.Info, error)             { return nil, nil }
func (s *stubHandler) ListAllEntries(string) ([]*entry.Info, error)          { return nil, nil }
func (s *stubHandler) ListAllEntriesFromBytes([]byte) ([]*entry.Info, error) { return nil, nil }
func (s *stubHandler) ReadArchiveFile(string, string) ([]byte, error)        { return nil, nil }
func (s *stubHandler) ReadFileFromBytes([]byte, string) ([]byte, error)      { return nil, nil }

func TestGetHandlerPrefersLatestRegistration(t *testing.T) {
	r := registry.New()
	first := &stubHandler{name: "first", exts: []string{".zip"}, ok: func(p string) bool { return true }}
	second := &stubHandler{name: "second", exts: []string{".zip"}, ok: func(p string) bool { return true }}

	r.Register(first)
	r.Register(second)

	h, ok := r.GetHandler("archive.zip")
	if !ok || h.Name() != "second" {
		t.Fatalf("expected second handler to shadow first, got %v", h)
	}
}

func TestGetHandlerNoMatch(t *testing.T) {
	r := registry.New()
	r.Register(&stubHandler{name: "never", ok: func(string) bool { return false }})

	if _, ok := r.GetHandler("nope.bin"); ok {
		t.Fatalf("expected no handler to match")
	}
}

func TestIsArchiveExtensionUnionsAllHandlers(t *testing.T) {
	r := registry.New()
	r.Register(&stubHandler{exts: []string{".zip"}, ok: func(string) bool { return false }})
	r.Register(&stubHandler{exts: []string{".tar"}, ok: func(string) bool { return false }})

	if !r.IsArchiveExtension(".ZIP") || !r.IsArchiveExtension(".tar") {
		t.Fatalf("expected union of extensions to include both, case-insensitively")
	}
	if r.IsArchiveExtension(".exe") {
		t.Fatalf("did not expect .exe to be recognized")
	}
}

func TestRegisterExtensionSupplementsPredicate(t *testing.T) {
	r := registry.New()
	r.RegisterExtension(".CAB")

	if !r.IsArchiveExtension(".cab") {
		t.Fatalf("expected supplemental extension to be recognized case-insensitively")
	}
}

func TestRegisterInvalidatesMemo(t *testing.T) {
	r := registry.New()
	r.Register(&stubHandler{name: "a", ok: func(string) bool { return false }})
	if _, ok := r.GetHandler("x"); ok {
		t.Fatalf("expected no match before second registration")
	}

	r.Register(&stubHandler{name: "b", ok: func(string) bool { return true }})
	h, ok := r.GetHandler("x")
	if !ok || h.Name() != "b" {
		t.Fatalf("expected memo to be invalidated and new handler to match, got %v", h)
	}
}
