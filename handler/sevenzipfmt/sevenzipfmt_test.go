package sevenzipfmt_test

import (
	"testing"

	"github.com/nabbar/arcvfs/handler/sevenzipfmt"
)

func TestCanHandleBytesBySignature(t *testing.T) {
	h := sevenzipfmt.New()
	sig := []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C, 0x00, 0x04}
	if !h.CanHandleBytes(sig, "whatever.bin") {
		t.Fatalf("expected the 7z signature to be recognized regardless of hint path")
	}
}

func TestCanHandleBytesRecognizesLongTailByExtension(t *testing.T) {
	h := sevenzipfmt.New()
	for _, name := range []string{"a.cab", "a.arj", "a.iso", "a.rpm"} {
		if !h.CanHandleBytes([]byte("not a real payload"), name) {
			t.Fatalf("expected %q to be recognized by extension", name)
		}
	}
}

func TestReadArchiveFileOnLongTailReturnsUnsupported(t *testing.T) {
	h := sevenzipfmt.New()
	if _, err := h.ReadArchiveFile("disk.iso", "whatever"); err == nil {
		t.Fatalf("expected an unsupported-format error for a long-tail extension")
	}
}

func TestListAllEntriesFromBytesRejectsGarbage(t *testing.T) {
	h := sevenzipfmt.New()
	if _, err := h.ListAllEntriesFromBytes([]byte("definitely not a 7z archive")); err == nil {
		t.Fatalf("expected an error opening non-7z data")
	}
}

func TestSupportedExtensionsIncludesLongTail(t *testing.T) {
	h := sevenzipfmt.New()
	ext := h.SupportedExtensions()
	want := map[string]bool{".7z": false, ".cab": false, ".arj": false, ".iso": false, ".rpm": false}
	for _, e := range ext {
		want[e] = true
	}
	for e, ok := range want {
		if !ok {
			t.Fatalf("expected %q among supported extensions, got %v", e, ext)
		}
	}
}
