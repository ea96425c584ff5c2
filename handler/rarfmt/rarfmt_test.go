package rarfmt_test

import (
	"testing"

	"github.com/nabbar/arcvfs/handler/rarfmt"
)

func TestCanHandleBytesBySignature(t *testing.T) {
	h := rarfmt.New()
	sig := []byte("Rar!\x1a\x07\x00restofarchive")
	if !h.CanHandleBytes(sig, "whatever.bin") {
		t.Fatalf("expected the RAR signature to be recognized regardless of hint path")
	}
}

func TestCanHandleBytesByExtensionHint(t *testing.T) {
	h := rarfmt.New()
	if h.CanHandleBytes([]byte("not a rar"), "archive.rar") != true {
		t.Fatalf("expected the .rar extension hint to accept non-signature data")
	}
	if h.CanHandleBytes([]byte("not a rar"), "archive.txt") {
		t.Fatalf("expected a non-.rar hint with no signature to be rejected")
	}
}

func TestListAllEntriesFromBytesRejectsGarbage(t *testing.T) {
	h := rarfmt.New()
	if _, err := h.ListAllEntriesFromBytes([]byte("definitely not a rar archive")); err == nil {
		t.Fatalf("expected an error opening non-RAR data")
	}
}

func TestSupportedExtensions(t *testing.T) {
	h := rarfmt.New()
	ext := h.SupportedExtensions()
	if len(ext) != 1 || ext[0] != ".rar" {
		t.Fatalf("unexpected extensions: %v", ext)
	}
}
