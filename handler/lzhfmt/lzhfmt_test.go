package lzhfmt_test

import (
	"encoding/binary"
	"testing"

	"github.com/nabbar/arcvfs/handler/lzhfmt"
)

// buildLevel0 encodes a single-member level-0 LZH archive storing
// name/content with the "-lh0-" (store) method, by hand, matching the
// classic LHA header layout: size byte, checksum, method ID, packed
// size, original size, timestamp, attribute, level, name length,
// name, CRC.
func buildLevel0(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	body := make([]byte, 0, 64)
	body = append(body, 0) // checksum placeholder, fixed up below
	body = append(body, []byte("-lh0-")...)

	sz := make([]byte, 4)
	binary.LittleEndian.PutUint32(sz, uint32(len(content)))
	body = append(body, sz...) // packed size == original size for store
	body = append(body, sz...) // original size

	body = append(body, 0, 0, 0, 0) // timestamp, unused by the test
	body = append(body, 0x20)       // attribute
	body = append(body, 0)          // level 0
	body = append(body, byte(len(name)))
	body = append(body, []byte(name)...)
	body = append(body, 0, 0) // CRC, unchecked by this package

	headerSize := len(body) // header_size excludes only the size byte itself
	out := append([]byte{byte(headerSize)}, body...)
	out = append(out, content...)
	out = append(out, 0) // archive end marker: a lone zero size byte
	return out
}

func TestListAllEntriesFromBytesSingleStoredMember(t *testing.T) {
	h := lzhfmt.New()
	data := buildLevel0(t, "greeting.txt", []byte("hello lzh"))

	all, err := h.ListAllEntriesFromBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].RelativePath != "greeting.txt" {
		t.Fatalf("unexpected entries: %+v", all)
	}
	if all[0].Size != int64(len("hello lzh")) {
		t.Fatalf("unexpected size: %d", all[0].Size)
	}
}

func TestReadFileFromBytesStoredMethod(t *testing.T) {
	h := lzhfmt.New()
	data := buildLevel0(t, "greeting.txt", []byte("hello lzh"))

	out, err := h.ReadFileFromBytes(data, "greeting.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "hello lzh" {
		t.Fatalf("unexpected content: %q", out)
	}
}

func TestCanHandleBytesRejectsGarbage(t *testing.T) {
	h := lzhfmt.New()
	if h.CanHandleBytes([]byte("definitely not lzh data at all"), "whatever.bin") {
		t.Fatalf("expected non-LZH data with no extension hint to be rejected")
	}
}
