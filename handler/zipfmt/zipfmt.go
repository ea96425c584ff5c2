package zipfmt

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/pathutil"
)

// Extensions lists every extension this handler recognizes: plain
// ZIP plus the ZIP-based container formats spec.md §6 names.
var Extensions = []string{".zip", ".cbz", ".epub"}

// Handler implements handler.Handler for ZIP and ZIP-family archives.
type Handler struct {
	structure handler.StructureCache
}

// New returns a ready-to-use ZIP handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) Name() string { return "zip" }

func (h *Handler) SupportedExtensions() []string {
	out := make([]string, len(Extensions))
	copy(out, Extensions)
	return out
}

func (h *Handler) CanHandle(path string) bool {
	if !hasExt(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var sig [4]byte
	if _, err := f.Read(sig[:]); err != nil {
		return false
	}
	return isZipSignature(sig[:])
}

func (h *Handler) CanHandleBytes(data []byte, hintPath string) bool {
	if len(data) < 4 {
		return false
	}
	if isZipSignature(data[:4]) {
		return true
	}
	return hasExt(hintPath)
}

func hasExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isZipSignature(b []byte) bool {
	// "PK\x03\x04" local file header, "PK\x05\x06" empty archive.
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && (b[2] == 0x03 || b[2] == 0x05)
}

func (h *Handler) ListEntries(path string) ([]*entry.Info, error) {
	all, err := h.ListAllEntries(path)
	if err != nil {
		return nil, err
	}
	return directChildren(all, ""), nil
}

func (h *Handler) ListAllEntries(path string) ([]*entry.Info, error) {
	if cached, ok := h.structure.Get(path); ok {
		return cached, nil
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	defer r.Close()

	out, err := buildEntries(&r.Reader)
	if err != nil {
		return nil, err
	}

	h.structure.Put(path, out)
	return out, nil
}

func (h *Handler) ListAllEntriesFromBytes(data []byte) ([]*entry.Info, error) {
	key := handler.DigestKey(data)
	if cached, ok := h.structure.Get(key); ok {
		return cached, nil
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, handler.Corrupt(err)
	}

	out, err := buildEntries(r)
	if err != nil {
		return nil, err
	}

	h.structure.Put(key, out)
	return out, nil
}

func (h *Handler) ReadArchiveFile(archivePath, internalPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	defer r.Close()
	return readMember(&r.Reader, internalPath)
}

func (h *Handler) ReadFileFromBytes(data []byte, internalPath string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, handler.Corrupt(err)
	}
	return readMember(r, internalPath)
}

func readMember(r *zip.Reader, internalPath string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == internalPath {
			rc, err := f.Open()
			if err != nil {
				return nil, handler.ExtractFailed(err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, handler.ExtractFailed(err)
			}
			return data, nil
		}
	}
	return nil, handler.NotMyFormat(internalPath)
}

// buildEntries walks a parsed zip.Reader's central directory once,
// synthesizing a Directory entry for every parent that the archive
// itself has no explicit record for (spec.md §4.2.2).
func buildEntries(r *zip.Reader) ([]*entry.Info, error) {
	seenDirs := make(map[string]bool)
	var out []*entry.Info

	ensureParents := func(rel string) {
		parent := pathutil.Parent(rel)
		for parent != "" && !seenDirs[parent] {
			seenDirs[parent] = true
			out = append(out, entry.NewDir(pathutil.Base(parent), parent))
			parent = pathutil.Parent(parent)
		}
	}

	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, "/")
		if name == "" {
			continue
		}
		display := repairName(name, !f.NonUTF8)
		rel := pathutil.Normalize(name)

		if strings.HasSuffix(f.Name, "/") {
			if !seenDirs[rel] {
				seenDirs[rel] = true
				out = append(out, entry.New(pathutil.Base(display), rel, entry.Directory, f.Name))
			}
			ensureParents(rel)
			continue
		}

		ensureParents(rel)
		info := entry.New(pathutil.Base(display), rel, entry.File, f.Name)
		info.Size = int64(f.UncompressedSize64)
		mt := f.Modified
		info.ModTime = &mt
		out = append(out, info)
	}

	return out, nil
}

func directChildren(all []*entry.Info, parent string) []*entry.Info {
	var out []*entry.Info
	for _, e := range all {
		p := pathutil.Parent(e.RelativePath)
		if p == parent {
			out = append(out, e)
		}
	}
	return out
}

