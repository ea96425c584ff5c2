package sevenzipfmt

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/pathutil"
)

// Extensions lists .7z, the one format this handler actually decodes;
// the long-tail container extensions it recognizes but cannot read are
// in LongTailExtensions (see doc.go).
var Extensions = []string{".7z"}

// LongTailExtensions are recognized by CanHandle/CanHandleBytes so the
// registry routes them here rather than reporting them unsupported,
// but every path-based read returns ErrorLongTailUnsupported; the
// bytes-based reads fail with ErrorOpen.
var LongTailExtensions = []string{".cab", ".arj", ".iso", ".rpm"}

var signature = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}

// Handler implements handler.Handler for 7z and the declared long-tail formats.
type Handler struct {
	structure handler.StructureCache
}

// New returns a ready-to-use 7z handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) Name() string { return "7z" }

func (h *Handler) SupportedExtensions() []string {
	out := make([]string, 0, len(Extensions)+len(LongTailExtensions))
	out = append(out, Extensions...)
	out = append(out, LongTailExtensions...)
	return out
}

func hasExt(path string, list []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range list {
		if ext == e {
			return true
		}
	}
	return false
}

func isLongTail(path string) bool {
	return hasExt(path, LongTailExtensions)
}

func (h *Handler) CanHandle(path string) bool {
	if hasExt(path, LongTailExtensions) {
		return true
	}
	if !hasExt(path, Extensions) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var sig [6]byte
	if _, err := f.Read(sig[:]); err != nil {
		return false
	}
	return bytes.Equal(sig[:], signature)
}

func (h *Handler) CanHandleBytes(data []byte, hintPath string) bool {
	if isLongTail(hintPath) {
		return true
	}
	if bytes.HasPrefix(data, signature) {
		return true
	}
	return hasExt(hintPath, Extensions)
}

func (h *Handler) ListEntries(path string) ([]*entry.Info, error) {
	all, err := h.ListAllEntries(path)
	if err != nil {
		return nil, err
	}
	return directChildren(all, ""), nil
}

func (h *Handler) ListAllEntries(path string) ([]*entry.Info, error) {
	if isLongTail(path) {
		return nil, ErrorLongTailUnsupported.Errorf(path)
	}

	if cached, ok := h.structure.Get(path); ok {
		return cached, nil
	}

	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	defer r.Close()

	out, err := buildEntries(r.File)
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

	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}

	out, err := buildEntries(r.File)
	if err != nil {
		return nil, err
	}

	h.structure.Put(key, out)
	return out, nil
}

func (h *Handler) ReadArchiveFile(archivePath, internalPath string) ([]byte, error) {
	if isLongTail(archivePath) {
		return nil, ErrorLongTailUnsupported.Errorf(archivePath)
	}

	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	defer r.Close()
	return readMember(r.File, internalPath)
}

func (h *Handler) ReadFileFromBytes(data []byte, internalPath string) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	return readMember(r.File, internalPath)
}

func readMember(files []*sevenzip.File, internalPath string) ([]byte, error) {
	for _, f := range files {
		if f.Name != internalPath {
			continue
		}
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
	return nil, handler.NotMyFormat(internalPath)
}

// buildEntries mirrors zipfmt's walk: 7z's flat file list, like ZIP's
// central directory, has no guaranteed explicit record for every
// ancestor directory.
func buildEntries(files []*sevenzip.File) ([]*entry.Info, error) {
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

	for _, f := range files {
		rel := pathutil.Normalize(f.Name)
		if rel == "" {
			continue
		}

		if f.FileInfo().IsDir() {
			if !seenDirs[rel] {
				seenDirs[rel] = true
				out = append(out, entry.NewDir(pathutil.Base(rel), rel))
			}
			ensureParents(rel)
			continue
		}

		ensureParents(rel)
		fi := f.FileInfo()
		info := entry.New(pathutil.Base(rel), rel, entry.File, f.Name)
		info.Size = fi.Size()
		mt := fi.ModTime()
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
