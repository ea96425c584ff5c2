package rarfmt

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	rardecode "github.com/nwaples/rardecode/v2"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/pathutil"
)

// Extensions lists every extension this handler recognizes.
var Extensions = []string{".rar"}

var signature = []byte("Rar!\x1a\x07")

// Handler implements handler.Handler for RAR archives.
type Handler struct {
	structure handler.StructureCache
}

// New returns a ready-to-use RAR handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) Name() string { return "rar" }

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

	var sig [7]byte
	if _, err := f.Read(sig[:]); err != nil {
		return false
	}
	return bytes.HasPrefix(sig[:], signature)
}

func (h *Handler) CanHandleBytes(data []byte, hintPath string) bool {
	if bytes.HasPrefix(data, signature) {
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

	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	defer rc.Close()

	out, err := buildEntries(rc)
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

	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}

	out, err := buildEntries(r)
	if err != nil {
		return nil, err
	}

	h.structure.Put(key, out)
	return out, nil
}

func (h *Handler) ReadArchiveFile(archivePath, internalPath string) ([]byte, error) {
	rc, err := rardecode.OpenReader(archivePath)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	defer rc.Close()
	return readMember(rc, internalPath)
}

func (h *Handler) ReadFileFromBytes(data []byte, internalPath string) ([]byte, error) {
	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}
	return readMember(r, internalPath)
}

// rarReader is the sequential next-header/read-current-file contract
// both rardecode.OpenReader and rardecode.NewReader satisfy, so the
// path-based and bytes-based entry points share one walk.
type rarReader interface {
	Next() (*rardecode.FileHeader, error)
	Read(p []byte) (int, error)
}

func readMember(r rarReader, internalPath string) ([]byte, error) {
	for {
		fh, err := r.Next()
		if err == io.EOF {
			return nil, handler.NotMyFormat(internalPath)
		}
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}
		if fh.IsDir || fh.Name != internalPath {
			continue
		}
		if fh.IsEncrypted {
			return nil, ErrorEncrypted.Error()
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, handler.ExtractFailed(err)
		}
		return data, nil
	}
}

// buildEntries walks every header in a sequential RAR pass, synthesizing
// parent Directory entries for any path RAR itself has no explicit
// directory record for (RAR normally stores one, unlike ZIP, but
// single-file archives and some legacy tools omit it).
func buildEntries(r rarReader) ([]*entry.Info, error) {
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

	for {
		fh, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}

		rel := pathutil.Normalize(fh.Name)
		if rel == "" {
			continue
		}

		if fh.IsDir {
			if !seenDirs[rel] {
				seenDirs[rel] = true
				out = append(out, entry.NewDir(pathutil.Base(rel), rel))
			}
			ensureParents(rel)
			continue
		}

		ensureParents(rel)
		info := entry.New(pathutil.Base(rel), rel, entry.File, fh.Name)
		info.Size = fh.UnPackedSize
		mt := fh.ModificationTime
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
