package lzhfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/pathutil"
)

// Extensions lists every extension this handler recognizes.
var Extensions = []string{".lzh", ".lha"}

// Handler implements handler.Handler for LZH/LHA archives.
type Handler struct {
	structure handler.StructureCache
}

// New returns a ready-to-use LZH handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) Name() string { return "lzh" }

func (h *Handler) SupportedExtensions() []string {
	out := make([]string, len(Extensions))
	copy(out, Extensions)
	return out
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

func (h *Handler) CanHandle(path string) bool {
	if !hasExt(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	hdr, err := readHeader(bufio.NewReader(f))
	return err == nil && hdr != nil
}

func (h *Handler) CanHandleBytes(data []byte, hintPath string) bool {
	hdr, err := readHeader(bufio.NewReader(bytes.NewReader(data)))
	if err == nil && hdr != nil && strings.HasPrefix(hdr.method, "-l") && strings.HasSuffix(hdr.method, "-") {
		return true
	}
	return hasExt(hintPath)
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

	f, err := os.Open(path)
	if err != nil {
		return nil, handler.NotExist(path, err)
	}
	defer f.Close()

	out, err := buildEntries(bufio.NewReader(f))
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

	out, err := buildEntries(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}

	h.structure.Put(key, out)
	return out, nil
}

func (h *Handler) ReadArchiveFile(archivePath, internalPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, handler.NotExist(archivePath, err)
	}
	defer f.Close()
	return readMember(bufio.NewReader(f), internalPath)
}

func (h *Handler) ReadFileFromBytes(data []byte, internalPath string) ([]byte, error) {
	return readMember(bufio.NewReader(bytes.NewReader(data)), internalPath)
}

func readMember(r *bufio.Reader, internalPath string) ([]byte, error) {
	for {
		hdr, err := readHeader(r)
		if err != nil {
			return nil, toError(err)
		}
		if hdr == nil {
			return nil, handler.NotMyFormat(internalPath)
		}

		name := strings.TrimSuffix(hdr.name, "/")
		if name != internalPath {
			if _, err := io.CopyN(io.Discard, r, int64(hdr.packedSize)); err != nil {
				return nil, handler.ExtractFailed(err)
			}
			continue
		}

		if hdr.method != storeMethod {
			return nil, ErrorUnsupportedMethod.Error(fmt.Errorf("method %s", hdr.method))
		}
		data := make([]byte, hdr.originalSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, handler.ExtractFailed(err)
		}
		return data, nil
	}
}

// buildEntries walks every header in the archive, synthesizing parent
// directories (LZH has no explicit directory record beyond the
// trailing-slash convention some encoders use for empty directories).
func buildEntries(r *bufio.Reader) ([]*entry.Info, error) {
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
		hdr, err := readHeader(r)
		if err != nil {
			return nil, toError(err)
		}
		if hdr == nil {
			break
		}

		isDir := strings.HasSuffix(hdr.name, "/")
		name := strings.TrimSuffix(hdr.name, "/")
		rel := pathutil.Normalize(name)

		if isDir {
			if rel != "" && !seenDirs[rel] {
				seenDirs[rel] = true
				out = append(out, entry.NewDir(pathutil.Base(rel), rel))
			}
			ensureParents(rel)
		} else if rel != "" {
			ensureParents(rel)
			info := entry.New(pathutil.Base(rel), rel, entry.File, hdr.name)
			info.Size = int64(hdr.originalSize)
			out = append(out, info)
		}

		if _, err := io.CopyN(io.Discard, r, int64(hdr.packedSize)); err != nil {
			return nil, handler.ExtractFailed(err)
		}
	}

	return out, nil
}

func toError(err error) error {
	var lvl *levelError
	if errors.As(err, &lvl) {
		return ErrorUnsupportedLevel.Error(err)
	}
	return ErrorOpen.Error(err)
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
