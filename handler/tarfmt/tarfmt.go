package tarfmt

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/pathutil"
)

// Extensions lists every extension this handler recognizes: plain tar,
// the combined tar+compression shorthands, and the bare single-file
// compressed forms.
var Extensions = []string{
	".tar", ".tgz", ".tbz", ".tbz2", ".txz", ".tlz4",
	".gz", ".bz2", ".xz", ".lz4",
}

// Handler implements handler.Handler for tar and the compressed tar family.
type Handler struct {
	structure handler.StructureCache
}

// New returns a ready-to-use tar-family handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) Name() string { return "tar" }

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

	var sample [262]byte
	n, _ := io.ReadFull(f, sample[:])
	return canHandleSample(sample[:n], path)
}

func (h *Handler) CanHandleBytes(data []byte, hintPath string) bool {
	n := len(data)
	if n > 262 {
		n = 262
	}
	return canHandleSample(data[:n], hintPath)
}

func canHandleSample(sample []byte, path string) bool {
	l := detectLayer(sample, path)
	if l != layerNone {
		return true
	}
	// Bare tar: look for the ustar magic at offset 257, falling back to
	// the extension hint when the sample is too short to carry it.
	if len(sample) >= 262 && bytes.Equal(sample[257:262], []byte("ustar")) {
		return true
	}
	return hasExt(path)
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

	out, err := buildEntries(f, path)
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

	out, err := buildEntries(bytes.NewReader(data), "")
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
	return readMember(f, archivePath, internalPath)
}

func (h *Handler) ReadFileFromBytes(data []byte, internalPath string) ([]byte, error) {
	return readMember(bytes.NewReader(data), "", internalPath)
}

func readMember(r io.Reader, path, internalPath string) ([]byte, error) {
	l := pickLayer(r, path)
	dr, err := l.decompress(r)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}

	if !isTarContainer(path) && path != "" {
		data, err := io.ReadAll(dr)
		if err != nil {
			return nil, handler.ExtractFailed(err)
		}
		if baseNameWithoutCompression(pathutil.Base(path)) != internalPath {
			return nil, handler.NotMyFormat(internalPath)
		}
		return data, nil
	}

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, handler.NotMyFormat(internalPath)
		}
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}
		if pathutil.Normalize(hdr.Name) != internalPath {
			continue
		}
		if hdr.Typeflag != tar.TypeReg {
			return nil, handler.NotMyFormat(internalPath)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, handler.ExtractFailed(err)
		}
		return data, nil
	}
}

// pickLayer peeks the first bytes of r (which must support re-reading
// via a bytes.Reader or an *os.File seek-back) to choose a decompressor,
// preferring the byte signature over the path's extension.
func pickLayer(r io.Reader, path string) layer {
	type seeker interface {
		Seek(offset int64, whence int) (int64, error)
	}

	s, ok := r.(seeker)
	if !ok {
		return layerFromExt(path)
	}

	var sample [6]byte
	n, _ := io.ReadFull(r, sample[:])
	_, _ = s.Seek(0, io.SeekStart)
	if l := detectLayer(sample[:n], path); l != layerNone {
		return l
	}
	return layerFromExt(path)
}

// buildEntries walks a full tar stream, synthesizing directory entries
// for implicit parents the same way zipfmt and rarfmt do, or returns a
// single synthetic member when the source is a bare compressed file
// rather than a tar container.
func buildEntries(r io.Reader, path string) ([]*entry.Info, error) {
	l := pickLayer(r, path)

	dr, err := l.decompress(r)
	if err != nil {
		return nil, ErrorOpen.Error(err)
	}

	if !isTarContainer(path) && path != "" {
		data, err := io.ReadAll(dr)
		if err != nil {
			return nil, handler.ExtractFailed(err)
		}
		name := baseNameWithoutCompression(pathutil.Base(path))
		info := entry.New(name, pathutil.Normalize(name), entry.File, name)
		info.Size = int64(len(data))
		return []*entry.Info{info}, nil
	}

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

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}

		rel := pathutil.Normalize(hdr.Name)
		if rel == "" {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if !seenDirs[rel] {
				seenDirs[rel] = true
				out = append(out, entry.NewDir(pathutil.Base(rel), rel))
			}
			ensureParents(rel)
		case tar.TypeReg, tar.TypeRegA:
			ensureParents(rel)
			info := entry.New(pathutil.Base(rel), rel, entry.File, hdr.Name)
			info.Size = hdr.Size
			mt := hdr.ModTime
			info.ModTime = &mt
			out = append(out, info)
		case tar.TypeSymlink:
			ensureParents(rel)
			info := entry.New(pathutil.Base(rel), rel, entry.Symlink, hdr.Name)
			out = append(out, info)
		default:
			// Other tar entry kinds (devices, fifos) aren't addressable
			// content; skip them rather than growing the entry list.
		}
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
