package cpiofmt

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/handler/tarfmt"
	"github.com/nabbar/arcvfs/pathutil"
)

// CpioExtensions and DebExtensions are kept apart so SupportedExtensions
// can report both while CanHandle/CanHandleBytes still distinguish which
// inner format a given path or sample is.
var CpioExtensions = []string{".cpio"}
var DebExtensions = []string{".deb"}

// Handler implements handler.Handler for newc-format cpio archives and
// Debian ar-container packages, delegating the latter's data.tar.*
// payload to an internal tar handler.
type Handler struct {
	structure handler.StructureCache
	tar       *tarfmt.Handler
}

// New returns a ready-to-use cpio/deb handler.
func New() *Handler {
	return &Handler{tar: tarfmt.New()}
}

func (h *Handler) Name() string { return "cpio" }

func (h *Handler) SupportedExtensions() []string {
	out := make([]string, 0, len(CpioExtensions)+len(DebExtensions))
	out = append(out, CpioExtensions...)
	out = append(out, DebExtensions...)
	return out
}

func isDeb(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".deb")
}

func isCpio(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cpio")
}

func (h *Handler) CanHandle(path string) bool {
	if isDeb(path) || isCpio(path) {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var sample [8]byte
	n, _ := f.Read(sample[:])
	return canHandleSample(sample[:n])
}

func (h *Handler) CanHandleBytes(data []byte, hintPath string) bool {
	if isDeb(hintPath) || isCpio(hintPath) {
		return true
	}
	n := len(data)
	if n > 8 {
		n = 8
	}
	return canHandleSample(data[:n])
}

func canHandleSample(sample []byte) bool {
	if bytes.HasPrefix(sample, []byte(newcMagic)) {
		return true
	}
	if bytes.HasPrefix(sample, []byte(arMagic)) {
		return true
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

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, handler.NotExist(path, err)
	}

	out, err := h.listBytes(data, path)
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

	out, err := h.listBytes(data, "")
	if err != nil {
		return nil, err
	}

	h.structure.Put(key, out)
	return out, nil
}

func (h *Handler) listBytes(data []byte, path string) ([]*entry.Info, error) {
	if isDeb(path) || (path == "" && bytes.HasPrefix(data, []byte(arMagic))) {
		tarData, err := extractDataTar(bufio.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}
		return h.tar.ListAllEntriesFromBytes(tarData)
	}
	return listCpio(bufio.NewReader(bytes.NewReader(data)))
}

func (h *Handler) ReadArchiveFile(archivePath, internalPath string) ([]byte, error) {
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, handler.NotExist(archivePath, err)
	}
	return h.readBytes(data, archivePath, internalPath)
}

func (h *Handler) ReadFileFromBytes(data []byte, internalPath string) ([]byte, error) {
	return h.readBytes(data, "", internalPath)
}

func (h *Handler) readBytes(data []byte, path, internalPath string) ([]byte, error) {
	if isDeb(path) || (path == "" && bytes.HasPrefix(data, []byte(arMagic))) {
		tarData, err := extractDataTar(bufio.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}
		return h.tar.ReadFileFromBytes(tarData, internalPath)
	}
	return readCpioMember(bufio.NewReader(bytes.NewReader(data)), internalPath)
}

func directChildren(all []*entry.Info, parent string) []*entry.Info {
	var out []*entry.Info
	for _, e := range all {
		if pathutil.Parent(e.RelativePath) == parent {
			out = append(out, e)
		}
	}
	return out
}
