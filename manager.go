/*
 * MIT License
 *
 * Copyright (c) 2024 The arcvfs Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package arcvfs is the root of the library: Manager ties the
// registry, resolver, entry cache, and archive processor together
// into the single-producer API spec.md §6 describes — SetBasePath,
// GetEntryInfo, ListEntries, ReadFile, GetEntryCache.
package arcvfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nabbar/arcvfs/cache"
	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/handler/cpiofmt"
	"github.com/nabbar/arcvfs/handler/fsys"
	"github.com/nabbar/arcvfs/handler/lzhfmt"
	"github.com/nabbar/arcvfs/handler/rarfmt"
	"github.com/nabbar/arcvfs/handler/sevenzipfmt"
	"github.com/nabbar/arcvfs/handler/tarfmt"
	"github.com/nabbar/arcvfs/handler/zipfmt"
	"github.com/nabbar/arcvfs/internal/tempstore"
	"github.com/nabbar/arcvfs/internal/vlog"
	"github.com/nabbar/arcvfs/pathutil"
	"github.com/nabbar/arcvfs/processor"
	"github.com/nabbar/arcvfs/registry"
	"github.com/nabbar/arcvfs/resolver"
)

// Manager is a single, owned value: construct one with New, drive it
// with SetBasePath, then query it with GetEntryInfo/ListEntries/
// ReadFile/GetEntryCache. Not safe for concurrent use by more than one
// goroutine at a time (spec.md §5: single-producer cooperative).
type Manager struct {
	reg    *registry.Registry
	rv     *resolver.Resolver
	proc   *processor.Processor
	temps  *tempstore.Set
	log    vlog.Logger
	cache  *cache.Cache
	fsysH  *fsys.Handler
	base   string
	maxDep int
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithLogger overrides the default silent logger.
func WithLogger(l vlog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithMaxDepth overrides the nested-archive recursion bound.
func WithMaxDepth(n int) Option {
	return func(m *Manager) { m.maxDep = n }
}

// WithFsysTunables overrides the filesystem handler's wide-directory
// worker-pool threshold and size.
func WithFsysTunables(threshold, workers int) Option {
	return func(m *Manager) {
		m.fsysH.Threshold = threshold
		m.fsysH.Workers = workers
	}
}

// New returns a Manager with every bundled format handler registered:
// plain directories, ZIP family, RAR, the tar family, 7z, cpio/deb,
// and LZH/LHA.
func New(opts ...Option) *Manager {
	reg := registry.New()
	fsysH := fsys.New()
	reg.Register(fsysH)
	reg.Register(zipfmt.New())
	reg.Register(rarfmt.New())
	reg.Register(tarfmt.New())
	reg.Register(sevenzipfmt.New())
	reg.Register(cpiofmt.New())
	reg.Register(lzhfmt.New())

	rv := resolver.New(reg)
	temps := tempstore.NewSet()

	m := &Manager{
		reg:    reg,
		rv:     rv,
		temps:  temps,
		log:    vlog.Discard,
		cache:  cache.New(),
		fsysH:  fsysH,
		maxDep: processor.DefaultMaxDepth,
	}

	for _, o := range opts {
		o(m)
	}

	m.proc = processor.New(reg, rv, temps, m.maxDep)
	return m
}

// SetBasePath clears any previous state and eagerly builds the entry
// cache for p: synthesizes the root entry, enumerates the top level,
// then BFS-processes every ARCHIVE entry discovered, recursively.
// Failures scoped to a single nested archive leave it Broken but still
// return success overall; a failure resolving the root itself fails
// the call (spec.md §4.7, §7 propagation policy).
func (m *Manager) SetBasePath(p string) error {
	m.log.WithField("path", p).Info("scanning base path")
	m.temps.Clear()
	m.cache.Clear()

	// A caller may hand in a compound relative OS path that crosses
	// into an archive (e.g. "data/bundle.zip/images"): bundle.zip is
	// the real root, the rest is just an ordinary relative path beneath
	// it once SetBasePath succeeds. Resolve that here rather than
	// failing with ErrorRootUnavailable on a path os.Stat can't see
	// whole. Only attempted for relative input: Analyze's component
	// splitting assumes a path with no leading slash to preserve, which
	// an absolute path is not.
	if !filepath.IsAbs(p) {
		if _, statErr := os.Stat(p); statErr != nil {
			if archivePath, _, found := m.rv.Analyze(p, ""); found {
				p = archivePath
			}
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return ErrorRootUnavailable.Error(err)
	}
	abs = filepath.ToSlash(abs)

	st, err := os.Stat(p)
	if err != nil {
		return ErrorRootUnavailable.Error(err)
	}

	rootName := filepath.Base(abs)
	rootType := entry.File
	switch {
	case st.IsDir():
		rootType = entry.Directory
	case m.reg.IsArchiveExtension(strings.ToLower(filepath.Ext(p))):
		rootType = entry.Archive
	}

	var root *entry.Info
	if rootType == entry.Archive {
		root = entry.NewArchive(rootName, "", rootName)
	} else {
		root = entry.New(rootName, "", rootType, rootName)
	}
	m.cache.Insert(root)
	m.base = p

	if rootType != entry.Directory {
		// A file base (plain file or an archive) has no ListAllEntries
		// walk of its own beneath it beyond what processing the root
		// archive itself produces.
		if rootType == entry.Archive {
			m.enqueueAndProcess(root)
		}
		return nil
	}

	h, ok := m.reg.GetHandler(p)
	if !ok {
		return ErrorRootUnavailable.Errorf(p)
	}

	top, err := h.ListAllEntries(p)
	if err != nil {
		return ErrorRootUnavailable.Error(err)
	}

	var queue []archiveWork
	for _, e := range top {
		m.finalize(e)
		m.cache.Insert(e)
		if e.Type == entry.Archive {
			queue = append(queue, archiveWork{e, 1})
		}
	}
	m.drainArchiveQueue(queue)

	return nil
}

// archiveWork pairs a discovered ARCHIVE entry with its nesting depth:
// 1 for a root archive or an archive directly under a directory base
// path (members of a root archive start at 2), incrementing by one
// per further level of nesting. Tracked explicitly alongside the BFS
// queue rather than derived from RelativePath, since plain
// subdirectories inside an archive add path segments without adding
// nesting.
type archiveWork struct {
	entry *entry.Info
	depth int
}

// enqueueAndProcess materializes a single root-is-an-archive entry
// and registers its descendants, BFS-ing any further nested archives.
func (m *Manager) enqueueAndProcess(root *entry.Info) {
	m.drainArchiveQueue([]archiveWork{{root, 1}})
}

// drainArchiveQueue processes every queued ARCHIVE entry in BFS order,
// enqueueing any further ARCHIVE entries the processor discovers among
// its children, until the queue is empty.
func (m *Manager) drainArchiveQueue(queue []archiveWork) {
	seen := map[string]bool{}

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		if seen[w.entry.RelativePath] {
			continue
		}
		seen[w.entry.RelativePath] = true

		m.log.WithField("path", w.entry.RelativePath).Debug("materializing archive")
		children := m.proc.Materialize(w.entry, m.base, m.cache, w.depth)
		if w.entry.Status == entry.Broken {
			m.log.WithField("path", w.entry.RelativePath).Warn(w.entry.BrokenReason)
		}
		m.cache.Insert(w.entry)
		for _, c := range children {
			m.finalize(c)
			m.cache.Insert(c)
			if c.Type == entry.Archive {
				queue = append(queue, archiveWork{c, w.depth + 1})
			}
		}
	}
}

// finalize sets Type = Archive on a FILE entry whose extension matches
// a registered handler's supported set; never run by a handler itself.
func (m *Manager) finalize(e *entry.Info) {
	if e.Type != entry.File {
		return
	}
	ext := strings.ToLower(filepath.Ext(e.Name))
	if ext != "" && m.reg.IsArchiveExtension(ext) {
		e.Type = entry.Archive
		e.Status = entry.Scanning
	}
}

// GetEntryInfo returns the cached entry at relPath, or ErrorNotFound.
func (m *Manager) GetEntryInfo(relPath string) (*entry.Info, error) {
	e, ok := m.cache.Get(pathutil.Normalize(relPath))
	if !ok {
		return nil, ErrorNotFound.Errorf(relPath)
	}
	return e, nil
}

// ListEntries returns the direct children of relPath. A trailing
// slash on a path that resolves to a FILE entry is rejected as
// InvalidPath rather than silently normalized.
func (m *Manager) ListEntries(relPath string) ([]*entry.Info, error) {
	if err := rejectFileWithTrailingSlash(m.cache, relPath); err != nil {
		return nil, err
	}

	key := pathutil.Normalize(relPath)
	if key != "" {
		if _, ok := m.cache.Get(key); !ok {
			return nil, ErrorNotFound.Errorf(relPath)
		}
	}
	return m.cache.ListChildren(key), nil
}

// ReadFile returns the full octet contents of the FILE (or ARCHIVE
// base-as-file) entry at relPath.
func (m *Manager) ReadFile(relPath string) ([]byte, error) {
	if err := rejectFileWithTrailingSlash(m.cache, relPath); err != nil {
		return nil, err
	}

	key := pathutil.Normalize(relPath)
	e, ok := m.cache.Get(key)
	if !ok {
		return nil, ErrorNotFound.Errorf(relPath)
	}

	if key == "" && e.Type != entry.Directory {
		return m.readRootAsFile(e)
	}

	parentKey, found := m.rv.FindParentArchive(m.cache, key)
	if !found {
		full := filepath.Join(m.base, filepath.FromSlash(key))
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, handler.NotExist(full, err)
		}
		return data, nil
	}

	P, ok := m.cache.Get(parentKey)
	if !ok || P.Cache == nil {
		return nil, ErrorNotFound.Errorf(relPath)
	}

	switch P.Cache.Kind {
	case entry.CacheBytes:
		ph, ok := m.reg.GetHandlerForBytes(P.Cache.Bytes, P.Name)
		if !ok {
			return nil, ErrorNotFound.Errorf(relPath)
		}
		return ph.ReadFileFromBytes(P.Cache.Bytes, e.NameInArchive)
	case entry.CacheTempFile:
		ph, ok := m.reg.GetHandler(P.Cache.TempFile)
		if !ok {
			return nil, ErrorNotFound.Errorf(relPath)
		}
		return ph.ReadArchiveFile(P.Cache.TempFile, e.NameInArchive)
	default:
		return nil, ErrorNotFound.Errorf(relPath)
	}
}

// readRootAsFile covers the round-trip property spec.md §8 names: when
// the base itself is a file (plain file or archive), read_file("")
// returns its full octets.
func (m *Manager) readRootAsFile(root *entry.Info) ([]byte, error) {
	if root.Type == entry.Archive && root.Cache != nil {
		switch root.Cache.Kind {
		case entry.CacheBytes:
			return root.Cache.Bytes, nil
		case entry.CacheTempFile:
			return os.ReadFile(root.Cache.TempFile)
		}
	}
	data, err := os.ReadFile(m.base)
	if err != nil {
		return nil, handler.NotExist(m.base, err)
	}
	return data, nil
}

// GetEntryCache returns a read-only snapshot of the full cache map.
func (m *Manager) GetEntryCache() map[string]*entry.Info {
	return m.cache.Snapshot()
}

// Close releases every temporary file nested-archive materialization
// created, equivalent to calling SetBasePath again without rebuilding
// the cache.
func (m *Manager) Close() error {
	m.temps.Clear()
	return nil
}

func rejectFileWithTrailingSlash(c *cache.Cache, relPath string) error {
	if relPath == "" || relPath == "/" || !strings.HasSuffix(relPath, "/") {
		return nil
	}
	key := pathutil.Normalize(relPath)
	if e, ok := c.Get(key); ok && e.Type == entry.File {
		return ErrorInvalidPath.Errorf(relPath)
	}
	return nil
}
