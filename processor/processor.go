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

// Package processor materializes a just-discovered ARCHIVE entry: it
// obtains the archive's raw bytes (from disk, or by reading through an
// already-materialized parent archive), decides whether the bytes can
// stay in memory or need spilling to a temp file, enumerates the
// archive's own entries, and rebases them under the parent's relative
// path. See SPEC_FULL.md §4.6.
package processor

import (
	"os"
	"path/filepath"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/internal/tempstore"
	"github.com/nabbar/arcvfs/pathutil"
	"github.com/nabbar/arcvfs/registry"
	"github.com/nabbar/arcvfs/resolver"
)

// DefaultMaxDepth is the nested-archive recursion bound applied when a
// Processor is constructed with maxDepth <= 0.
const DefaultMaxDepth = 5

// Processor materializes ARCHIVE entries. It holds no state of its
// own beyond its dependencies; Manager owns the entry cache and drives
// the BFS that guarantees a parent archive is always materialized
// before any of its descendants are handed to Materialize.
type Processor struct {
	reg      *registry.Registry
	resolver *resolver.Resolver
	temps    *tempstore.Set
	maxDepth int
}

// New returns a Processor. maxDepth <= 0 selects DefaultMaxDepth.
func New(reg *registry.Registry, rv *resolver.Resolver, temps *tempstore.Set, maxDepth int) *Processor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Processor{reg: reg, resolver: rv, temps: temps, maxDepth: maxDepth}
}

// Materialize fills in E's Cache and Status in place and returns E's
// own entries, already rebased under E.RelativePath. depth is this
// archive's nesting level (1 for a root archive or a top-level archive
// under a directory base path); exceeding the configured max marks E Broken with no children.
// On any failure E.Status is set to Broken with BrokenReason populated
// and nil is returned; the entry itself stays visible in the cache.
func (p *Processor) Materialize(E *entry.Info, basePath string, lookup resolver.ArchiveLookup, depth int) []*entry.Info {
	if depth > p.maxDepth {
		E.Status = entry.Broken
		E.BrokenReason = ErrorDepthExceeded.Errorf(E.RelativePath).Error()
		return nil
	}

	data, err := p.readBytes(E, basePath, lookup)
	if err != nil {
		E.Status = entry.Broken
		E.BrokenReason = err.Error()
		return nil
	}

	eh, ok := p.reg.GetHandlerForBytes(data, E.Name)
	if !ok {
		E.Status = entry.Broken
		E.BrokenReason = ErrorNoHandler.Errorf(E.RelativePath).Error()
		return nil
	}

	var children []*entry.Info
	if eh.CanHandleBytes(data, E.Name) {
		E.Cache = &entry.Cache{Kind: entry.CacheBytes, Bytes: data}
		children, err = eh.ListAllEntriesFromBytes(data)
	} else {
		tmpPath, serr := tempstore.Save(data, filepath.Ext(E.Name))
		if serr != nil {
			E.Status = entry.Broken
			E.BrokenReason = serr.Error()
			return nil
		}
		p.temps.Add(tmpPath)
		E.Cache = &entry.Cache{Kind: entry.CacheTempFile, TempFile: tmpPath}
		children, err = eh.ListAllEntries(tmpPath)
	}

	if err != nil {
		E.Status = entry.Broken
		E.BrokenReason = err.Error()
		return nil
	}

	for _, c := range children {
		c.RelativePath = pathutil.Join(E.RelativePath, c.RelativePath)
	}

	E.Status = entry.Ready
	return children
}

// readBytes implements step 1 of the algorithm: a real on-disk file
// wins outright; otherwise E must be nested inside an already-ready
// parent archive, whose own Cache (bytes or temp file) is read through
// that parent's handler using E.NameInArchive.
func (p *Processor) readBytes(E *entry.Info, basePath string, lookup resolver.ArchiveLookup) ([]byte, error) {
	full := filepath.Join(basePath, filepath.FromSlash(E.RelativePath))
	if st, statErr := os.Stat(full); statErr == nil && !st.IsDir() {
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, handler.NotExist(full, err)
		}
		return data, nil
	}

	parentKey, found := p.resolver.FindParentArchive(lookup, E.RelativePath)
	if !found {
		return nil, ErrorNoHandler.Errorf(E.RelativePath)
	}

	P, ok := lookup.Get(parentKey)
	if !ok || P.Cache == nil {
		return nil, ErrorNoHandler.Errorf(parentKey)
	}

	switch P.Cache.Kind {
	case entry.CacheBytes:
		ph, ok := p.reg.GetHandlerForBytes(P.Cache.Bytes, P.Name)
		if !ok {
			return nil, ErrorNoHandler.Errorf(parentKey)
		}
		return ph.ReadFileFromBytes(P.Cache.Bytes, E.NameInArchive)
	case entry.CacheTempFile:
		ph, ok := p.reg.GetHandler(P.Cache.TempFile)
		if !ok {
			return nil, ErrorNoHandler.Errorf(parentKey)
		}
		return ph.ReadArchiveFile(P.Cache.TempFile, E.NameInArchive)
	default:
		return nil, ErrorNoHandler.Errorf(parentKey)
	}
}
