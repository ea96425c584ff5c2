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

// Package resolver splits a composite path into the real archive
// location and the member path inside it, and walks the entry cache
// upward to find the nearest enclosing archive for a given key.
package resolver

import (
	"strings"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/pathutil"
	"github.com/nabbar/arcvfs/registry"
)

// ArchiveLookup is the slice of the entry cache the resolver needs:
// a single keyed read. cache.Cache satisfies this without an import
// cycle between the two packages.
type ArchiveLookup interface {
	Get(key string) (*entry.Info, bool)
}

// Resolver splits composite paths using a Registry's handler
// dispatch and walks ArchiveLookup to find enclosing archives.
type Resolver struct {
	reg *registry.Registry
}

// New returns a Resolver backed by reg.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Analyze splits path into (archivePath, internalPath) by testing
// successively shorter prefixes against the registry: the first
// prefix a container-semantics handler (one with at least one
// supported extension, i.e. not the plain-directory handler) accepts
// is the archive boundary; everything after it is the internal path.
// If no prefix qualifies and basePath is itself an archive file, the
// whole path is internal to basePath. Otherwise found is false and
// the caller reports the entry missing.
func (rv *Resolver) Analyze(path, basePath string) (archivePath, internalPath string, found bool) {
	norm := pathutil.Normalize(path)
	comps := pathutil.SplitComponents(norm)
	if len(comps) == 0 {
		return "", "", false
	}

	for i := len(comps) - 1; i >= 1; i-- {
		prefix := strings.Join(comps[:i], "/")
		if h, ok := rv.reg.GetHandler(prefix); ok && len(h.SupportedExtensions()) > 0 {
			return prefix, strings.Join(comps[i:], "/"), true
		}
	}

	if basePath != "" {
		if h, ok := rv.reg.GetHandler(basePath); ok && len(h.SupportedExtensions()) > 0 {
			return basePath, norm, true
		}
	}

	return "", norm, false
}

// FindParentArchive trims trailing components from relPath, returning
// the cache key of the nearest ancestor that is an Archive-typed
// entry and whether one was found. The root key "" is tried last,
// since pathutil.Prefixes only ever yields non-empty component
// prefixes, but the root entry itself (the base path, when it is an
// archive) is a valid parent for any of its direct members — relPath
// "" is itself a legitimate key, so a bare string return can't
// distinguish "parent is the root archive" from "not nested under any
// archive" the way a plain "" sentinel would.
func (rv *Resolver) FindParentArchive(lookup ArchiveLookup, relPath string) (string, bool) {
	parent := pathutil.Parent(relPath)
	prefixes := pathutil.Prefixes(parent)

	for i := len(prefixes) - 1; i >= 0; i-- {
		if e, ok := lookup.Get(prefixes[i]); ok && e.Type == entry.Archive {
			return prefixes[i], true
		}
	}
	if e, ok := lookup.Get(""); ok && e.Type == entry.Archive {
		return "", true
	}
	return "", false
}
