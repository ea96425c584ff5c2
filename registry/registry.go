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

// Package registry holds the ordered vector of format handlers and
// dispatches a path or byte sample to the one that claims it.
package registry

import (
	"strings"
	"sync"

	"github.com/nabbar/arcvfs/handler"
)

// Registry holds an ordered list of handlers and memoizes path lookups.
// Registering a new handler invalidates the memo, since a later
// registration can shadow an earlier one for paths both accept.
type Registry struct {
	mu       sync.RWMutex
	handlers []handler.Handler
	memo     map[string]handler.Handler
	extra    map[string]bool
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{memo: make(map[string]handler.Handler)}
}

// Register appends h to the handler vector and clears the memoization
// map, so a newly registered handler gets a chance to shadow earlier
// ones on the next GetHandler call.
func (r *Registry) Register(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
	r.memo = make(map[string]handler.Handler)
}

// GetHandler returns the handler that claims path: the memo is
// consulted first, then handlers are tried in reverse registration
// order so later registrations shadow earlier ones.
func (r *Registry) GetHandler(path string) (handler.Handler, bool) {
	r.mu.RLock()
	if h, ok := r.memo[path]; ok {
		r.mu.RUnlock()
		return h, true
	}
	handlers := r.handlers
	r.mu.RUnlock()

	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		if h.CanHandle(path) {
			r.mu.Lock()
			r.memo[path] = h
			r.mu.Unlock()
			return h, true
		}
	}
	return nil, false
}

// GetHandlerForBytes returns the handler that claims an in-memory
// sample, given a hint path (often just the member name); results are
// not memoized since the byte content isn't a stable cache key here.
func (r *Registry) GetHandlerForBytes(data []byte, hintPath string) (handler.Handler, bool) {
	r.mu.RLock()
	handlers := r.handlers
	r.mu.RUnlock()

	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		if h.CanHandleBytes(data, hintPath) {
			return h, true
		}
	}
	return nil, false
}

// IsArchiveExtension reports whether ext (case-insensitive, dot
// included, e.g. ".zip") is claimed by any registered handler. This is
// the authoritative "is this name an archive?" predicate the manager
// uses to classify a FILE entry as ARCHIVE.
func (r *Registry) IsArchiveExtension(ext string) bool {
	ext = strings.ToLower(ext)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.extra[ext] {
		return true
	}
	for _, h := range r.handlers {
		for _, e := range h.SupportedExtensions() {
			if strings.ToLower(e) == ext {
				return true
			}
		}
	}
	return false
}

// Extensions returns the union of every registered handler's
// supported extensions, deduplicated.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, h := range r.handlers {
		for _, e := range h.SupportedExtensions() {
			e = strings.ToLower(e)
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// RegisterExtension lets a caller declare an extra extension as
// archive-like without writing a full handler; the extension is only
// recorded in a set of extra suffixes. This is a
// supplemental convenience over the base dispatch rule: it only
// affects IsArchiveExtension, not GetHandler, since dispatch still
// needs a real handler able to parse the bytes.
func (r *Registry) RegisterExtension(ext string) {
	ext = strings.ToLower(ext)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.extra == nil {
		r.extra = make(map[string]bool)
	}
	r.extra[ext] = true
}
