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

// Package cache holds the single flat relative_path -> entry.Info map
// that backs every lookup the manager exposes once set_base_path has
// returned. It has no notion of handlers, archives, or nesting depth;
// it is pure storage plus the listing helpers built on a linear scan.
package cache

import (
	"sort"
	"sync"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/pathutil"
)

// Cache is the flat relative_path -> entry.Info map. The empty string
// keys the root entry. Safe for concurrent reads; writers are expected
// to be the single producer driving set_base_path (spec.md §4.7).
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry.Info
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry.Info)}
}

// Get returns a clone of the entry at key, so callers can never
// mutate the cache's internal state through the returned pointer.
func (c *Cache) Get(key string) (*entry.Info, bool) {
	key = pathutil.Normalize(key)
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Insert stores e under its own Key(), overwriting any prior entry at
// that key.
func (c *Cache) Insert(e *entry.Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Key()] = e
}

// SetStatus updates the Status (and, for Broken, the BrokenReason) of
// the entry at key, if present.
func (c *Cache) SetStatus(key string, status entry.Status, brokenReason string) {
	key = pathutil.Normalize(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.Status = status
	e.BrokenReason = brokenReason
}

// Clear empties the map. Callers owning temp files referenced by
// Archive entries' Cache slots are responsible for draining their own
// cleanup set first (see internal/tempstore.Set); Cache itself holds
// no filesystem handles.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry.Info)
}

// Len reports how many entries the cache currently holds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ListChildren returns the direct children of parent: every entry
// whose relative path starts with parent+"/" and has no further "/"
// after that prefix. For parent == "", that is every top-level key
// (no "/" at all). Results are sorted with pathutil.Less for
// deterministic ordering.
func (c *Cache) ListChildren(parent string) []*entry.Info {
	parent = pathutil.Normalize(parent)

	c.mu.RLock()
	var out []*entry.Info
	for key, e := range c.entries {
		if key == "" {
			continue
		}
		if pathutil.Parent(key) == parent {
			out = append(out, e.Clone())
		}
	}
	c.mu.RUnlock()

	sortEntries(out)
	return out
}

// Snapshot returns a read-only clone of the entire map, for callers
// like a folder-menu UI that want the full tree without holding the
// cache's lock.
func (c *Cache) Snapshot() map[string]*entry.Info {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]*entry.Info, len(c.entries))
	for k, e := range c.entries {
		out[k] = e.Clone()
	}
	return out
}

func sortEntries(list []*entry.Info) {
	sort.Slice(list, func(a, b int) bool {
		return pathutil.Less(list[a].Name, list[b].Name)
	})
}
