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

// Package tempstore implements the save-to-temp-file step the archive
// processor uses when a handler cannot read nested bytes from memory
// (spec.md §4.2), and the process-wide
// cleanup Set the manager drains on cache clear (spec.md §5, §4.6).
package tempstore

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Root is the directory new temp files are created under. Defaults to
// os.TempDir(); overridable by configuration (SPEC_FULL.md §2.3).
var Root = os.TempDir()

const namePrefix = "arcvfs"

// Save writes data to a new file under Root, named
// "<prefix>_<md5-of-first-4KiB>_<millis>_<rand>.<ext>" and returns its
// path. ext may be empty or dot-prefixed; a leading dot is added if
// missing.
func Save(data []byte, ext string) (string, error) {
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	sum := md5.Sum(head)

	name := fmt.Sprintf(
		"%s_%s_%d_%d%s",
		namePrefix,
		hex.EncodeToString(sum[:]),
		time.Now().UnixMilli(),
		rand.Int31(),
		ext,
	)

	path := filepath.Join(Root, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Set is the process-wide collection of temp file paths owned by one
// manager instance. Entries are removed by Clear; the same path is
// never tracked by more than one Set entry.
type Set struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{paths: make(map[string]struct{})}
}

// Add records path for later cleanup.
func (s *Set) Add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[path] = struct{}{}
}

// Clear deletes every tracked file and empties the set. Errors
// removing individual files are swallowed (best effort, matching
// spec.md §5's "deleted by clear() and by process exit").
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.paths {
		_ = os.Remove(p)
	}
	s.paths = make(map[string]struct{})
}

// Len reports how many temp files are currently tracked.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}
