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

// Package arcvfs unifies a plain directory tree and any archives
// nested inside it — ZIP, RAR, tar (plus gzip/bzip2/xz/lz4
// members), 7z, cpio, Debian .deb, and LZH/LHA, arbitrarily deep —
// behind one flat relative-path address space.
//
// Construct a Manager with New, point it at a root with SetBasePath,
// then query it: GetEntryInfo, ListEntries, ReadFile, GetEntryCache.
// SetBasePath does all the work eagerly — it walks the base path,
// discovers every archive beneath it, and recursively materializes
// their contents into the cache — so every later query is a pure
// lookup. Call Close when done to release any temporary files nested
// archives spilled to disk.
//
//	m := arcvfs.New()
//	if err := m.SetBasePath("./testdata/bundle.zip"); err != nil {
//		log.Fatal(err)
//	}
//	defer m.Close()
//
//	entries, err := m.ListEntries("assets")
package arcvfs
