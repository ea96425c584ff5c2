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

// Package tarfmt implements the handler.Handler trait for tar and the
// compressed tar family, layering one of four decompressors in front
// of the standard library's archive/tar: stdlib compress/gzip,
// stdlib compress/bzip2, github.com/ulikunitz/xz, and
// github.com/pierrec/lz4/v4. Every member is read by streaming the
// whole archive once (tar has no central directory to seek into), so
// ListAllEntries and ReadArchiveFile each make their own pass; the
// parsed listing is memoized in a handler.StructureCache the same way
// zipfmt and rarfmt do.
//
// Bytes-based calls (ListAllEntriesFromBytes, ReadFileFromBytes) have
// no filename to consult, so they always decode the stream as a tar
// container after stripping whatever compression layer its signature
// indicates; the bare-single-compressed-file shorthand (".log.gz")
// is only recognized for on-disk paths, where the name is known.
package tarfmt
