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

// Package sevenzipfmt implements the handler.Handler trait for 7z
// archives on top of github.com/bodgit/sevenzip, whose Reader/File
// types deliberately mirror the standard library's archive/zip so the
// walk here reads almost identically to zipfmt's. It also registers
// (without functional decoding) the long-tail container extensions
// .cab, .arj, .iso and .rpm: CanHandle/CanHandleBytes recognize them
// by extension so the registry routes them here instead of reporting
// them unsupported outright. A path-based list or read of one of them
// returns ErrorLongTailUnsupported (kind Unsupported); an in-memory
// source is handed to the 7z reader and fails with ErrorOpen (kind
// Corrupt), since no corpus library parses those payloads.
package sevenzipfmt
