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

package cache

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorNotFound arcerr.CodeError = iota + arcerr.MinPkgCache
	ErrorInvalidPath
)

func init() {
	if arcerr.ExistInMapMessage(ErrorNotFound) {
		panic(fmt.Errorf("error code collision arcvfs/cache"))
	}
	arcerr.RegisterIdFctMessage(ErrorNotFound, arcerr.KindNotFound, func(arcerr.CodeError) string {
		return "cache: no entry at this relative path"
	})
	arcerr.RegisterIdFctMessage(ErrorInvalidPath, arcerr.KindInvalidPath, func(arcerr.CodeError) string {
		return "cache: malformed relative path"
	})
}

// NotFound builds the standard "missing cache key" error for key.
func NotFound(key string) error {
	return ErrorNotFound.Errorf(key)
}

// InvalidPath builds the standard "malformed path" error for path.
func InvalidPath(path string) error {
	return ErrorInvalidPath.Errorf(path)
}
