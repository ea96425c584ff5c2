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

package arcvfs

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorRootUnavailable arcerr.CodeError = iota + arcerr.MinPkgManager
	ErrorInvalidPath
	ErrorNotFound
)

func init() {
	if arcerr.ExistInMapMessage(ErrorRootUnavailable) {
		panic(fmt.Errorf("error code collision arcvfs (root package)"))
	}
	arcerr.RegisterIdFctMessage(ErrorRootUnavailable, arcerr.KindIO, func(arcerr.CodeError) string {
		return "arcvfs: root path unavailable or unrecognized"
	})
	arcerr.RegisterIdFctMessage(ErrorInvalidPath, arcerr.KindInvalidPath, func(arcerr.CodeError) string {
		return "arcvfs: malformed relative path"
	})
	arcerr.RegisterIdFctMessage(ErrorNotFound, arcerr.KindNotFound, func(arcerr.CodeError) string {
		return "arcvfs: no entry at this relative path"
	})
}
