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

package resolver

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorNotResolved arcerr.CodeError = iota + arcerr.MinPkgResolver
)

func init() {
	if arcerr.ExistInMapMessage(ErrorNotResolved) {
		panic(fmt.Errorf("error code collision arcvfs/resolver"))
	}
	arcerr.RegisterIdFctMessage(ErrorNotResolved, arcerr.KindNotFound, func(arcerr.CodeError) string {
		return "resolver: path does not resolve to any known entry"
	})
}

// NotResolved builds the standard "path does not resolve" error for
// path. Analyze itself returns found=false rather than an error, since
// most callers branch on the bool; NotResolved exists for callers that
// want a proper Error value for that branch instead of constructing
// their own.
func NotResolved(path string) error {
	return ErrorNotResolved.Errorf(path)
}
