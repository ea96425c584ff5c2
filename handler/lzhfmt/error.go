package lzhfmt

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorOpen arcerr.CodeError = iota + arcerr.MinPkgLzh
	ErrorUnsupportedLevel
	ErrorUnsupportedMethod
)

func init() {
	if arcerr.ExistInMapMessage(ErrorOpen) {
		panic(fmt.Errorf("error code collision arcvfs/handler/lzhfmt"))
	}
	arcerr.RegisterIdFctMessage(ErrorOpen, arcerr.KindCorrupt, func(arcerr.CodeError) string {
		return "lzh: cannot parse archive"
	})
	arcerr.RegisterIdFctMessage(ErrorUnsupportedLevel, arcerr.KindUnsupported, func(arcerr.CodeError) string {
		return "lzh: unsupported header level"
	})
	arcerr.RegisterIdFctMessage(ErrorUnsupportedMethod, arcerr.KindUnsupported, func(arcerr.CodeError) string {
		return "lzh: compression method has no decoder"
	})
}
