package sevenzipfmt

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorOpen arcerr.CodeError = iota + arcerr.MinPkgSevenZip
	ErrorLongTailUnsupported
)

func init() {
	if arcerr.ExistInMapMessage(ErrorOpen) {
		panic(fmt.Errorf("error code collision arcvfs/handler/sevenzipfmt"))
	}
	arcerr.RegisterIdFctMessage(ErrorOpen, arcerr.KindCorrupt, func(arcerr.CodeError) string {
		return "7z: cannot open archive"
	})
	arcerr.RegisterIdFctMessage(ErrorLongTailUnsupported, arcerr.KindUnsupported, func(arcerr.CodeError) string {
		return "7z: recognized container format has no decoder"
	})
}
