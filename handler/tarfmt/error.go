package tarfmt

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorOpen arcerr.CodeError = iota + arcerr.MinPkgTar
	ErrorUnknownCompression
)

func init() {
	if arcerr.ExistInMapMessage(ErrorOpen) {
		panic(fmt.Errorf("error code collision arcvfs/handler/tarfmt"))
	}
	arcerr.RegisterIdFctMessage(ErrorOpen, arcerr.KindCorrupt, func(arcerr.CodeError) string {
		return "tar: cannot open archive"
	})
	arcerr.RegisterIdFctMessage(ErrorUnknownCompression, arcerr.KindUnsupported, func(arcerr.CodeError) string {
		return "tar: unrecognized compression layer"
	})
}
