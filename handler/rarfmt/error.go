package rarfmt

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorOpen arcerr.CodeError = iota + arcerr.MinPkgRar
	ErrorEncrypted
)

func init() {
	if arcerr.ExistInMapMessage(ErrorOpen) {
		panic(fmt.Errorf("error code collision arcvfs/handler/rarfmt"))
	}
	arcerr.RegisterIdFctMessage(ErrorOpen, arcerr.KindCorrupt, func(arcerr.CodeError) string {
		return "rar: cannot open archive"
	})
	arcerr.RegisterIdFctMessage(ErrorEncrypted, arcerr.KindUnsupported, func(arcerr.CodeError) string {
		return "rar: archive or member requires a password"
	})
}
