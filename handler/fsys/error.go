package fsys

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorReadDir arcerr.CodeError = iota + arcerr.MinPkgFsys
)

func init() {
	if arcerr.ExistInMapMessage(ErrorReadDir) {
		panic(fmt.Errorf("error code collision arcvfs/handler/fsys"))
	}
	arcerr.RegisterIdFctMessage(ErrorReadDir, arcerr.KindIO, func(arcerr.CodeError) string {
		return "fsys: cannot read directory"
	})
}
