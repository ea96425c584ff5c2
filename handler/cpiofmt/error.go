package cpiofmt

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorOpen arcerr.CodeError = iota + arcerr.MinPkgCpio
	ErrorNoDataMember
)

func init() {
	if arcerr.ExistInMapMessage(ErrorOpen) {
		panic(fmt.Errorf("error code collision arcvfs/handler/cpiofmt"))
	}
	arcerr.RegisterIdFctMessage(ErrorOpen, arcerr.KindCorrupt, func(arcerr.CodeError) string {
		return "cpio: cannot parse archive"
	})
	arcerr.RegisterIdFctMessage(ErrorNoDataMember, arcerr.KindCorrupt, func(arcerr.CodeError) string {
		return "deb: no data.tar member found in ar container"
	})
}
