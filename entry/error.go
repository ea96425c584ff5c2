package entry

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorInvalidType arcerr.CodeError = iota + arcerr.MinPkgEntry
	ErrorEmptyName
)

func init() {
	if arcerr.ExistInMapMessage(ErrorInvalidType) {
		panic(fmt.Errorf("error code collision arcvfs/entry"))
	}
	arcerr.RegisterIdFctMessage(ErrorInvalidType, arcerr.KindInvalidPath, getMessage)
	arcerr.RegisterIdFctMessage(ErrorEmptyName, arcerr.KindInvalidPath, getMessage)
}

func getMessage(code arcerr.CodeError) string {
	switch code {
	case ErrorInvalidType:
		return "entry: unrecognized entry type"
	case ErrorEmptyName:
		return "entry: name must not be empty"
	}
	return arcerr.UnknownMessage
}
