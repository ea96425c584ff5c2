package handler

import (
	"fmt"

	arcerr "github.com/nabbar/arcvfs/errors"
)

const (
	ErrorPathNotExist arcerr.CodeError = iota + arcerr.MinPkgHandler
	ErrorNotMyFormat
	ErrorArchiveCorrupt
	ErrorNotPermitted
	ErrorExtractFailed
)

func init() {
	if arcerr.ExistInMapMessage(ErrorPathNotExist) {
		panic(fmt.Errorf("error code collision arcvfs/handler"))
	}
	arcerr.RegisterIdFctMessage(ErrorPathNotExist, arcerr.KindNotFound, getMessage)
	arcerr.RegisterIdFctMessage(ErrorNotMyFormat, arcerr.KindUnsupported, getMessage)
	arcerr.RegisterIdFctMessage(ErrorArchiveCorrupt, arcerr.KindCorrupt, getMessage)
	arcerr.RegisterIdFctMessage(ErrorNotPermitted, arcerr.KindIO, getMessage)
	arcerr.RegisterIdFctMessage(ErrorExtractFailed, arcerr.KindIO, getMessage)
}

func getMessage(code arcerr.CodeError) string {
	switch code {
	case ErrorPathNotExist:
		return "handler: path does not exist"
	case ErrorNotMyFormat:
		return "handler: not an archive of this handler's format"
	case ErrorArchiveCorrupt:
		return "handler: archive is corrupted"
	case ErrorNotPermitted:
		return "handler: operation not permitted"
	case ErrorExtractFailed:
		return "handler: extraction failed"
	}
	return arcerr.UnknownMessage
}

// NotExist builds the standard "path does not exist" error for path,
// optionally wrapping a lower-level cause.
func NotExist(path string, cause error) error {
	if cause != nil {
		return ErrorPathNotExist.Error(arcerr.New(0, arcerr.KindIO, cause.Error()))
	}
	return ErrorPathNotExist.Errorf(path)
}

// NotMyFormat builds the standard "not this handler's format" error.
func NotMyFormat(path string) error {
	return ErrorNotMyFormat.Error(fmt.Errorf("path: %s", path))
}

// Corrupt builds the standard "archive corrupted" error, wrapping cause.
func Corrupt(cause error) error {
	if cause == nil {
		return ErrorArchiveCorrupt.Error()
	}
	return ErrorArchiveCorrupt.Error(cause)
}

// ExtractFailed builds the standard "extraction failed" error, wrapping cause.
func ExtractFailed(cause error) error {
	if cause == nil {
		return ErrorExtractFailed.Error()
	}
	return ErrorExtractFailed.Error(cause)
}
