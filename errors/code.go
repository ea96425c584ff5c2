package errors

import (
	"sort"
	"strconv"
)

// CodeError is a numeric error code similar to an HTTP status code,
// unique per failure site across the module.
type CodeError uint16

const (
	// UnknownError is the fallback code when none was registered.
	UnknownError CodeError = 0
	// UnknownMessage is the message returned for UnknownError.
	UnknownMessage = "unknown error"
)

// Package code ranges. Every package that can fail reserves 100 codes
// here, mirroring the golib corpus's errors/modules.go convention.
const (
	MinPkgEntry      CodeError = 100
	MinPkgPathutil   CodeError = 200
	MinPkgHandler    CodeError = 300
	MinPkgFsys       CodeError = 400
	MinPkgZip        CodeError = 500
	MinPkgRar        CodeError = 600
	MinPkgTar        CodeError = 700
	MinPkgSevenZip   CodeError = 800
	MinPkgCpio       CodeError = 900
	MinPkgLzh        CodeError = 1000
	MinPkgRegistry   CodeError = 1100
	MinPkgResolver   CodeError = 1200
	MinPkgCache      CodeError = 1300
	MinPkgProcessor  CodeError = 1400
	MinPkgManager    CodeError = 1500
	MinPkgConfig     CodeError = 1600
	MinAvailable     CodeError = 1700
)

type registration struct {
	msg  func(CodeError) string
	kind Kind
}

var registry = make(map[CodeError]registration)

// ExistInMapMessage reports whether code already has a registered message.
func ExistInMapMessage(code CodeError) bool {
	_, ok := registry[code]
	return ok
}

// RegisterIdFctMessage registers the message function and Kind for code.
// Called once from each package's error.go init().
func RegisterIdFctMessage(code CodeError, kind Kind, fct func(CodeError) string) {
	registry[code] = registration{msg: fct, kind: kind}
}

// RegisteredCodes returns every registered code, sorted, for diagnostics.
func RegisteredCodes() []CodeError {
	out := make([]CodeError, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Message returns the registered message for c, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if r, ok := registry[c]; ok {
		if m := r.msg(c); m != "" {
			return m
		}
	}
	return UnknownMessage
}

// Kind returns the registered Kind for c, or KindNone.
func (c CodeError) Kind() Kind {
	if r, ok := registry[c]; ok {
		return r.kind
	}
	return KindNone
}

func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Error builds an Error value from this code with optional parents.
func (c CodeError) Error(parents ...error) Error {
	return newError(c, c.Message(), c.Kind(), parents...)
}

// Errorf builds an Error value from this code with a formatted message,
// substituted into the registered message template.
func (c CodeError) Errorf(args ...interface{}) Error {
	return newErrorf(c, c.Message(), c.Kind(), args...)
}
