package errors_test

import (
	arcerr "github.com/nabbar/arcvfs/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const testCode arcerr.CodeError = arcerr.MinAvailable + 1

func init() {
	if !arcerr.ExistInMapMessage(testCode) {
		arcerr.RegisterIdFctMessage(testCode, arcerr.KindIO, func(arcerr.CodeError) string {
			return "test message"
		})
	}
}

var _ = Describe("CodeError", func() {
	It("registers and resolves a message", func() {
		Expect(testCode.Message()).To(Equal("test message"))
	})

	It("resolves a Kind", func() {
		Expect(testCode.Kind()).To(Equal(arcerr.KindIO))
	})

	It("falls back to UnknownMessage for an unregistered code", func() {
		var other arcerr.CodeError = 65000
		Expect(other.Message()).To(Equal(arcerr.UnknownMessage))
	})

	It("builds an Error carrying code, kind and parent", func() {
		parent := arcerr.CodeError(1).Error()
		e := testCode.Error(parent)
		Expect(e.Code()).To(Equal(testCode))
		Expect(e.Kind()).To(Equal(arcerr.KindIO))
		Expect(arcerr.Is(e, arcerr.KindIO)).To(BeTrue())
		Expect(e.Unwrap()).NotTo(BeNil())
	})
})
