/*
 * MIT License
 *
 * Copyright (c) 2024 The arcvfs Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package zipfmt_test

import (
	"archive/zip"
	"bytes"

	"golang.org/x/text/encoding/japanese"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/arcvfs/handler/zipfmt"
)

var _ = Describe("zip handler", func() {
	var data []byte

	BeforeEach(func() {
		buf := &bytes.Buffer{}
		w := zip.NewWriter(buf)

		one, err := w.Create("m/one.txt")
		Expect(err).ToNot(HaveOccurred())
		_, err = one.Write([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())

		two, err := w.Create("m/two.bin")
		Expect(err).ToNot(HaveOccurred())
		_, err = two.Write([]byte{0x01, 0x02, 0x03})
		Expect(err).ToNot(HaveOccurred())

		Expect(w.Close()).To(Succeed())
		data = buf.Bytes()
	})

	It("lists the flat member tree with a synthesized parent directory", func() {
		h := zipfmt.New()
		all, err := h.ListAllEntriesFromBytes(data)
		Expect(err).ToNot(HaveOccurred())

		var names []string
		for _, e := range all {
			names = append(names, e.RelativePath)
		}
		Expect(names).To(ContainElements("m", "m/one.txt", "m/two.bin"))
	})

	It("reads a member back by its internal name", func() {
		h := zipfmt.New()
		out, err := h.ReadFileFromBytes(data, "m/one.txt")
		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(Equal("hello"))
	})

	It("recognizes its own signature regardless of the hint path", func() {
		h := zipfmt.New()
		Expect(h.CanHandleBytes(data, "ignored.bin")).To(BeTrue())
	})

	It("falls back to the extension hint when there is no signature to check", func() {
		h := zipfmt.New()
		Expect(h.CanHandleBytes([]byte("not a zip"), "whatever.zip")).To(BeTrue())
		Expect(h.CanHandleBytes([]byte("not a zip"), "whatever.txt")).To(BeFalse())
	})
})

var _ = Describe("zip member name encoding repair", func() {
	It("recovers a Shift-JIS name stored without the UTF-8 flag", func() {
		enc := japanese.ShiftJIS.NewEncoder()
		raw, err := enc.String("shiryou/東京.txt")
		Expect(err).ToNot(HaveOccurred())

		buf := &bytes.Buffer{}
		w := zip.NewWriter(buf)

		fh := &zip.FileHeader{
			Name:   raw,
			Method: zip.Deflate,
		}
		fh.NonUTF8 = true

		fw, err := w.CreateHeader(fh)
		Expect(err).ToNot(HaveOccurred())
		_, err = fw.Write([]byte("payload"))
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Close()).To(Succeed())

		h := zipfmt.New()
		all, err := h.ListAllEntriesFromBytes(buf.Bytes())
		Expect(err).ToNot(HaveOccurred())

		var member *struct{ name, nameInArchive string }
		for _, e := range all {
			if e.Type.String() == "file" {
				member = &struct{ name, nameInArchive string }{e.Name, e.NameInArchive}
			}
		}
		Expect(member).ToNot(BeNil())
		Expect(member.name).To(Equal("東京.txt"))
		// NameInArchive keeps the name exactly as archive/zip returned it
		// (the raw Shift-JIS bytes, since the UTF-8 flag is clear) so a
		// later re-read finds the same central directory record.
		Expect(member.nameInArchive).ToNot(BeEmpty())

		out, err := h.ReadFileFromBytes(buf.Bytes(), member.nameInArchive)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(Equal("payload"))
	})
})
