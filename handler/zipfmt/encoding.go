package zipfmt

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// candidate is one step of the encoding-repair cascade from spec.md
// §4.2.2: "[cp932, utf-8, euc_jp, iso-2022-jp, cp437] (cp437-round-trip
// heuristic) and picks the first that produces non-control characters".
type candidate struct {
	name string
	enc  encoding.Encoding // nil for the pseudo-encoding "utf-8"
}

var cascade = []candidate{
	{name: "cp932", enc: japanese.ShiftJIS},
	{name: "utf-8", enc: nil},
	{name: "euc-jp", enc: japanese.EUCJP},
	{name: "iso-2022-jp", enc: japanese.ISO2022JP},
	{name: "cp437", enc: charmap.CodePage437},
}

// repairName re-derives a display name from name. archive/zip does
// not transcode member names: when the UTF-8 flag is clear, name holds
// the raw header bytes unchanged. When utf8Flag is true the name is
// already correct and is returned unchanged. Otherwise the cascade is
// run against those raw bytes, returning the first candidate whose
// decode contains no control characters. If every candidate fails,
// name itself (the raw bytes) is returned.
func repairName(name string, utf8Flag bool) string {
	if utf8Flag {
		return name
	}

	rawBytes := []byte(name)

	for _, c := range cascade {
		var decoded string
		if c.enc == nil {
			if !utf8.Valid(rawBytes) {
				continue
			}
			decoded = string(rawBytes)
		} else {
			d, err := c.enc.NewDecoder().Bytes(rawBytes)
			if err != nil {
				continue
			}
			decoded = string(d)
		}
		if looksClean(decoded) {
			return decoded
		}
	}

	return name
}

// looksClean reports whether s contains no C0/C1 control characters
// (other than the ones that are never valid in a filename anyway),
// the acceptance test spec.md §4.2.2 asks for.
func looksClean(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
