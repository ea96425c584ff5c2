package tarfmt

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// layer is one decompression algorithm this package can strip off
// before handing the remainder to archive/tar (or, for a bare
// compressed single file, straight to the caller).
type layer uint8

const (
	layerNone layer = iota
	layerGzip
	layerBzip2
	layerXZ
	layerLZ4
)

var gzipSig = []byte{0x1f, 0x8b}
var bzip2Sig = []byte{'B', 'Z', 'h'}
var xzSig = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}
var lz4Sig = []byte{0x04, 0x22, 0x4D, 0x18}

// detectLayer inspects the leading bytes of an archive, falling back
// to the extension when the sample is too short to carry a signature.
func detectLayer(sample []byte, path string) layer {
	switch {
	case bytes.HasPrefix(sample, gzipSig):
		return layerGzip
	case bytes.HasPrefix(sample, bzip2Sig):
		return layerBzip2
	case bytes.HasPrefix(sample, xzSig):
		return layerXZ
	case bytes.HasPrefix(sample, lz4Sig):
		return layerLZ4
	default:
		return layerFromExt(path)
	}
}

func layerFromExt(path string) layer {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".tgz"):
		return layerGzip
	case strings.HasSuffix(lower, ".bz2"), strings.HasSuffix(lower, ".tbz"), strings.HasSuffix(lower, ".tbz2"):
		return layerBzip2
	case strings.HasSuffix(lower, ".xz"), strings.HasSuffix(lower, ".txz"):
		return layerXZ
	case strings.HasSuffix(lower, ".lz4"), strings.HasSuffix(lower, ".tlz4"):
		return layerLZ4
	default:
		return layerNone
	}
}

// isTarContainer reports whether path's extension implies a tar stream
// underneath the compression layer, as opposed to a bare single
// compressed file (".txt.gz" rather than ".tar.gz").
func isTarContainer(path string) bool {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar"):
		return true
	case strings.HasSuffix(lower, ".tgz"), strings.HasSuffix(lower, ".tbz"), strings.HasSuffix(lower, ".tbz2"),
		strings.HasSuffix(lower, ".txz"), strings.HasSuffix(lower, ".tlz4"):
		return true
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tar.bz2"),
		strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".tar.lz4"):
		return true
	default:
		return false
	}
}

func (l layer) decompress(r io.Reader) (io.Reader, error) {
	switch l {
	case layerGzip:
		return gzip.NewReader(r)
	case layerBzip2:
		return bzip2.NewReader(r), nil
	case layerXZ:
		return xz.NewReader(r)
	case layerLZ4:
		return lz4.NewReader(r), nil
	default:
		return r, nil
	}
}

// baseNameWithoutCompression strips the compression suffix from a bare
// compressed file's path, giving the synthetic single member its name
// (".log.gz" -> ".log").
func baseNameWithoutCompression(name string) string {
	for _, suf := range []string{".gz", ".bz2", ".xz", ".lz4"} {
		if strings.HasSuffix(strings.ToLower(name), suf) {
			return name[:len(name)-len(suf)]
		}
	}
	return name
}
