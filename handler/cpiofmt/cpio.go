package cpiofmt

import (
	"bufio"
	"io"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/handler"
	"github.com/nabbar/arcvfs/pathutil"
)

func listCpio(r *bufio.Reader) ([]*entry.Info, error) {
	seenDirs := make(map[string]bool)
	var out []*entry.Info

	ensureParents := func(rel string) {
		parent := pathutil.Parent(rel)
		for parent != "" && !seenDirs[parent] {
			seenDirs[parent] = true
			out = append(out, entry.NewDir(pathutil.Base(parent), parent))
			parent = pathutil.Parent(parent)
		}
	}

	for {
		hdr, err := readNewcHeader(r)
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}
		if hdr == nil {
			break
		}

		rel := pathutil.Normalize(hdr.name)
		if rel == "" || rel == "." {
			if err := skipContent(r, hdr.fileSize); err != nil {
				return nil, ErrorOpen.Error(err)
			}
			continue
		}

		if hdr.isDir() {
			if !seenDirs[rel] {
				seenDirs[rel] = true
				out = append(out, entry.NewDir(pathutil.Base(rel), rel))
			}
			ensureParents(rel)
		} else {
			ensureParents(rel)
			info := entry.New(pathutil.Base(rel), rel, entry.File, hdr.name)
			info.Size = int64(hdr.fileSize)
			out = append(out, info)
		}

		if err := skipContent(r, hdr.fileSize); err != nil {
			return nil, ErrorOpen.Error(err)
		}
	}

	return out, nil
}

func readCpioMember(r *bufio.Reader, internalPath string) ([]byte, error) {
	for {
		hdr, err := readNewcHeader(r)
		if err != nil {
			return nil, ErrorOpen.Error(err)
		}
		if hdr == nil {
			return nil, handler.NotMyFormat(internalPath)
		}

		if hdr.name != internalPath || hdr.isDir() {
			if err := skipContent(r, hdr.fileSize); err != nil {
				return nil, ErrorOpen.Error(err)
			}
			continue
		}

		data := make([]byte, hdr.fileSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, handler.ExtractFailed(err)
		}
		if err := skipPad(r, int(hdr.fileSize)); err != nil {
			return nil, handler.ExtractFailed(err)
		}
		return data, nil
	}
}

func skipContent(r *bufio.Reader, size uint32) error {
	if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
		return err
	}
	return skipPad(r, int(size))
}
