package handler

import (
	"github.com/nabbar/arcvfs/entry"
)

// Handler is the uniform contract every format reader implements:
// plain directories, ZIP, RAR, the tar family, 7z, cpio/deb, LZH.
// The registry holds handlers behind this interface only; it never
// type-switches on a concrete reader.
type Handler interface {
	// Name identifies the handler for logging and diagnostics, e.g. "zip".
	Name() string

	// SupportedExtensions returns this handler's recognized
	// extensions, lowercase and dot-prefixed.
	SupportedExtensions() []string

	// CanHandle tolerantly recognizes path by extension plus, when
	// cheap, a magic-byte sniff of the file at path.
	CanHandle(path string) bool

	// CanHandleBytes is the in-memory equivalent of CanHandle, used by
	// the processor to decide whether a nested archive's bytes can
	// stay in memory or must be spilled to a temp file.
	CanHandleBytes(data []byte, hintPath string) bool

	// ListEntries returns the direct children of path. The filesystem
	// handler accepts any directory; the archive readers treat path as
	// the archive file itself and return only the archive's top-level
	// members; a path naming a directory inside an archive is not
	// resolved.
	ListEntries(path string) ([]*entry.Info, error)

	// ListAllEntries returns every entry at or beneath path,
	// recursively; this is the primary enumeration the manager uses.
	ListAllEntries(path string) ([]*entry.Info, error)

	// ListAllEntriesFromBytes is the in-memory equivalent of
	// ListAllEntries, used when a nested archive's bytes were kept in
	// memory rather than spilled to a temp file.
	ListAllEntriesFromBytes(data []byte) ([]*entry.Info, error)

	// ReadArchiveFile returns one member's full octet contents.
	// internalPath is always a NameInArchive value previously handed
	// out by this same handler.
	ReadArchiveFile(archivePath, internalPath string) ([]byte, error)

	// ReadFileFromBytes is the in-memory equivalent of
	// ReadArchiveFile.
	ReadFileFromBytes(data []byte, internalPath string) ([]byte, error)
}

// TempFileSaver is implemented by handlers whose ListAllEntries /
// ReadArchiveFile require random access and therefore need their
// source bytes spilled to disk before the archive processor can hand
// them a usable path. Handlers that can work purely off an in-memory
// []byte (sequential readers like tar) do not need it.
type TempFileSaver interface {
	// SaveToTempFile writes data to a new temp file named by the
	// default convention (see internal/tempstore) and returns its path.
	SaveToTempFile(data []byte, extension string) (string, error)
}
