package entry

import (
	"time"

	"github.com/nabbar/arcvfs/pathutil"
)

// Info is the single entity type in the cache: a file, a directory,
// or an archive (itself possibly nested inside another archive).
type Info struct {
	// Name is the display name, possibly repaired from NameInArchive
	// (e.g. a ZIP member name re-decoded from cp932).
	Name string
	// RelativePath is slash-delimited, never with a leading or
	// trailing slash; "" keys the root entry.
	RelativePath string
	// NameInArchive is the original name the containing handler needs
	// verbatim to re-read this member. It is never modified after
	// creation: repairing Name never rewrites it.
	NameInArchive string
	Type          Kind
	Status        Status
	Size          int64
	ModTime       *time.Time
	CreTime       *time.Time
	Hidden        bool
	// Cache is populated only for Type == Archive, by the processor.
	Cache *Cache
	// BrokenReason carries a short human-readable cause when
	// Status == Broken; empty otherwise. Supplements the status flag
	// with the diagnostic the original tool surfaced in its manager
	// dump (see SPEC_FULL.md §5).
	BrokenReason string
}

// New is the sole sanctioned constructor for Info. Handlers and the
// manager never build an Info by any other path; relPath is always
// normalized here, so no downstream code has to guess whether it
// already is.
func New(name, relPath string, typ Kind, nameInArchive string) *Info {
	return &Info{
		Name:          name,
		RelativePath:  pathutil.Normalize(relPath),
		NameInArchive: nameInArchive,
		Type:          typ,
		Status:        Ready,
	}
}

// NewDir is a convenience wrapper over New for Directory entries.
func NewDir(name, relPath string) *Info {
	return New(name, relPath, Directory, relPath)
}

// NewArchive is a convenience wrapper over New for Archive entries,
// created with Status Scanning until the processor finishes
// materializing it.
func NewArchive(name, relPath, nameInArchive string) *Info {
	i := New(name, relPath, Archive, nameInArchive)
	i.Status = Scanning
	return i
}

// IsContainer reports whether children can be addressed beneath this
// entry's RelativePath (directories and archives; not plain files).
func (i *Info) IsContainer() bool {
	return i.Type == Directory || i.Type == Archive
}

// Clone returns a deep copy of i, safe to hand out from a read-only
// cache snapshot (GetEntryCache) without letting the caller mutate
// the manager's internal state.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	out := *i
	if i.ModTime != nil {
		t := *i.ModTime
		out.ModTime = &t
	}
	if i.CreTime != nil {
		t := *i.CreTime
		out.CreTime = &t
	}
	if i.Cache != nil {
		c := *i.Cache
		if i.Cache.Bytes != nil {
			c.Bytes = append([]byte(nil), i.Cache.Bytes...)
		}
		out.Cache = &c
	}
	return &out
}

// Key returns the cache key for this entry: RelativePath with any
// trailing slash stripped.
func (i *Info) Key() string {
	return pathutil.Normalize(i.RelativePath)
}
