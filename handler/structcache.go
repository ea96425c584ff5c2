package handler

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/nabbar/arcvfs/entry"
)

// DigestKey derives a StructureCache key for an in-memory archive
// source, so bytes-based sources get the same "parse once" behavior
// as path-based ones. The key is an FNV-64a hash of all of data.
func DigestKey(data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return "bytes:" + strconv.FormatUint(h.Sum64(), 16)
}

// StructureCache memoizes a parsed member listing per archive source,
// so list_all_entries only walks an archive's central directory once
// (spec.md §4.2.2: "on the first list_all_entries(archive_path) the
// full member listing is parsed once; subsequent calls serve from the
// cache"). Keyed by archive path for on-disk sources and by a content
// digest for in-memory sources; embedded by every archive reader.
//
// Entries are cloned on Get so a caller mutating the returned slice
// (e.g. the processor rebasing RelativePath under a parent archive's
// prefix) never corrupts the cached copy.
type StructureCache struct {
	mu    sync.Mutex
	byKey map[string][]*entry.Info
}

// Get returns a fresh clone of the cached entry list for key, if present.
func (c *StructureCache) Get(key string) ([]*entry.Info, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byKey == nil {
		return nil, false
	}
	v, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return cloneAll(v), true
}

// Put stores a clone of v for key.
func (c *StructureCache) Put(key string, v []*entry.Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byKey == nil {
		c.byKey = make(map[string][]*entry.Info)
	}
	c.byKey[key] = cloneAll(v)
}

func cloneAll(in []*entry.Info) []*entry.Info {
	out := make([]*entry.Info, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
