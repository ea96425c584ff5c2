package fsys

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/pathutil"
)

// walkSequential recursively walks base, rebasing every discovered
// entry's RelativePath under prefix. It is the non-pooled path, used
// directly and as the per-worker unit of work in walkParallel.
func (h *Handler) walkSequential(base, prefix string) ([]*entry.Info, error) {
	dirEntries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}

	out := make([]*entry.Info, 0, len(dirEntries))
	for _, de := range dirEntries {
		rel := pathutil.Join(prefix, de.Name())
		info, err := statEntry(base, de.Name())
		if err != nil {
			continue
		}
		info.RelativePath = rel
		info.NameInArchive = rel
		out = append(out, info)

		if info.Type == entry.Directory {
			children, err := h.walkSequential(filepath.Join(base, de.Name()), rel)
			if err == nil {
				out = append(out, children...)
			}
		}
	}

	sortEntries(out)
	return out, nil
}

// walkParallel partitions the top-level subdirectories of base across
// a bounded worker pool (spec.md §4.2.1, §5): the pool joins before
// this function returns, and workers never touch shared state -- each
// returns its own slice, merged here after the join.
func (h *Handler) walkParallel(base string, dirEntries []os.DirEntry) ([]*entry.Info, error) {
	workers := h.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > MaxWorkers {
			workers = MaxWorkers
		}
		if workers < 1 {
			workers = 1
		}
	}

	type job struct {
		name string
		dir  bool
	}

	jobs := make(chan job)
	results := make(chan []*entry.Info, len(dirEntries))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if j.dir {
					children, err := h.walkSequential(filepath.Join(base, j.name), j.name)
					info, serr := statEntry(base, j.name)
					var batch []*entry.Info
					if serr == nil {
						batch = append(batch, info)
					}
					if err == nil {
						batch = append(batch, children...)
					}
					results <- batch
				} else {
					info, err := statEntry(base, j.name)
					if err == nil {
						results <- []*entry.Info{info}
					} else {
						results <- nil
					}
				}
			}
		}()
	}

	go func() {
		for _, de := range dirEntries {
			jobs <- job{name: de.Name(), dir: de.IsDir()}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []*entry.Info
	for batch := range results {
		out = append(out, batch...)
	}

	sortEntries(out)
	return out, nil
}
