package gpu

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchResult holds the per-entry results of BatchProcess.
type BatchResult struct {
	names   []string
	results map[string]*Result
}

// Names returns the entry names in sorted order.
func (r *BatchResult) Names() []string {
	return slices.Clone(r.names)
}

// Get returns the result for name.
func (r *BatchResult) Get(name string) (*Result, bool) {
	res, ok := r.results[name]
	return res, ok
}

// Len returns the number of entries.
func (r *BatchResult) Len() int {
	return len(r.names)
}

// BatchEntry pairs an entry name with its result.
type BatchEntry struct {
	Name   string
	Result *Result
}

// Entries returns all results in sorted-name order.
func (r *BatchResult) Entries() []BatchEntry {
	out := make([]BatchEntry, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, BatchEntry{Name: name, Result: r.results[name]})
	}

	return out
}

// BatchProcess builds one buffer per entry with the same usage and options.
//
// Entries are independent and built concurrently, bounded by WithConcurrency.
// Each buffer is labeled with the entry name, prefixed by WithLabel when set.
// On the first failure the remaining unstarted entries are skipped, buffers
// already built are destroyed when they support it, and the error is returned.
func BatchProcess(device Device, entries map[string]any, usage Usage, opts ...BuildOption) (*BatchResult, error) {
	cfg, err := newBuildConfig(opts...)
	if err != nil {
		return nil, err
	}

	names := slices.Sorted(maps.Keys(entries))

	var (
		mu      sync.Mutex
		results = make(map[string]*Result, len(names))
		failed  bool
	)

	var g errgroup.Group
	g.SetLimit(cfg.concurrency)

	for _, name := range names {
		g.Go(func() error {
			mu.Lock()
			stop := failed
			mu.Unlock()
			if stop {
				return nil
			}

			res, err := build(device, entries[name], usage, entryLabel(cfg.label, name), cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = true
				return fmt.Errorf("entry %q: %w", name, err)
			}
			results[name] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, res := range results {
			if d, ok := res.Buffer.(Destroyer); ok {
				d.Destroy()
			}
		}

		return nil, err
	}

	return &BatchResult{names: names, results: results}, nil
}

func entryLabel(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "/" + name
}
