package suggest

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/uniserve/pkg/dictionary"
	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/charmbracelet/log"
)

// ErrNoLoader is returned by Reload on a resolver built around a fixed table.
var ErrNoLoader = errors.New("resolver has no loader")

// LoadFunc builds a complete table.
type LoadFunc func() (*symbols.Table, error)

// Options configures a Resolver.
type Options struct {
	Match MatchOptions
	// CacheSize bounds the result cache; zero disables it.
	CacheSize int
}

// Resolver answers queries against the current table. The table pointer is
// swapped whole on reload, so concurrent Resolve calls always see either the
// old or the new table.
type Resolver struct {
	table      atomic.Pointer[symbols.Table]
	generation atomic.Uint64
	load       LoadFunc
	opts       Options
	cache      *QueryCache
	reloadMu   sync.Mutex
	lastLoad   atomic.Int64
}

// NewResolver creates a resolver that builds tables with load. Call
// Initialize (or Reload) before the first query.
func NewResolver(load LoadFunc, opts Options) *Resolver {
	r := &Resolver{load: load, opts: opts}
	if opts.CacheSize > 0 {
		r.cache = NewQueryCache(opts.CacheSize)
	}
	return r
}

// NewLoaderResolver wires a dictionary loader into a resolver.
func NewLoaderResolver(loader *dictionary.Loader, opts Options) *Resolver {
	return NewResolver(func() (*symbols.Table, error) {
		return loader.Load(), nil
	}, opts)
}

// NewStaticResolver serves a fixed table. Reload is not supported.
func NewStaticResolver(t *symbols.Table, opts Options) *Resolver {
	r := NewResolver(nil, opts)
	r.swap(t)
	return r
}

// Initialize performs the first load.
func (r *Resolver) Initialize() error {
	return r.Reload()
}

// Reload builds a new table and swaps it in. On failure the previous table
// stays in place.
func (r *Resolver) Reload() error {
	if r.load == nil {
		return ErrNoLoader
	}
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	start := time.Now()
	t, err := r.load()
	if err != nil {
		return fmt.Errorf("reload symbol table: %w", err)
	}
	if t == nil {
		return fmt.Errorf("reload symbol table: loader returned no table")
	}
	took := time.Since(start)
	r.lastLoad.Store(int64(took))
	r.swap(t)
	log.Debugf("Symbol table swapped in: %d entries in %v", t.Len(), took)
	return nil
}

func (r *Resolver) swap(t *symbols.Table) {
	r.table.Store(t)
	r.generation.Add(1)
	if r.cache != nil {
		r.cache.Reset()
	}
}

// Table returns the table currently served.
func (r *Resolver) Table() *symbols.Table {
	return r.table.Load()
}

// Match runs only the ranking step against the current table.
func (r *Resolver) Match(query string) []Match {
	return FindMatches(query, r.table.Load(), r.opts.Match)
}

// Resolve returns the ordered candidates for query.
func (r *Resolver) Resolve(query string) []Candidate {
	gen := r.generation.Load()
	t := r.table.Load()
	if t == nil {
		return nil
	}
	if r.cache != nil {
		if cands, ok := r.cache.Get(gen, query); ok {
			return cands
		}
	}
	cands := Enumerate(query, t, r.opts.Match)
	if r.cache != nil {
		r.cache.Put(gen, query, cands)
	}
	return cands
}

// Stats returns statistics about the served table.
func (r *Resolver) Stats() map[string]int {
	stats := map[string]int{
		"generation": int(r.generation.Load()),
		"loadMillis": int(time.Duration(r.lastLoad.Load()).Milliseconds()),
	}
	if t := r.table.Load(); t != nil {
		stats["entries"] = t.Len()
		stats["shortcuts"] = t.Shortcuts()
		if t.IsDegenerate() {
			stats["degenerate"] = 1
		} else {
			stats["degenerate"] = 0
		}
	}
	if r.cache != nil {
		for k, v := range r.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
