package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

type cachedResult struct {
	generation uint64
	candidates []Candidate
	accessTime int64
}

// QueryCache keeps recent Resolve results. Entries are tagged with the table
// generation they were computed against and are ignored once it changes.
type QueryCache struct {
	results     map[string]*cachedResult
	accessCount int64
	hits        int64
	maxEntries  int
	mu          sync.Mutex
}

// NewQueryCache creates a cache bounded to maxEntries queries.
func NewQueryCache(maxEntries int) *QueryCache {
	return &QueryCache{
		results:    make(map[string]*cachedResult, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached candidates for query.
func (qc *QueryCache) Get(generation uint64, query string) ([]Candidate, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	r, ok := qc.results[query]
	if !ok {
		return nil, false
	}
	if r.generation != generation {
		delete(qc.results, query)
		return nil, false
	}
	r.accessTime = qc.nextAccessTime()
	qc.hits++
	return append([]Candidate(nil), r.candidates...), true
}

// Put stores candidates for query, evicting the least recently used entry
// when full.
func (qc *QueryCache) Put(generation uint64, query string, candidates []Candidate) {
	if qc.maxEntries <= 0 {
		return
	}
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if _, exists := qc.results[query]; !exists && len(qc.results) >= qc.maxEntries {
		qc.evictLRU()
	}
	qc.results[query] = &cachedResult{
		generation: generation,
		candidates: append([]Candidate(nil), candidates...),
		accessTime: qc.nextAccessTime(),
	}
}

// Reset drops every cached result.
func (qc *QueryCache) Reset() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.results = make(map[string]*cachedResult, qc.maxEntries)
}

func (qc *QueryCache) Stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	return map[string]int{
		"cachedQueries":    len(qc.results),
		"maxCachedQueries": qc.maxEntries,
		"cacheHits":        int(qc.hits),
	}
}

func (qc *QueryCache) nextAccessTime() int64 {
	qc.accessCount++
	return qc.accessCount
}

func (qc *QueryCache) evictLRU() {
	var oldestQuery string
	var oldestTime int64 = math.MaxInt64

	for query, r := range qc.results {
		if r.accessTime < oldestTime {
			oldestTime = r.accessTime
			oldestQuery = query
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(qc.results, oldestQuery)
		log.Debugf("Evicted query '%s' from cache", oldestQuery)
	}
}
