package suggest

import (
	"errors"
	"sync"
	"testing"

	"github.com/bastiangx/uniserve/pkg/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticResolver(t *testing.T) {
	r := NewStaticResolver(fixtureTable(), Options{})

	got := r.Resolve("black star")
	require.NotEmpty(t, got)
	assert.Equal(t, "★", got[0].Char)
	assert.ErrorIs(t, r.Reload(), ErrNoLoader)

	m := r.Match("black star")
	require.NotEmpty(t, m)
	assert.Equal(t, TierExact, m[0].Tier)
}

func TestResolverReloadSwapsTable(t *testing.T) {
	calls := 0
	r := NewResolver(func() (*symbols.Table, error) {
		calls++
		if calls == 1 {
			return fixtureTable(), nil
		}
		return symbols.Diagnostic("failed to load custom file c.json: boom"), nil
	}, Options{CacheSize: 8})

	assert.Nil(t, r.Resolve("star"))
	require.NoError(t, r.Initialize())
	first := r.Table()
	assert.Equal(t, "✡", r.Resolve("star")[0].Char)

	require.NoError(t, r.Reload())
	assert.NotSame(t, first, r.Table())
	got := r.Resolve("star")
	require.Len(t, got, 1)
	assert.Equal(t, symbols.DiagnosticChar, got[0].Char)
	assert.Equal(t, 1, r.Stats()["degenerate"])
}

func TestResolverFailedReloadKeepsTable(t *testing.T) {
	fail := false
	r := NewResolver(func() (*symbols.Table, error) {
		if fail {
			return nil, errors.New("disk on fire")
		}
		return fixtureTable(), nil
	}, Options{})
	require.NoError(t, r.Initialize())
	before := r.Table()

	fail = true
	err := r.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Same(t, before, r.Table())
}

func TestResolverCache(t *testing.T) {
	r := NewStaticResolver(fixtureTable(), Options{CacheSize: 2})

	first := r.Resolve("heart")
	again := r.Resolve("heart")
	assert.Equal(t, first, again)
	assert.Equal(t, 1, r.Stats()["cacheHits"])

	// mutating a returned slice does not leak into the cache
	again[0].Char = "?"
	assert.Equal(t, first, r.Resolve("heart"))
}

func TestResolverConcurrentResolveDuringReload(t *testing.T) {
	r := NewResolver(func() (*symbols.Table, error) {
		return fixtureTable(), nil
	}, Options{CacheSize: 16})
	require.NoError(t, r.Initialize())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := r.Resolve("black star")
				if assert.NotEmpty(t, got) {
					assert.Equal(t, "★", got[0].Char)
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Reload())
	}
	wg.Wait()
}

func TestQueryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	qc := NewQueryCache(2)
	qc.Put(1, "a", []Candidate{{Char: "a"}})
	qc.Put(1, "b", []Candidate{{Char: "b"}})
	_, _ = qc.Get(1, "a")
	qc.Put(1, "c", []Candidate{{Char: "c"}})

	_, okA := qc.Get(1, "a")
	_, okB := qc.Get(1, "b")
	_, okC := qc.Get(1, "c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)

	_, stale := qc.Get(2, "a")
	assert.False(t, stale)
}
