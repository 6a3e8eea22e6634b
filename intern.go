package pgfrag

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// rawCacheCapacity bounds the Raw-node LRU. Sized for memory stability
// rather than hit rate: most programs emit a small, repeated set of raw
// fragments (keywords, boilerplate clauses), so even a modest cap captures
// the steady-state working set.
const rawCacheCapacity = 10000

// rawCache interns Raw nodes by their exact text. Bounded LRU because Raw
// text is, in principle, unbounded (it is the escape hatch): an
// ever-growing or adversarially varied set of Raw calls must not leak
// memory.
var rawCache, _ = lru.New[string, *rawNode](rawCacheCapacity)

// templateCache interns the Fragment built from a single-piece template
// literal, keyed by the literal source string. Unbounded: template source
// strings come from call sites fixed at compile time, so in practice this
// set is small and stable for the life of the process — the same tradeoff
// skillian-sqlstream's sliceCaches = sync.Map{} makes for its own
// process-wide, type-keyed cache.
var templateCache sync.Map // map[string]Fragment

// internGroup deduplicates concurrent first-use construction for both
// caches above, so two goroutines racing to build the same Raw or template
// fragment block behind one constructor call instead of doing redundant
// work. This is the idiomatic tool for the "double-check, construct, insert"
// pattern the concurrency model calls for.
var internGroup singleflight.Group

// internRaw returns the interned *rawNode for text, constructing and
// caching it on first use.
func internRaw(text string) *rawNode {
	if n, ok := rawCache.Get(text); ok {
		return n
	}
	v, _, _ := internGroup.Do("raw:"+text, func() (any, error) {
		if n, ok := rawCache.Get(text); ok {
			return n, nil
		}
		n := &rawNode{text: text}
		rawCache.Add(text, n)
		return n, nil
	})
	return v.(*rawNode)
}

// internTemplate returns the interned Fragment for a single-piece template
// source string, constructing it with build on first use.
func internTemplate(source string, build func() Fragment) Fragment {
	if v, ok := templateCache.Load(source); ok {
		return v.(Fragment)
	}
	v, _, _ := internGroup.Do("tmpl:"+source, func() (any, error) {
		if v, ok := templateCache.Load(source); ok {
			return v.(Fragment), nil
		}
		f := build()
		templateCache.Store(source, f)
		return f, nil
	})
	return v.(Fragment)
}

// Singletons reused everywhere Literal() and Join() would otherwise
// allocate a fresh node for the same constant.
var (
	// TRUE is the SQL boolean literal TRUE.
	TRUE Fragment = &rawNode{text: "TRUE"}
	// FALSE is the SQL boolean literal FALSE.
	FALSE Fragment = &rawNode{text: "FALSE"}
	// NULL is the SQL literal NULL.
	NULL Fragment = &rawNode{text: "NULL"}
	// BLANK is the empty fragment: an empty Query, which renders to "".
	BLANK Fragment = &queryNode{nodes: nil}
)
