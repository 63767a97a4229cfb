package sqlsanitize

import (
	"sync"
	"sync/atomic"
)

// Cache is a bounded, insertion-frozen mapping from raw SQL text to its
// computed StatementInfo. It never evicts or mutates an entry once
// inserted; once it reaches capacity it stops memoizing and simply returns
// whatever the engine computes.
//
// Reads take the lock-free fast path: Get loads an immutable map snapshot
// atomically and never blocks behind the writer lock. Insertion is
// single-writer, guarded by mu, and always installs a fresh snapshot so
// concurrent readers see either the old absence or the new presence, never
// a partially-built map.
type Cache struct {
	capacity int
	data     atomic.Pointer[map[string]StatementInfo]
	mu       sync.Mutex
	metrics  *Metrics
}

// New builds a Cache governed by cfg. A zero-value or invalid Capacity
// falls back to DefaultConfig's.
func New(cfg Config) *Cache {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultConfig().Capacity
	}
	c := &Cache{capacity: capacity}
	empty := make(map[string]StatementInfo)
	c.data.Store(&empty)
	return c
}

// SetMetrics attaches a collector to c. Passing nil disables
// instrumentation for this cache (the default).
func (c *Cache) SetMetrics(m *Metrics) {
	c.metrics = m
}

// Len reports the number of entries currently memoized.
func (c *Cache) Len() int {
	return len(*c.data.Load())
}

// Get returns the cached StatementInfo for input if present; otherwise it
// runs Sanitize, attempts to memoize the result, and returns it either
// way. A nil/absent input — represented in Go by the empty string — maps
// to a default empty StatementInfo without engaging the cache at all.
func (c *Cache) Get(input string) StatementInfo {
	if input == "" {
		return StatementInfo{}
	}

	snapshot := *c.data.Load()
	if info, ok := snapshot[input]; ok {
		c.metrics.hit()
		return info
	}
	c.metrics.miss()

	result := Sanitize(input)

	if len(snapshot) >= c.capacity {
		// Capacity already reached as of our unsynchronized read: skip the
		// lock entirely, the cache is frozen.
		c.metrics.insertRejected()
		return result
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := *c.data.Load()
	if info, ok := current[input]; ok {
		// Another writer won the race and already inserted this input.
		return info
	}
	if len(current) >= c.capacity {
		c.metrics.insertRejected()
		return result
	}

	next := make(map[string]StatementInfo, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[input] = result
	c.data.Store(&next)
	c.metrics.inserted(len(next))

	return result
}

var defaultCache atomic.Pointer[Cache]

func init() {
	defaultCache.Store(New(DefaultConfig()))
}

// Get runs input through the process-wide default Cache. Most callers
// should use this; construct a private Cache with New only when isolation
// (e.g. in tests, or a second tenant with its own capacity) is needed.
func Get(input string) StatementInfo {
	return defaultCache.Load().Get(input)
}

// SetDefaultCapacity reconfigures the process-wide default Cache's
// capacity. Production callers should do this once at startup, if at all;
// it exists mainly so test harnesses can exercise the capacity invariant
// without depending on process-wide state left over from other tests.
func SetDefaultCapacity(n int) {
	defaultCache.Store(New(Config{Capacity: n}))
}
