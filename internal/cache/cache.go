// Package cache holds the last fetched pull requests and decides their freshness.
package cache

import (
	"sync"
	"time"

	"portfolio-contributions/internal/entities"
)

// State describes the freshness of the cached entry.
type State int

const (
	// StateEmpty means nothing was fetched yet.
	StateEmpty State = iota
	// StateFresh means the entry is younger than the TTL and was not invalidated.
	StateFresh
	// StateStale means the entry expired or was invalidated but is still kept as fallback.
	StateStale
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Entry is one successful fetch result. It is replaced wholesale, never mutated.
type Entry struct {
	PullRequests []entities.PullRequest
	FetchedAt    time.Time
}

// Snapshot is a consistent read of the cache.
type Snapshot struct {
	Entry      Entry
	State      State
	Generation uint64
}

// Option customises a Cache.
type Option func(*Cache)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache is a single-entry TTL cache with explicit invalidation.
//
// Every Invalidate bumps the generation. An entry stored with an older
// generation than the current one is stale regardless of its age, which keeps
// an invalidation that races an in-flight fetch from being lost.
type Cache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	entry    *Entry
	entryGen uint64
	gen      uint64
}

// New creates an empty cache with the given TTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the current entry and its state.
func (c *Cache) Get() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return Snapshot{State: StateEmpty, Generation: c.gen}
	}

	state := StateFresh
	if c.entryGen != c.gen || c.now().Sub(c.entry.FetchedAt) >= c.ttl {
		state = StateStale
	}
	return Snapshot{Entry: *c.entry, State: state, Generation: c.gen}
}

// Generation returns the current invalidation generation.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Set replaces the entry. gen is the generation observed before the data was
// fetched; if an invalidation happened since, the new entry stays stale.
// An entry from an older generation never replaces a newer one; Set reports
// whether entry was stored.
func (c *Cache) Set(entry Entry, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && gen < c.entryGen {
		return false
	}
	e := entry
	c.entry = &e
	c.entryGen = gen
	return true
}

// Invalidate marks the current entry stale so the next read refetches.
// The entry itself is kept as a fallback.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
}

// Now returns the current time of the cache clock.
func (c *Cache) Now() time.Time {
	return c.now()
}
