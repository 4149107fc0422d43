// Package query memoizes upstream list/detail fetches under keys built
// from the resource name plus the active filter parameters, and keeps
// those entries consistent across mutations. It is the only shared
// mutable state in the dashboard.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"tutorboard/internal/metrics"
)

// Freshness is how long a cached entry answers repeat lookups without
// touching the upstream API. It doubles as the debounce window for
// search-as-you-type: identical keys requested in quick succession
// collapse into a single upstream fetch.
const Freshness = 500 * time.Millisecond

const keySep = "\x1f"

// Key identifies one cached fetch: resource name first, then the
// parameter tuple. Changing any parameter yields a different key.
type Key []string

func K(resource string, params ...string) Key {
	return append(Key{resource}, params...)
}

func (k Key) Resource() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

func (k Key) String() string { return strings.Join(k, keySep) }

type entry struct {
	value     any
	fetchedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	fresh   time.Duration
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		fresh:   Freshness,
		now:     time.Now,
	}
}

// Get returns the cached value for key when it is still fresh,
// otherwise runs fetch. Last-key-wins: if the key is invalidated while
// fetch is in flight, the result is returned to this caller but NOT
// stored, so a superseded response can never overwrite newer data.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	ks := key.String()

	c.mu.Lock()
	if e, ok := c.entries[ks]; ok && c.now().Sub(e.fetchedAt) < c.fresh {
		v := e.value.(T)
		c.mu.Unlock()
		metrics.CacheHits.Inc()
		return v, nil
	}
	gen := c.gens[ks]
	c.mu.Unlock()
	metrics.CacheMisses.Inc()

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if c.gens[ks] == gen {
		c.entries[ks] = &entry{value: v, fetchedAt: c.now()}
	} else {
		metrics.CacheStaleDrops.Inc()
	}
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops one exact key.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drop(key.String())
}

// InvalidateResource drops every key belonging to the resource. Coarse
// but safe: list keys vary by search/page/limit and any of them may
// contain the mutated row.
func (c *Cache) InvalidateResource(resource string) {
	prefix := resource + keySep
	c.mu.Lock()
	defer c.mu.Unlock()
	for ks := range c.entries {
		if ks == resource || strings.HasPrefix(ks, prefix) {
			c.drop(ks)
		}
	}
	// bump in-flight fetches that have no entry yet
	for ks := range c.gens {
		if ks == resource || strings.HasPrefix(ks, prefix) {
			c.gens[ks]++
		}
	}
}

// Mutate runs fn and, on success, invalidates the mutated resource plus
// any extra keys the caller knows are affected (e.g. a detail entry of
// a related resource).
func (c *Cache) Mutate(ctx context.Context, resource string, fn func(context.Context) error, extra ...Key) error {
	if err := fn(ctx); err != nil {
		return err
	}
	c.InvalidateResource(resource)
	for _, k := range extra {
		c.Invalidate(k)
	}
	return nil
}

// Clear wipes the whole cache. Called on logout so no display state
// survives the session.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ks := range c.entries {
		c.drop(ks)
	}
	for ks := range c.gens {
		c.gens[ks]++
	}
}

// drop must be called with mu held.
func (c *Cache) drop(ks string) {
	delete(c.entries, ks)
	c.gens[ks]++
}
