/*
Package cache provides LRU memoization for grid construction and grid
decoration.

PURPOSE:
  Grid structure is expensive and stable; decoration is cheap and
  volatile. Each tier gets its own cache with its own bound so that a
  burst of hover-driven decoration churn can never evict the month
  structures underneath it.

REFERENTIAL IDENTITY:
  For a fixed cache instance, Get called twice with logically equal
  inputs returns the same pointer until the entry is evicted or the
  cache is cleared. Consumers rely on this for cheap change detection,
  so lookup-build-insert-evict runs as one critical section under the
  cache mutex.

KEYS:
  Keys are deterministic strings built from the semantically relevant
  inputs only - never from instance identity. Logically equal inputs
  must collide.
*/
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/warp/calendar-engine/calendar"
)

// DefaultGridEntries bounds the grid cache: three years of month
// navigation in both directions. Exceeding the bound evicts, never
// errors.
const DefaultGridEntries = 36

// =============================================================================
// GRID CACHE
// =============================================================================

// GridCache memoizes calendar.BuildGrid keyed by (year, month,
// week start, locale).
type GridCache struct {
	mu    sync.Mutex
	dates *calendar.Dates
	lru   *simplelru.LRU[string, *calendar.Grid]
}

// NewGridCache creates a grid cache bound to the given date primitives.
// maxEntries <= 0 uses DefaultGridEntries.
func NewGridCache(dates *calendar.Dates, maxEntries int) *GridCache {
	if maxEntries <= 0 {
		maxEntries = DefaultGridEntries
	}
	// simplelru only errors on a non-positive size, which is guarded above.
	lru, _ := simplelru.NewLRU[string, *calendar.Grid](maxEntries, nil)
	return &GridCache{dates: dates, lru: lru}
}

// Get returns the grid for the month containing monthDate. The key
// normalizes by calendar month, so any day-of-month input maps to the
// same cached grid. A hit promotes the entry to most-recently-used and
// returns the stored instance; a miss builds, stores, and evicts the
// least-recently-used entry if the cache is over its bound.
func (c *GridCache) Get(monthDate time.Time, weekStart int, locale string) *calendar.Grid {
	first := c.dates.StartOfMonth(monthDate)
	key := gridKey(first.Year(), first.Month(), weekStart, locale)

	c.mu.Lock()
	defer c.mu.Unlock()

	if grid, ok := c.lru.Get(key); ok {
		return grid
	}

	grid := calendar.BuildGrid(c.dates, first, weekStart, locale)
	c.lru.Add(key, grid)
	return grid
}

// Has reports whether the month's grid is currently cached, without
// touching recency order.
func (c *GridCache) Has(monthDate time.Time, weekStart int, locale string) bool {
	first := c.dates.StartOfMonth(monthDate)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Contains(gridKey(first.Year(), first.Month(), weekStart, locale))
}

// Size returns the number of cached grids.
func (c *GridCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear drops every entry. Intended for test teardown and explicit
// resets; evicted instances remain valid for holders of the reference.
func (c *GridCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// gridKey builds the month-level cache key. Shared with the highlight
// cache, whose keys embed the base grid's identity.
func gridKey(year int, month time.Month, weekStart int, locale string) string {
	return fmt.Sprintf("%04d-%02d|ws%d|%s", year, int(month), weekStart, locale)
}
