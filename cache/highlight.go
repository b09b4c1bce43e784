/*
highlight.go - Memoized grid decoration

PURPOSE:
  Caches calendar.Decorate output keyed by the base grid's identity
  plus a canonical signature of the decoration parameters. Re-supplying
  the same logical selection state - even with disabled dates listed in
  a different order - must hit the same entry.

FUNCTION PREDICATES:
  A DisabledFunc makes the parameters opaque: function identity is not
  a reliable cache key. Calls carrying one bypass the cache entirely -
  recomputed every time, never stored.
*/
package cache

import (
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/warp/calendar-engine/calendar"
)

// DefaultHighlightEntries bounds the highlight cache. Decoration churn
// is higher than month navigation (every selection and hover change
// produces a new parameter set), so the bound is wider than the grid
// cache's.
const DefaultHighlightEntries = 64

// =============================================================================
// HIGHLIGHT CACHE
// =============================================================================

// HighlightCache memoizes calendar.Decorate over a base grid and a
// parameter set.
type HighlightCache struct {
	mu  sync.Mutex
	lru *simplelru.LRU[string, *calendar.DecoratedGrid]
}

// NewHighlightCache creates a highlight cache.
// maxEntries <= 0 uses DefaultHighlightEntries.
func NewHighlightCache(maxEntries int) *HighlightCache {
	if maxEntries <= 0 {
		maxEntries = DefaultHighlightEntries
	}
	lru, _ := simplelru.NewLRU[string, *calendar.DecoratedGrid](maxEntries, nil)
	return &HighlightCache{lru: lru}
}

// Get returns the decorated grid for the given selection state. A hit
// promotes the entry and returns the stored instance; a miss decorates,
// stores, and evicts the least-recently-used entry if over the bound.
// Parameter sets carrying a DisabledFunc are never cached.
func (c *HighlightCache) Get(grid *calendar.Grid, p calendar.HighlightParams) *calendar.DecoratedGrid {
	if p.DisabledFunc != nil {
		return calendar.Decorate(grid, p)
	}

	key := highlightKey(grid, p)

	c.mu.Lock()
	defer c.mu.Unlock()

	if dg, ok := c.lru.Get(key); ok {
		return dg
	}

	dg := calendar.Decorate(grid, p)
	c.lru.Add(key, dg)
	return dg
}

// Size returns the number of cached decorated grids.
func (c *HighlightCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear drops every entry.
func (c *HighlightCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// =============================================================================
// KEY CONSTRUCTION
// =============================================================================

// highlightKey concatenates the base grid's key with a canonical
// signature of every cacheable parameter. Unset dates encode as the
// literal "null" so that "no start" and "start on day null-alike" can
// never collide.
func highlightKey(grid *calendar.Grid, p calendar.HighlightParams) string {
	var b strings.Builder
	b.WriteString(gridKey(grid.Month.Year, grid.Month.Month, grid.WeekStart, grid.Locale))
	for _, iso := range []string{p.Start, p.End, p.MinDate, p.MaxDate, p.Hover} {
		b.WriteByte('|')
		b.WriteString(isoOrNull(iso))
	}
	b.WriteByte('|')
	b.WriteString(disabledSignature(p.DisabledDates))
	b.WriteString("|mr=")
	b.WriteString(boolSig(p.MultiRange))
	b.WriteString("|ss=")
	b.WriteString(boolSig(p.SelectingStart))
	return b.String()
}

// disabledSignature canonicalizes the disabled-dates list. Sorting a
// copy makes the signature order-independent: two arrays holding the
// same dates in different orders hit the same entry.
func disabledSignature(dates []string) string {
	if len(dates) == 0 {
		return "none"
	}
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func isoOrNull(iso string) string {
	if iso == "" {
		return "null"
	}
	return iso
}

func boolSig(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
