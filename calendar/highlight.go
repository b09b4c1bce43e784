/*
highlight.go - Grid decoration (selection / hover / disabled flags)

PURPOSE:
  Layers volatile UI state on top of a stable month grid. The grid
  structure (day identities, padding, weekday positions) changes only
  when the visible month changes; decoration changes on every click and
  hover. Keeping them separate is what makes the two-tier cache in the
  cache package worthwhile.

RULES:
  - Padding cells carry all decoration flags false, unconditionally.
  - Range membership compares ISO strings lexicographically; the format
    is fixed-width and zero-padded, so string order is date order.
  - The hover preview is order-normalized: hovering backward from the
    selection start still produces a valid preview range.
*/
package calendar

import "time"

// =============================================================================
// PARAMETERS
// =============================================================================

// HighlightParams describes the selection state to decorate a grid with.
// All date fields are ISO strings (YYYY-MM-DD); empty string means unset.
type HighlightParams struct {
	// Start and End bound the committed selection.
	Start string
	End   string

	// MinDate and MaxDate bound the selectable window; days outside it
	// are disabled.
	MinDate string
	MaxDate string

	// Hover is the day currently under the pointer, used for the
	// preview range while the user picks an end date.
	Hover string

	// DisabledDates lists individually unselectable days.
	DisabledDates []string

	// DisabledFunc is an opaque per-day predicate. Function identity is
	// not a usable cache key, so supplying one forces the highlight
	// cache to recompute on every call.
	DisabledFunc func(time.Time) bool

	// MultiRange marks the selection as part of a multi-range set.
	MultiRange bool

	// SelectingStart is true while the user is choosing a new start
	// date; the hover preview is suppressed in that phase.
	SelectingStart bool
}

// =============================================================================
// DECORATED GRID
// =============================================================================

// DecoratedCell is a grid cell plus its selection/hover/disabled flags.
type DecoratedCell struct {
	Cell

	SelectedStart bool
	SelectedEnd   bool
	InRange       bool
	InHoverRange  bool
	Disabled      bool
}

// DecoratedGrid pairs a base grid with its decorated cells. Base is the
// shared grid instance the decoration was computed from.
type DecoratedGrid struct {
	Base  *Grid
	Weeks [][]DecoratedCell
	Cells []DecoratedCell
}

// =============================================================================
// DECORATION
// =============================================================================

// Decorate computes a decorated grid for the given selection state.
// Pure, no caching; see cache.HighlightCache for the memoized entry
// point.
func Decorate(grid *Grid, p HighlightParams) *DecoratedGrid {
	hoverLo, hoverHi, hoverActive := hoverRange(p)

	cells := make([]DecoratedCell, 0, GridCells)
	for _, c := range grid.Cells {
		dc := DecoratedCell{Cell: c}
		if c.InMonth {
			dc.SelectedStart = p.Start != "" && c.ISO == p.Start
			dc.SelectedEnd = p.End != "" && c.ISO == p.End
			dc.InRange = p.Start != "" && p.End != "" && p.Start <= c.ISO && c.ISO <= p.End
			dc.InHoverRange = hoverActive && hoverLo <= c.ISO && c.ISO <= hoverHi
			dc.Disabled = isDisabled(c, p)
		}
		cells = append(cells, dc)
	}

	weeks := make([][]DecoratedCell, GridWeeks)
	for w := 0; w < GridWeeks; w++ {
		weeks[w] = cells[w*DaysPerWeek : (w+1)*DaysPerWeek : (w+1)*DaysPerWeek]
	}

	return &DecoratedGrid{Base: grid, Weeks: weeks, Cells: cells}
}

// hoverRange computes the preview range once per decoration pass. The
// preview is off while the user is still picking a start date, or when
// either endpoint of the preview is missing.
func hoverRange(p HighlightParams) (lo, hi string, active bool) {
	if p.SelectingStart || p.Start == "" || p.Hover == "" {
		return "", "", false
	}
	if p.Hover < p.Start {
		return p.Hover, p.Start, true
	}
	return p.Start, p.Hover, true
}

func isDisabled(c Cell, p HighlightParams) bool {
	if p.MinDate != "" && c.ISO < p.MinDate {
		return true
	}
	if p.MaxDate != "" && c.ISO > p.MaxDate {
		return true
	}
	for _, iso := range p.DisabledDates {
		if c.ISO == iso {
			return true
		}
	}
	if p.DisabledFunc != nil && p.DisabledFunc(c.Date) {
		return true
	}
	return false
}
