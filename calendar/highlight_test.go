package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-engine/calendar"
)

// februaryGrid is the shared base grid for decoration tests:
// February 2026, Sunday start, no leading padding.
func februaryGrid(t *testing.T, d *calendar.Dates) *calendar.Grid {
	t.Helper()
	return calendar.BuildGrid(d, day(d, "2026-02-01"), calendar.WeekStartSunday, "en-US")
}

func cellByISO(t *testing.T, dg *calendar.DecoratedGrid, iso string) calendar.DecoratedCell {
	t.Helper()
	for _, c := range dg.Cells {
		if c.ISO == iso {
			return c
		}
	}
	t.Fatalf("cell %s not in grid", iso)
	return calendar.DecoratedCell{}
}

// =============================================================================
// SELECTION FLAGS
// =============================================================================

func TestDecorate_SelectionRange(t *testing.T) {
	d := tokyoDates(t)
	grid := februaryGrid(t, d)

	dg := calendar.Decorate(grid, calendar.HighlightParams{
		Start: "2026-02-10",
		End:   "2026-02-14",
	})

	start := cellByISO(t, dg, "2026-02-10")
	assert.True(t, start.SelectedStart)
	assert.False(t, start.SelectedEnd)
	assert.True(t, start.InRange)

	end := cellByISO(t, dg, "2026-02-14")
	assert.True(t, end.SelectedEnd)
	assert.True(t, end.InRange)

	mid := cellByISO(t, dg, "2026-02-12")
	assert.False(t, mid.SelectedStart)
	assert.False(t, mid.SelectedEnd)
	assert.True(t, mid.InRange)

	outside := cellByISO(t, dg, "2026-02-15")
	assert.False(t, outside.InRange)
}

func TestDecorate_SingleDaySelection(t *testing.T) {
	d := tokyoDates(t)

	dg := calendar.Decorate(februaryGrid(t, d), calendar.HighlightParams{
		Start: "2026-02-10",
		End:   "2026-02-10",
	})

	c := cellByISO(t, dg, "2026-02-10")
	assert.True(t, c.SelectedStart)
	assert.True(t, c.SelectedEnd)
	assert.True(t, c.InRange)
}

func TestDecorate_NoRangeWithoutBothEndpoints(t *testing.T) {
	d := tokyoDates(t)

	dg := calendar.Decorate(februaryGrid(t, d), calendar.HighlightParams{Start: "2026-02-10"})

	assert.True(t, cellByISO(t, dg, "2026-02-10").SelectedStart)
	for _, c := range dg.Cells {
		assert.False(t, c.InRange, c.ISO)
	}
}

// =============================================================================
// PADDING CELLS
// =============================================================================

func TestDecorate_PaddingCellsNeverDecorated(t *testing.T) {
	// GIVEN: a range and hover state covering the trailing March padding
	// WHEN: decorating
	// THEN: padding cells carry every flag false, unconditionally
	d := tokyoDates(t)

	dg := calendar.Decorate(februaryGrid(t, d), calendar.HighlightParams{
		Start:         "2026-02-25",
		End:           "2026-03-10",
		Hover:         "2026-03-05",
		MinDate:       "2026-02-01",
		MaxDate:       "2026-02-20",
		DisabledDates: []string{"2026-03-02"},
	})

	for _, c := range dg.Cells {
		if c.InMonth {
			continue
		}
		assert.False(t, c.SelectedStart, c.ISO)
		assert.False(t, c.SelectedEnd, c.ISO)
		assert.False(t, c.InRange, c.ISO)
		assert.False(t, c.InHoverRange, c.ISO)
		assert.False(t, c.Disabled, c.ISO)
	}
}

// =============================================================================
// HOVER PREVIEW
// =============================================================================

func TestDecorate_HoverPreview(t *testing.T) {
	d := tokyoDates(t)
	grid := februaryGrid(t, d)

	tests := []struct {
		name           string
		params         calendar.HighlightParams
		inPreview      []string
		notInPreview   []string
	}{
		{
			name:         "forward hover",
			params:       calendar.HighlightParams{Start: "2026-02-10", Hover: "2026-02-13"},
			inPreview:    []string{"2026-02-10", "2026-02-11", "2026-02-13"},
			notInPreview: []string{"2026-02-09", "2026-02-14"},
		},
		{
			name:         "backward hover is order-normalized",
			params:       calendar.HighlightParams{Start: "2026-02-10", Hover: "2026-02-06"},
			inPreview:    []string{"2026-02-06", "2026-02-08", "2026-02-10"},
			notInPreview: []string{"2026-02-05", "2026-02-11"},
		},
		{
			name:         "suppressed while selecting start",
			params:       calendar.HighlightParams{Start: "2026-02-10", Hover: "2026-02-13", SelectingStart: true},
			notInPreview: []string{"2026-02-10", "2026-02-11", "2026-02-13"},
		},
		{
			name:         "no start means no preview",
			params:       calendar.HighlightParams{Hover: "2026-02-13"},
			notInPreview: []string{"2026-02-13"},
		},
		{
			name:         "no hover means no preview",
			params:       calendar.HighlightParams{Start: "2026-02-10"},
			notInPreview: []string{"2026-02-10"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dg := calendar.Decorate(grid, tc.params)
			for _, iso := range tc.inPreview {
				assert.True(t, cellByISO(t, dg, iso).InHoverRange, iso)
			}
			for _, iso := range tc.notInPreview {
				assert.False(t, cellByISO(t, dg, iso).InHoverRange, iso)
			}
		})
	}
}

// =============================================================================
// DISABLED
// =============================================================================

func TestDecorate_DisabledByBounds(t *testing.T) {
	d := tokyoDates(t)

	dg := calendar.Decorate(februaryGrid(t, d), calendar.HighlightParams{
		MinDate: "2026-02-05",
		MaxDate: "2026-02-20",
	})

	assert.True(t, cellByISO(t, dg, "2026-02-04").Disabled)
	assert.False(t, cellByISO(t, dg, "2026-02-05").Disabled)
	assert.False(t, cellByISO(t, dg, "2026-02-20").Disabled)
	assert.True(t, cellByISO(t, dg, "2026-02-21").Disabled)
}

func TestDecorate_DisabledByList(t *testing.T) {
	d := tokyoDates(t)

	dg := calendar.Decorate(februaryGrid(t, d), calendar.HighlightParams{
		DisabledDates: []string{"2026-02-14", "2026-02-17"},
	})

	assert.True(t, cellByISO(t, dg, "2026-02-14").Disabled)
	assert.True(t, cellByISO(t, dg, "2026-02-17").Disabled)
	assert.False(t, cellByISO(t, dg, "2026-02-15").Disabled)
}

func TestDecorate_DisabledByPredicate(t *testing.T) {
	d := tokyoDates(t)

	weekends := func(t time.Time) bool {
		wd := t.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}
	dg := calendar.Decorate(februaryGrid(t, d), calendar.HighlightParams{DisabledFunc: weekends})

	assert.True(t, cellByISO(t, dg, "2026-02-01").Disabled)  // Sunday
	assert.True(t, cellByISO(t, dg, "2026-02-07").Disabled)  // Saturday
	assert.False(t, cellByISO(t, dg, "2026-02-04").Disabled) // Wednesday
}

// =============================================================================
// STRUCTURE
// =============================================================================

func TestDecorate_PreservesShapeAndBase(t *testing.T) {
	d := tokyoDates(t)
	grid := februaryGrid(t, d)

	dg := calendar.Decorate(grid, calendar.HighlightParams{})

	require.Len(t, dg.Cells, calendar.GridCells)
	require.Len(t, dg.Weeks, calendar.GridWeeks)
	assert.Same(t, grid, dg.Base)
	for i, c := range dg.Cells {
		assert.Equal(t, grid.Cells[i], c.Cell)
	}
}
