package preset_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/preset"
)

// resolveAt resolves a built-in at a fixed "now" and returns ISO bounds.
func resolveAt(t *testing.T, d *calendar.Dates, key string, nowISO string) (string, string) {
	t.Helper()

	registry := preset.NewRegistry(nil)
	require.NoError(t, registry.RegisterAll(preset.Builtins()))

	now, ok := d.ParseISO(nowISO)
	require.True(t, ok, nowISO)
	// Mid-afternoon, not midnight: presets must normalize internally.
	now = now.Add(14*time.Hour + 30*time.Minute)

	resolver := preset.NewResolver(registry, calendar.NewFixedClock(now), d, nil)
	resolved := resolver.Resolve(key, nil)
	require.NotNil(t, resolved, key)
	return resolved.Start, resolved.End
}

// =============================================================================
// DAY WINDOWS
// =============================================================================

func TestBuiltins_TodayYesterday(t *testing.T) {
	d := testDates(t)

	start, end := resolveAt(t, d, "TODAY", "2026-02-21")
	assert.Equal(t, "2026-02-21", start)
	assert.Equal(t, "2026-02-21", end)

	start, end = resolveAt(t, d, "YESTERDAY", "2026-02-21")
	assert.Equal(t, "2026-02-20", start)
	assert.Equal(t, "2026-02-20", end)

	// Yesterday across a month boundary.
	start, end = resolveAt(t, d, "YESTERDAY", "2026-03-01")
	assert.Equal(t, "2026-02-28", start)
	assert.Equal(t, "2026-02-28", end)
}

func TestBuiltins_LastNDays_InclusiveOfToday(t *testing.T) {
	// "Last 7 days" spans 7 calendar days ending today - today is the
	// seventh day, not the day after the window.
	d := testDates(t)

	tests := []struct {
		key       string
		wantStart string
	}{
		{"LAST_7_DAYS", "2026-02-15"},
		{"LAST_14_DAYS", "2026-02-08"},
		{"LAST_30_DAYS", "2026-01-23"},
		{"LAST_60_DAYS", "2025-12-24"},
		{"LAST_90_DAYS", "2025-11-24"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			start, end := resolveAt(t, d, tc.key, "2026-02-21")
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, "2026-02-21", end)
		})
	}
}

func TestLastNDays_CustomWindow(t *testing.T) {
	d := testDates(t)
	registry := preset.NewRegistry(nil)
	require.NoError(t, registry.Register(preset.LastNDays(45)))

	now, _ := d.ParseISO("2026-02-21")
	resolver := preset.NewResolver(registry, calendar.NewFixedClock(now), d, nil)

	got := resolver.Resolve("LAST_45_DAYS", nil)
	require.NotNil(t, got)
	assert.Equal(t, "2026-01-08", got.Start)
	assert.Equal(t, "2026-02-21", got.End)
}

// =============================================================================
// WEEKS - Monday-based, by design
// =============================================================================

func TestBuiltins_ThisWeek_MondayAnchored(t *testing.T) {
	d := testDates(t)

	// 2026-02-21 is a Saturday; its Monday is 2026-02-16.
	start, end := resolveAt(t, d, "THIS_WEEK", "2026-02-21")
	assert.Equal(t, "2026-02-16", start)
	assert.Equal(t, "2026-02-22", end)

	// On a Sunday the week reaches back six days, not zero.
	start, end = resolveAt(t, d, "THIS_WEEK", "2026-02-22")
	assert.Equal(t, "2026-02-16", start)
	assert.Equal(t, "2026-02-22", end)

	// On a Monday the week starts today.
	start, end = resolveAt(t, d, "THIS_WEEK", "2026-02-16")
	assert.Equal(t, "2026-02-16", start)
	assert.Equal(t, "2026-02-22", end)
}

func TestBuiltins_LastWeek_PriorMondayToSunday(t *testing.T) {
	d := testDates(t)

	start, end := resolveAt(t, d, "LAST_WEEK", "2026-02-21")
	assert.Equal(t, "2026-02-09", start)
	assert.Equal(t, "2026-02-15", end)

	// Last week can cross a month boundary.
	start, end = resolveAt(t, d, "LAST_WEEK", "2026-03-04")
	assert.Equal(t, "2026-02-23", start)
	assert.Equal(t, "2026-03-01", end)
}

// =============================================================================
// MONTHS
// =============================================================================

func TestBuiltins_MonthPresets(t *testing.T) {
	d := testDates(t)

	start, end := resolveAt(t, d, "THIS_MONTH", "2026-02-21")
	assert.Equal(t, "2026-02-01", start)
	assert.Equal(t, "2026-02-28", end)

	// Leap year February.
	start, end = resolveAt(t, d, "THIS_MONTH", "2024-02-10")
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	start, end = resolveAt(t, d, "LAST_MONTH", "2026-02-21")
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-01-31", end)

	// Last month from January reaches the prior year.
	start, end = resolveAt(t, d, "LAST_MONTH", "2026-01-15")
	assert.Equal(t, "2025-12-01", start)
	assert.Equal(t, "2025-12-31", end)

	start, end = resolveAt(t, d, "MONTH_TO_DATE", "2026-02-21")
	assert.Equal(t, "2026-02-01", start)
	assert.Equal(t, "2026-02-21", end)
}

// =============================================================================
// QUARTERS
// =============================================================================

func TestBuiltins_QuarterPresets(t *testing.T) {
	d := testDates(t)

	start, end := resolveAt(t, d, "THIS_QUARTER", "2026-02-21")
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-03-31", end)

	start, end = resolveAt(t, d, "THIS_QUARTER", "2026-05-10")
	assert.Equal(t, "2026-04-01", start)
	assert.Equal(t, "2026-06-30", end)

	start, end = resolveAt(t, d, "THIS_QUARTER", "2026-11-30")
	assert.Equal(t, "2026-10-01", start)
	assert.Equal(t, "2026-12-31", end)

	start, end = resolveAt(t, d, "QUARTER_TO_DATE", "2026-02-21")
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-02-21", end)
}

func TestBuiltins_LastQuarter_RollsBackAcrossYears(t *testing.T) {
	// GIVEN: now in Q1
	// WHEN: resolving LAST_QUARTER
	// THEN: the range is Q4 of the prior year
	d := testDates(t)

	start, end := resolveAt(t, d, "LAST_QUARTER", "2026-02-21")
	assert.Equal(t, "2025-10-01", start)
	assert.Equal(t, "2025-12-31", end)

	start, end = resolveAt(t, d, "LAST_QUARTER", "2026-07-04")
	assert.Equal(t, "2026-04-01", start)
	assert.Equal(t, "2026-06-30", end)
}

// =============================================================================
// YEARS
// =============================================================================

func TestBuiltins_YearPresets(t *testing.T) {
	d := testDates(t)

	start, end := resolveAt(t, d, "THIS_YEAR", "2026-02-21")
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-12-31", end)

	start, end = resolveAt(t, d, "LAST_YEAR", "2026-02-21")
	assert.Equal(t, "2025-01-01", start)
	assert.Equal(t, "2025-12-31", end)

	start, end = resolveAt(t, d, "YEAR_TO_DATE", "2026-02-21")
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-02-21", end)
}

// =============================================================================
// SET COMPLETENESS
// =============================================================================

func TestBuiltins_RegistersExpectedKeySet(t *testing.T) {
	registry := preset.NewRegistry(nil)
	require.NoError(t, registry.RegisterAll(preset.Builtins()))

	want := []string{
		"LAST_14_DAYS", "LAST_30_DAYS", "LAST_60_DAYS", "LAST_7_DAYS", "LAST_90_DAYS",
		"LAST_MONTH", "LAST_QUARTER", "LAST_WEEK", "LAST_YEAR",
		"MONTH_TO_DATE", "QUARTER_TO_DATE",
		"THIS_MONTH", "THIS_QUARTER", "THIS_WEEK", "THIS_YEAR",
		"TODAY", "YEAR_TO_DATE", "YESTERDAY",
	}
	assert.Equal(t, want, registry.Keys())
}
