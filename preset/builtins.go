/*
builtins.go - The built-in preset set

SEMANTICS (frozen):
  - LAST_N_DAYS spans N calendar days ending today: end = today,
    start = today - (N-1) days. "Last 7 days" includes today as the
    seventh day.
  - THIS_WEEK / LAST_WEEK are Monday-based (Monday..Sunday). This
    matches the resolution path everywhere; changing it to a
    Sunday-anchored week is a product decision, not a bug fix.
  - Quarters span 3 calendar months starting at Jan/Apr/Jul/Oct; the
    year rolls back by one when the previous quarter crosses into Q4.
*/
package preset

import (
	"fmt"
	"time"

	"github.com/warp/calendar-engine/calendar"
)

// Built-in preset keys.
const (
	KeyToday         = "TODAY"
	KeyYesterday     = "YESTERDAY"
	KeyThisWeek      = "THIS_WEEK"
	KeyLastWeek      = "LAST_WEEK"
	KeyThisMonth     = "THIS_MONTH"
	KeyLastMonth     = "LAST_MONTH"
	KeyMonthToDate   = "MONTH_TO_DATE"
	KeyThisQuarter   = "THIS_QUARTER"
	KeyLastQuarter   = "LAST_QUARTER"
	KeyQuarterToDate = "QUARTER_TO_DATE"
	KeyThisYear      = "THIS_YEAR"
	KeyLastYear      = "LAST_YEAR"
	KeyYearToDate    = "YEAR_TO_DATE"
)

// lastNDaysWindows are the stock trailing windows registered by Builtins.
var lastNDaysWindows = []int{7, 14, 30, 60, 90}

// Builtins returns the full built-in plugin set, ready for
// Registry.RegisterAll.
func Builtins() []Plugin {
	plugins := []Plugin{
		{Key: KeyToday, Resolve: resolveToday},
		{Key: KeyYesterday, Resolve: resolveYesterday},
		{Key: KeyThisWeek, Resolve: resolveThisWeek},
		{Key: KeyLastWeek, Resolve: resolveLastWeek},
		{Key: KeyThisMonth, Resolve: resolveThisMonth},
		{Key: KeyLastMonth, Resolve: resolveLastMonth},
		{Key: KeyMonthToDate, Resolve: resolveMonthToDate},
		{Key: KeyThisQuarter, Resolve: resolveThisQuarter},
		{Key: KeyLastQuarter, Resolve: resolveLastQuarter},
		{Key: KeyQuarterToDate, Resolve: resolveQuarterToDate},
		{Key: KeyThisYear, Resolve: resolveThisYear},
		{Key: KeyLastYear, Resolve: resolveLastYear},
		{Key: KeyYearToDate, Resolve: resolveYearToDate},
	}
	for _, n := range lastNDaysWindows {
		plugins = append(plugins, LastNDays(n))
	}
	return plugins
}

// LastNDays builds a LAST_N_DAYS plugin for an arbitrary window width.
// The window is inclusive of today as the Nth day.
func LastNDays(n int) Plugin {
	return Plugin{
		Key: fmt.Sprintf("LAST_%d_DAYS", n),
		Resolve: func(clock calendar.Clock, dates *calendar.Dates) Range {
			end := dates.Normalize(clock.Now())
			return Range{Start: dates.AddDays(end, -(n - 1)), End: end}
		},
	}
}

// =============================================================================
// DAY / WEEK
// =============================================================================

func resolveToday(clock calendar.Clock, dates *calendar.Dates) Range {
	today := dates.Normalize(clock.Now())
	return Range{Start: today, End: today}
}

func resolveYesterday(clock calendar.Clock, dates *calendar.Dates) Range {
	yesterday := dates.AddDays(clock.Now(), -1)
	return Range{Start: yesterday, End: yesterday}
}

// daysToMonday returns how far back the most recent Monday lies.
func daysToMonday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

func resolveThisWeek(clock calendar.Clock, dates *calendar.Dates) Range {
	today := dates.Normalize(clock.Now())
	monday := dates.AddDays(today, -daysToMonday(today.Weekday()))
	return Range{Start: monday, End: dates.AddDays(monday, 6)}
}

func resolveLastWeek(clock calendar.Clock, dates *calendar.Dates) Range {
	today := dates.Normalize(clock.Now())
	monday := dates.AddDays(today, -daysToMonday(today.Weekday()))
	return Range{Start: dates.AddDays(monday, -7), End: dates.AddDays(monday, -1)}
}

// =============================================================================
// MONTH
// =============================================================================

func resolveThisMonth(clock calendar.Clock, dates *calendar.Dates) Range {
	now := clock.Now()
	return Range{Start: dates.StartOfMonth(now), End: dates.EndOfMonth(now)}
}

func resolveLastMonth(clock calendar.Clock, dates *calendar.Dates) Range {
	prev := dates.AddMonths(dates.StartOfMonth(clock.Now()), -1)
	return Range{Start: prev, End: dates.EndOfMonth(prev)}
}

func resolveMonthToDate(clock calendar.Clock, dates *calendar.Dates) Range {
	now := clock.Now()
	return Range{Start: dates.StartOfMonth(now), End: dates.Normalize(now)}
}

// =============================================================================
// QUARTER
// =============================================================================

// quarterStart returns the first day of the quarter containing t.
// Quarter start months are Jan, Apr, Jul, Oct.
func quarterStart(dates *calendar.Dates, t time.Time) time.Time {
	t = t.In(dates.Location())
	month := time.Month(((int(t.Month())-1)/3)*3 + 1)
	return time.Date(t.Year(), month, 1, 0, 0, 0, 0, dates.Location())
}

func resolveThisQuarter(clock calendar.Clock, dates *calendar.Dates) Range {
	start := quarterStart(dates, clock.Now())
	return Range{Start: start, End: dates.EndOfMonth(dates.AddMonths(start, 2))}
}

func resolveLastQuarter(clock calendar.Clock, dates *calendar.Dates) Range {
	// AddMonths handles the year rollback when this quarter is Q1.
	start := dates.AddMonths(quarterStart(dates, clock.Now()), -3)
	return Range{Start: start, End: dates.EndOfMonth(dates.AddMonths(start, 2))}
}

func resolveQuarterToDate(clock calendar.Clock, dates *calendar.Dates) Range {
	now := clock.Now()
	return Range{Start: quarterStart(dates, now), End: dates.Normalize(now)}
}

// =============================================================================
// YEAR
// =============================================================================

func yearRange(dates *calendar.Dates, year int) Range {
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, dates.Location()),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, dates.Location()),
	}
}

func resolveThisYear(clock calendar.Clock, dates *calendar.Dates) Range {
	return yearRange(dates, clock.Now().In(dates.Location()).Year())
}

func resolveLastYear(clock calendar.Clock, dates *calendar.Dates) Range {
	return yearRange(dates, clock.Now().In(dates.Location()).Year()-1)
}

func resolveYearToDate(clock calendar.Clock, dates *calendar.Dates) Range {
	now := clock.Now()
	year := now.In(dates.Location()).Year()
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, dates.Location()),
		End:   dates.Normalize(now),
	}
}
