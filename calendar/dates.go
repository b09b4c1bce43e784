/*
dates.go - Timezone-safe day-level date arithmetic

PURPOSE:
  All day-granularity date operations for the calendar engine. Every
  computation works on local year/month/day components in a bound
  *time.Location - never through UTC conversion, which shifts dates by
  one day near midnight in western/eastern timezones.

KEY RULES:
  - A "calendar day" is a time.Time normalized to local midnight.
  - ISO strings (YYYY-MM-DD) are built from local components only.
  - AddMonths clamps day-of-month overflow to the last day of the
    target month (Jan 31 + 1 month = Feb 28/29, never Mar 3).

SEE ALSO:
  - grid.go: Month grid construction on top of these primitives
  - clock.go: Injectable "now" source
*/
package calendar

import (
	"fmt"
	"regexp"
	"time"
)

// =============================================================================
// DATES - Date primitives bound to a location
// =============================================================================

// Dates provides day-level date arithmetic in a fixed location.
// All methods are pure; time.Time values are never mutated.
type Dates struct {
	loc *time.Location
}

// NewDates creates date primitives bound to loc. A nil loc uses time.Local.
func NewDates(loc *time.Location) *Dates {
	if loc == nil {
		loc = time.Local
	}
	return &Dates{loc: loc}
}

// Location returns the location all arithmetic is performed in.
func (d *Dates) Location() *time.Location { return d.loc }

// Normalize returns t at 00:00:00.000 local time.
func (d *Dates) Normalize(t time.Time) time.Time {
	t = t.In(d.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, d.loc)
}

// EndOfDay returns t at 23:59:59.999 local time.
func (d *Dates) EndOfDay(t time.Time) time.Time {
	t = t.In(d.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), d.loc)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// AddDays shifts t by n calendar days, rolling over months and years.
// The result is normalized to local midnight.
func (d *Dates) AddDays(t time.Time, n int) time.Time {
	return d.Normalize(t.In(d.loc).AddDate(0, 0, n))
}

// AddMonths adds n calendar months to t.
//
// Overflow policy: when the original day-of-month does not exist in the
// target month, the day is clamped to the last day of that month. The
// clamp applies symmetrically for negative n. This is why AddDate cannot
// be used here - it rolls overflow into the following month.
func (d *Dates) AddMonths(t time.Time, n int) time.Time {
	t = t.In(d.loc)
	year, month, day := t.Date()

	months := int(month) - 1 + n
	targetYear := year + floorDiv(months, 12)
	targetMonth := time.Month(mod(months, 12) + 1)

	if max := DaysInMonth(targetYear, targetMonth); day > max {
		day = max
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, d.loc)
}

// StartOfMonth returns the first day of t's month at local midnight.
func (d *Dates) StartOfMonth(t time.Time) time.Time {
	t = t.In(d.loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, d.loc)
}

// EndOfMonth returns the last day of t's month at 23:59:59.999.
func (d *Dates) EndOfMonth(t time.Time) time.Time {
	t = t.In(d.loc)
	last := DaysInMonth(t.Year(), t.Month())
	return time.Date(t.Year(), t.Month(), last, 23, 59, 59, int(999*time.Millisecond), d.loc)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// =============================================================================
// COMPARISON - Day granularity, time-of-day ignored
// =============================================================================

// SameDay reports whether a and b fall on the same calendar day.
func (d *Dates) SameDay(a, b time.Time) bool {
	a, b = a.In(d.loc), b.In(d.loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeDay reports whether a falls on an earlier calendar day than b.
func (d *Dates) BeforeDay(a, b time.Time) bool {
	return d.Normalize(a).Before(d.Normalize(b))
}

// AfterDay reports whether a falls on a later calendar day than b.
func (d *Dates) AfterDay(a, b time.Time) bool {
	return d.Normalize(a).After(d.Normalize(b))
}

// =============================================================================
// ISO DATE STRINGS - YYYY-MM-DD, local components only
// =============================================================================

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ISO formats t as YYYY-MM-DD from its local components. The zero time
// formats as the empty string.
func (d *Dates) ISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(d.loc)
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseISO parses a strict YYYY-MM-DD string into a normalized local date.
// The second return value is false for malformed input or impossible
// dates (month 13, Feb 31). Impossible dates are detected by rebuilding
// the date and checking the components survived the round trip.
func (d *Dates) ParseISO(s string) (time.Time, bool) {
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, false
	}

	var year, month, day int
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &year, &month, &day); err != nil {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, d.loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// =============================================================================
// WEEK START - Static locale table
// =============================================================================

// Week start conventions. The values double as weekday offsets, matching
// time.Weekday (0 = Sunday).
const (
	WeekStartSunday = 0
	WeekStartMonday = 1
)

// DefaultWeekStart is used when no locale is supplied and no entry matches.
const DefaultWeekStart = WeekStartSunday

// weekStartByLocale maps BCP 47 tags (and bare language codes) to the
// first day of the week. Sunday-start locales are the minority; anything
// not listed falls back to its language entry, then to the default.
var weekStartByLocale = map[string]int{
	"en-US": WeekStartSunday,
	"en-CA": WeekStartSunday,
	"ja-JP": WeekStartSunday,
	"ja":    WeekStartSunday,
	"ko-KR": WeekStartSunday,
	"ko":    WeekStartSunday,
	"pt-BR": WeekStartSunday,
	"he-IL": WeekStartSunday,
	"he":    WeekStartSunday,

	"en-GB": WeekStartMonday,
	"en-AU": WeekStartMonday,
	"en-NZ": WeekStartMonday,
	"de-DE": WeekStartMonday,
	"de":    WeekStartMonday,
	"fr-FR": WeekStartMonday,
	"fr":    WeekStartMonday,
	"es-ES": WeekStartMonday,
	"es":    WeekStartMonday,
	"it-IT": WeekStartMonday,
	"it":    WeekStartMonday,
	"nl-NL": WeekStartMonday,
	"nl":    WeekStartMonday,
	"pl-PL": WeekStartMonday,
	"pl":    WeekStartMonday,
	"pt-PT": WeekStartMonday,
	"pt":    WeekStartMonday,
	"ru-RU": WeekStartMonday,
	"ru":    WeekStartMonday,
	"sv-SE": WeekStartMonday,
	"sv":    WeekStartMonday,
	"zh-CN": WeekStartMonday,
	"zh":    WeekStartMonday,
}

// WeekStartForLocale returns 0 (Sunday) or 1 (Monday) for a locale tag.
// Lookup order: exact tag, then bare language prefix, then the default.
func WeekStartForLocale(locale string) int {
	if locale == "" {
		return DefaultWeekStart
	}
	if ws, ok := weekStartByLocale[locale]; ok {
		return ws
	}
	for i, r := range locale {
		if r == '-' || r == '_' {
			if ws, ok := weekStartByLocale[locale[:i]]; ok {
				return ws
			}
			break
		}
	}
	return DefaultWeekStart
}
