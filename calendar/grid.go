/*
grid.go - Month grid construction

PURPOSE:
  Builds the fixed 42-cell month grid a date-range picker renders:
  6 weeks of 7 days, padded with leading/trailing days from the
  adjacent months so every month occupies the same layout area.

INVARIANT:
  Every grid has exactly 42 cells split into 6 weeks of 7, regardless
  of how many weeks the month visually needs. February starting on the
  week start still gets 6 rows. This keeps picker layouts stable while
  navigating between months.

PURITY:
  BuildGrid is referentially stateless - identical inputs always yield
  structurally identical but distinct-instance output. Instance sharing
  is the cache's job (see cache package), not this function's.
*/
package calendar

import "time"

// Grid dimensions. Fixed by design for layout stability.
const (
	GridWeeks   = 6
	DaysPerWeek = 7
	GridCells   = GridWeeks * DaysPerWeek
)

// MonthID identifies the calendar month a grid was built for.
type MonthID struct {
	Year  int
	Month time.Month
}

// Cell is one day in a month grid. Immutable once produced.
type Cell struct {
	Date    time.Time
	ISO     string
	Day     int
	Month   time.Month
	Year    int
	Weekday time.Weekday
	InMonth bool
}

// Grid is a complete 6x7 month layout. Cells and Weeks alias the same
// Cell values; Weeks is the row-major view of Cells.
type Grid struct {
	Month     MonthID
	WeekStart int
	Locale    string
	Weeks     [][]Cell
	Cells     []Cell
}

// BuildGrid builds the month grid containing monthDate.
//
// Any day of the month may be passed; it is normalized to the first of
// its month. weekStart is 0 (Sunday) or 1 (Monday) and controls which
// column the month's first day lands in.
func BuildGrid(dates *Dates, monthDate time.Time, weekStart int, locale string) *Grid {
	first := dates.StartOfMonth(monthDate)
	target := MonthID{Year: first.Year(), Month: first.Month()}

	// Leading padding: how many days of the previous month are shown
	// before the 1st.
	offset := (int(first.Weekday()) - weekStart + DaysPerWeek) % DaysPerWeek
	cursor := dates.AddDays(first, -offset)

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		cells = append(cells, Cell{
			Date:    cursor,
			ISO:     dates.ISO(cursor),
			Day:     cursor.Day(),
			Month:   cursor.Month(),
			Year:    cursor.Year(),
			Weekday: cursor.Weekday(),
			InMonth: cursor.Year() == target.Year && cursor.Month() == target.Month,
		})
		cursor = dates.AddDays(cursor, 1)
	}

	weeks := make([][]Cell, GridWeeks)
	for w := 0; w < GridWeeks; w++ {
		weeks[w] = cells[w*DaysPerWeek : (w+1)*DaysPerWeek : (w+1)*DaysPerWeek]
	}

	return &Grid{
		Month:     target,
		WeekStart: weekStart,
		Locale:    locale,
		Weeks:     weeks,
		Cells:     cells,
	}
}
