/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal grid/preset model from the external API
  contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  Every date crossing this boundary is an ISO YYYY-MM-DD string - the
  engine's only externally visible date format. Months are addressed
  as YYYY-MM.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/preset.go: PresetJSON definition type
*/
package api

import (
	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/factory"
)

// =============================================================================
// GRID TYPES
// =============================================================================

// CellDTO represents one grid cell in API responses.
type CellDTO struct {
	ISO     string `json:"iso"`
	Day     int    `json:"day"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Weekday int    `json:"weekday"`
	InMonth bool   `json:"in_month"`
}

// GridDTO represents a month grid in API responses.
type GridDTO struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	WeekStart int         `json:"week_start"`
	Locale    string      `json:"locale,omitempty"`
	Weeks     [][]CellDTO `json:"weeks"`
}

// DecoratedCellDTO is a cell plus its decoration flags.
type DecoratedCellDTO struct {
	CellDTO

	SelectedStart bool `json:"selected_start"`
	SelectedEnd   bool `json:"selected_end"`
	InRange       bool `json:"in_range"`
	InHoverRange  bool `json:"in_hover_range"`
	Disabled      bool `json:"disabled"`
}

// DecoratedGridDTO is a decorated month grid.
type DecoratedGridDTO struct {
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	WeekStart int                  `json:"week_start"`
	Locale    string               `json:"locale,omitempty"`
	Weeks     [][]DecoratedCellDTO `json:"weeks"`
}

// DecorateRequest asks for a decorated grid for a selection state.
type DecorateRequest struct {
	Month          string   `json:"month"` // YYYY-MM
	WeekStart      *int     `json:"week_start,omitempty"`
	Locale         string   `json:"locale,omitempty"`
	Start          string   `json:"start,omitempty"`
	End            string   `json:"end,omitempty"`
	Hover          string   `json:"hover,omitempty"`
	MinDate        string   `json:"min_date,omitempty"`
	MaxDate        string   `json:"max_date,omitempty"`
	DisabledDates  []string `json:"disabled_dates,omitempty"`
	MultiRange     bool     `json:"multi_range,omitempty"`
	SelectingStart bool     `json:"selecting_start,omitempty"`
}

// =============================================================================
// PRESET TYPES
// =============================================================================

// ResolvedPresetDTO is a preset resolution result.
type ResolvedPresetDTO struct {
	Key   string `json:"key"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// PresetKeysDTO lists the registered preset keys.
type PresetKeysDTO struct {
	Keys []string `json:"keys"`
}

// CreatePresetRequest is the request to create a custom preset.
type CreatePresetRequest struct {
	Config factory.PresetJSON `json:"config"`
}

// =============================================================================
// ADMIN / ERROR TYPES
// =============================================================================

// CacheStatsDTO reports cache occupancy.
type CacheStatsDTO struct {
	GridEntries      int `json:"grid_entries"`
	HighlightEntries int `json:"highlight_entries"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toCellDTO(c calendar.Cell) CellDTO {
	return CellDTO{
		ISO:     c.ISO,
		Day:     c.Day,
		Month:   int(c.Month),
		Year:    c.Year,
		Weekday: int(c.Weekday),
		InMonth: c.InMonth,
	}
}

func toGridDTO(g *calendar.Grid) GridDTO {
	weeks := make([][]CellDTO, len(g.Weeks))
	for w, week := range g.Weeks {
		row := make([]CellDTO, len(week))
		for i, c := range week {
			row[i] = toCellDTO(c)
		}
		weeks[w] = row
	}
	return GridDTO{
		Year:      g.Month.Year,
		Month:     int(g.Month.Month),
		WeekStart: g.WeekStart,
		Locale:    g.Locale,
		Weeks:     weeks,
	}
}

func toDecoratedGridDTO(dg *calendar.DecoratedGrid) DecoratedGridDTO {
	weeks := make([][]DecoratedCellDTO, len(dg.Weeks))
	for w, week := range dg.Weeks {
		row := make([]DecoratedCellDTO, len(week))
		for i, dc := range week {
			row[i] = DecoratedCellDTO{
				CellDTO:       toCellDTO(dc.Cell),
				SelectedStart: dc.SelectedStart,
				SelectedEnd:   dc.SelectedEnd,
				InRange:       dc.InRange,
				InHoverRange:  dc.InHoverRange,
				Disabled:      dc.Disabled,
			}
		}
		weeks[w] = row
	}
	return DecoratedGridDTO{
		Year:      dg.Base.Month.Year,
		Month:     int(dg.Base.Month.Month),
		WeekStart: dg.Base.WeekStart,
		Locale:    dg.Base.Locale,
		Weeks:     weeks,
	}
}
