/*
Package factory provides JSON to Go preset conversion.

PURPOSE:
  Converts JSON preset definitions into preset.Plugin values. This
  enables custom date-range presets without code changes - operators
  define presets in JSON, persist them, and the factory creates the
  proper plugins at load time.

JSON SCHEMA:
  {"key": "LAST_45_DAYS", "type": "last_n_days", "days": 45}
  {"key": "TRAILING_QUARTER", "type": "last_n_months", "months": 3}
  {"key": "FY26", "type": "fixed", "start": "2025-07-01", "end": "2026-06-30"}

TYPES:
  last_n_days    Trailing window of N calendar days ending today,
                 inclusive of today as the Nth day (same law as the
                 built-in LAST_N_DAYS presets).
  last_n_months  Rolling window ending today: start is the day after
                 today minus N months.
  fixed          Static ISO bounds, independent of "now".

USAGE:
  plugin, err := factory.ParsePreset(jsonStr)
  if err == nil {
      registry.Register(plugin)
  }

SEE ALSO:
  - preset/registry.go: Plugin type and registration semantics
  - store/: Persistence of definition JSON
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/preset"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PresetJSON is the JSON representation of a custom preset.
type PresetJSON struct {
	Key    string `json:"key"`
	Type   string `json:"type"`
	Days   int    `json:"days,omitempty"`
	Months int    `json:"months,omitempty"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

// ParsePreset parses a JSON string into a preset plugin.
func ParsePreset(jsonStr string) (preset.Plugin, error) {
	var pj PresetJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return preset.Plugin{}, fmt.Errorf("failed to parse preset JSON: %w", err)
	}
	return FromJSON(pj)
}

// FromJSON converts a PresetJSON definition to a preset plugin.
func FromJSON(pj PresetJSON) (preset.Plugin, error) {
	// Same key validation as the registry, so a definition the factory
	// accepts can never fail registration after it was persisted.
	if strings.TrimSpace(pj.Key) == "" {
		return preset.Plugin{}, fmt.Errorf("preset definition requires a key")
	}

	switch pj.Type {
	case "last_n_days":
		if pj.Days < 1 {
			return preset.Plugin{}, fmt.Errorf("preset %s: last_n_days requires days >= 1", pj.Key)
		}
		p := preset.LastNDays(pj.Days)
		p.Key = pj.Key
		return p, nil

	case "last_n_months":
		if pj.Months < 1 {
			return preset.Plugin{}, fmt.Errorf("preset %s: last_n_months requires months >= 1", pj.Key)
		}
		months := pj.Months
		return preset.Plugin{
			Key: pj.Key,
			Resolve: func(clock calendar.Clock, dates *calendar.Dates) preset.Range {
				end := dates.Normalize(clock.Now())
				return preset.Range{
					Start: dates.AddDays(dates.AddMonths(end, -months), 1),
					End:   end,
				}
			},
		}, nil

	case "fixed":
		return fixedPlugin(pj)

	default:
		return preset.Plugin{}, fmt.Errorf("preset %s: unknown type %q", pj.Key, pj.Type)
	}
}

// ToJSON converts a definition back to its canonical JSON string.
func ToJSON(pj PresetJSON) string {
	b, _ := json.Marshal(pj)
	return string(b)
}

func fixedPlugin(pj PresetJSON) (preset.Plugin, error) {
	// Validate bounds against a neutral location at definition time;
	// resolution re-parses against the injected primitives so the range
	// lands in the caller's location.
	probe := calendar.NewDates(time.UTC)
	start, ok := probe.ParseISO(pj.Start)
	if !ok {
		return preset.Plugin{}, fmt.Errorf("preset %s: invalid start %q", pj.Key, pj.Start)
	}
	end, ok := probe.ParseISO(pj.End)
	if !ok {
		return preset.Plugin{}, fmt.Errorf("preset %s: invalid end %q", pj.Key, pj.End)
	}
	if end.Before(start) {
		return preset.Plugin{}, fmt.Errorf("preset %s: end %s before start %s", pj.Key, pj.End, pj.Start)
	}

	startISO, endISO := pj.Start, pj.End
	return preset.Plugin{
		Key: pj.Key,
		Resolve: func(_ calendar.Clock, dates *calendar.Dates) preset.Range {
			s, _ := dates.ParseISO(startISO)
			e, _ := dates.ParseISO(endISO)
			return preset.Range{Start: s, End: e}
		},
	}, nil
}
