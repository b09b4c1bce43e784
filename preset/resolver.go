package preset

import (
	"log/slog"

	"github.com/warp/calendar-engine/calendar"
)

// =============================================================================
// RESOLVER - Key -> ISO range
// =============================================================================

// Resolved is a preset's output at the engine boundary: both endpoints
// as ISO date strings, the only externally visible date format.
type Resolved struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Resolver turns preset keys into concrete ISO ranges using a default
// clock and date primitives supplied at construction.
type Resolver struct {
	registry *Registry
	clock    calendar.Clock
	dates    *calendar.Dates
	log      *slog.Logger
}

// NewResolver wires a resolver. A nil clock uses the system clock; a
// nil logger uses slog.Default.
func NewResolver(registry *Registry, clock calendar.Clock, dates *calendar.Dates, log *slog.Logger) *Resolver {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{registry: registry, clock: clock, dates: dates, log: log}
}

// Resolve looks key up and computes its range. An unknown key is a
// normal, recoverable condition: it logs a diagnostic and returns nil,
// it never fails. A non-nil override clock forces a specific "now" for
// this call only, leaving the resolver's default clock untouched.
func (r *Resolver) Resolve(key string, override calendar.Clock) *Resolved {
	plugin, ok := r.registry.Get(key)
	if !ok {
		r.log.Warn("unknown preset key", "key", key)
		return nil
	}

	clock := r.clock
	if override != nil {
		clock = override
	}

	rng := plugin.Resolve(clock, r.dates)
	return &Resolved{
		Start: r.dates.ISO(rng.Start),
		End:   r.dates.ISO(rng.End),
	}
}
