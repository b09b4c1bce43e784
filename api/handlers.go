/*
handlers.go - HTTP handlers for the calendar engine

PURPOSE:
  Exposes the grid caches and the preset resolver over REST. Handles
  HTTP request/response and JSON serialization, delegating all date
  logic to the core packages.

ENDPOINTS:
  Grids:
    GET    /api/grid                  Month grid (month=YYYY-MM)
    POST   /api/grid/decorate         Decorated grid for a selection state

  Presets:
    GET    /api/presets               Registered preset keys
    GET    /api/presets/{key}         Resolve a preset (optional now=YYYY-MM-DD)
    POST   /api/presets               Create custom preset (persist + register)
    DELETE /api/presets/{key}         Unregister + delete custom preset

  Admin:
    GET    /api/admin/cache           Cache occupancy
    POST   /api/admin/cache/clear     Clear both caches

ERROR HANDLING:
  - 400: malformed month/date parameters, invalid preset definitions
  - 404: unknown preset key (the resolver's nil return surfaced at
         the HTTP boundary)
  - 500: store failures
  Invalid input never mutates state: bad decorate parameters are
  rejected before any cache write.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/calendar-engine/cache"
	"github.com/warp/calendar-engine/calendar"
	"github.com/warp/calendar-engine/config"
	"github.com/warp/calendar-engine/factory"
	"github.com/warp/calendar-engine/preset"
	"github.com/warp/calendar-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. Everything is
// injected explicitly; there is no ambient lookup.
type Handler struct {
	Dates      *calendar.Dates
	Grids      *cache.GridCache
	Highlights *cache.HighlightCache
	Registry   *preset.Registry
	Resolver   *preset.Resolver
	Presets    store.PresetStore
	Config     *config.Config

	log *slog.Logger
}

// NewHandler wires a handler. A nil logger uses slog.Default.
func NewHandler(dates *calendar.Dates, grids *cache.GridCache, highlights *cache.HighlightCache,
	registry *preset.Registry, resolver *preset.Resolver, presets store.PresetStore,
	cfg *config.Config, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Dates:      dates,
		Grids:      grids,
		Highlights: highlights,
		Registry:   registry,
		Resolver:   resolver,
		Presets:    presets,
		Config:     cfg,
		log:        log,
	}
}

// LoadPresets reconstructs all stored custom presets through the
// factory and registers them. Invalid definitions are skipped with a
// warning rather than aborting startup.
func (h *Handler) LoadPresets(ctx context.Context) error {
	records, err := h.Presets.List(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		plugin, err := factory.ParsePreset(rec.ConfigJSON)
		if err != nil {
			h.log.Warn("skipping invalid stored preset", "key", rec.Key, "err", err)
			continue
		}
		if err := h.Registry.Register(plugin); err != nil {
			h.log.Warn("skipping unregistrable stored preset", "key", rec.Key, "err", err)
		}
	}
	return nil
}

// =============================================================================
// GRID HANDLERS
// =============================================================================

// GetGrid returns the month grid for ?month=YYYY-MM.
// GET /api/grid
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	monthDate, ok := h.parseMonth(r.URL.Query().Get("month"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM", nil)
		return
	}

	locale := r.URL.Query().Get("locale")
	weekStart, ok := h.parseWeekStart(r.URL.Query().Get("week_start"), locale)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid week_start, expected 0 or 1", nil)
		return
	}

	grid := h.Grids.Get(monthDate, weekStart, locale)
	writeJSON(w, http.StatusOK, toGridDTO(grid))
}

// DecorateGrid returns the decorated grid for a selection state.
// POST /api/grid/decorate
func (h *Handler) DecorateGrid(w http.ResponseWriter, r *http.Request) {
	var req DecorateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	monthDate, ok := h.parseMonth(req.Month)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM", nil)
		return
	}

	weekStart := h.Config.ResolveWeekStart(req.Locale)
	if req.WeekStart != nil {
		if *req.WeekStart != calendar.WeekStartSunday && *req.WeekStart != calendar.WeekStartMonday {
			writeError(w, http.StatusBadRequest, "invalid week_start, expected 0 or 1", nil)
			return
		}
		weekStart = *req.WeekStart
	}

	// Reject malformed dates up front; nothing is cached for bad input.
	for _, field := range []struct{ name, iso string }{
		{"start", req.Start}, {"end", req.End}, {"hover", req.Hover},
		{"min_date", req.MinDate}, {"max_date", req.MaxDate},
	} {
		if field.iso == "" {
			continue
		}
		if _, ok := h.Dates.ParseISO(field.iso); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s date %q", field.name, field.iso), nil)
			return
		}
	}
	for _, iso := range req.DisabledDates {
		if _, ok := h.Dates.ParseISO(iso); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid disabled date %q", iso), nil)
			return
		}
	}

	grid := h.Grids.Get(monthDate, weekStart, req.Locale)
	decorated := h.Highlights.Get(grid, calendar.HighlightParams{
		Start:          req.Start,
		End:            req.End,
		MinDate:        req.MinDate,
		MaxDate:        req.MaxDate,
		Hover:          req.Hover,
		DisabledDates:  req.DisabledDates,
		MultiRange:     req.MultiRange,
		SelectingStart: req.SelectingStart,
	})
	writeJSON(w, http.StatusOK, toDecoratedGridDTO(decorated))
}

// =============================================================================
// PRESET HANDLERS
// =============================================================================

// ListPresets returns all registered preset keys.
// GET /api/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PresetKeysDTO{Keys: h.Registry.Keys()})
}

// ResolvePreset resolves a preset key to an ISO range. An optional
// now=YYYY-MM-DD query forces a specific "now" for this call.
// GET /api/presets/{key}
func (h *Handler) ResolvePreset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var override calendar.Clock
	if nowParam := r.URL.Query().Get("now"); nowParam != "" {
		at, ok := h.Dates.ParseISO(nowParam)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid now date %q", nowParam), nil)
			return
		}
		override = calendar.NewFixedClock(at)
	}

	resolved := h.Resolver.Resolve(key, override)
	if resolved == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown preset %q", key), nil)
		return
	}
	writeJSON(w, http.StatusOK, ResolvedPresetDTO{
		Key:   strings.ToUpper(key),
		Start: resolved.Start,
		End:   resolved.End,
	})
}

// CreatePreset persists and registers a custom preset definition.
// Re-posting an existing key overrides it, like direct registration.
// POST /api/presets
func (h *Handler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req CreatePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	plugin, err := factory.FromJSON(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid preset definition", err)
		return
	}

	key := strings.ToUpper(plugin.Key)
	rec := store.PresetRecord{
		Key:        key,
		ConfigJSON: factory.ToJSON(req.Config),
		CreatedAt:  time.Now(),
	}
	if err := h.Presets.Save(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save preset", err)
		return
	}
	if err := h.Registry.Register(plugin); err != nil {
		// Factory output should always validate; surfacing this means a bug.
		writeError(w, http.StatusInternalServerError, "failed to register preset", err)
		return
	}

	writeJSON(w, http.StatusCreated, ResolvedPresetDTO{Key: key})
}

// DeletePreset unregisters a preset and removes its stored definition.
// DELETE /api/presets/{key}
func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	key := strings.ToUpper(chi.URLParam(r, "key"))

	unregistered := h.Registry.Unregister(key)
	err := h.Presets.Delete(r.Context(), key)
	if err != nil && !errors.Is(err, store.ErrPresetNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to delete preset", err)
		return
	}
	// Built-ins have no stored record; deleting one only unregisters it.
	if !unregistered && errors.Is(err, store.ErrPresetNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown preset %q", key), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// CacheStats reports cache occupancy.
// GET /api/admin/cache
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CacheStatsDTO{
		GridEntries:      h.Grids.Size(),
		HighlightEntries: h.Highlights.Size(),
	})
}

// ClearCaches drops both caches.
// POST /api/admin/cache/clear
func (h *Handler) ClearCaches(w http.ResponseWriter, r *http.Request) {
	h.Grids.Clear()
	h.Highlights.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// parseMonth accepts YYYY-MM and returns the first day of that month.
func (h *Handler) parseMonth(s string) (time.Time, bool) {
	if len(s) != 7 {
		return time.Time{}, false
	}
	return h.Dates.ParseISO(s + "-01")
}

// parseWeekStart resolves an explicit 0/1 query value, falling back to
// the config/locale default when absent.
func (h *Handler) parseWeekStart(s, locale string) (int, bool) {
	switch s {
	case "":
		return h.Config.ResolveWeekStart(locale), true
	case "0":
		return calendar.WeekStartSunday, true
	case "1":
		return calendar.WeekStartMonday, true
	default:
		return 0, false
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
