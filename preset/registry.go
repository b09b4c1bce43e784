/*
Package preset implements named date-range presets ("last 30 days",
"this quarter") as pluggable pure functions.

PURPOSE:
  A preset plugin maps a logical "now" to a concrete start/end date
  pair. Plugins receive their Clock and date primitives as arguments,
  so the same plugin produces identical output on server and client
  given the same logical now - nothing reads ambient time.

REGISTRY SEMANTICS:
  - Keys are case-normalized to upper case at registration.
  - Duplicate registration replaces the old plugin with a warning, not
    an error. This is intentional: tests and applications override
    built-ins this way.
  - Invalid plugins (empty key, nil resolve) are a programming error
    and fail registration with ErrInvalidPlugin.

SEE ALSO:
  - builtins.go: The built-in plugin set
  - resolver.go: Key -> ISO range resolution
*/
package preset

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/warp/calendar-engine/calendar"
)

// ErrInvalidPlugin is returned when a plugin fails registration
// validation. Use with errors.Is.
var ErrInvalidPlugin = errors.New("invalid preset plugin")

// =============================================================================
// PLUGIN
// =============================================================================

// Range is a resolved date pair at day granularity.
type Range struct {
	Start time.Time
	End   time.Time
}

// ResolveFunc computes a preset's range from a logical now. It must be
// pure: no ambient time reads, no shared state.
type ResolveFunc func(clock calendar.Clock, dates *calendar.Dates) Range

// Plugin is a named date-range preset.
type Plugin struct {
	Key     string
	Resolve ResolveFunc
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is a validated key -> plugin map with override-on-duplicate
// semantics. Lookups are case-insensitive.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	log     *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger uses slog.Default.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{plugins: make(map[string]Plugin), log: log}
}

// Register validates and stores a plugin under its upper-cased key.
// Registering over an existing key replaces the old plugin and logs a
// warning; this is the supported path for app-level customization of
// built-ins.
func (r *Registry) Register(p Plugin) error {
	if strings.TrimSpace(p.Key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidPlugin)
	}
	if p.Resolve == nil {
		return fmt.Errorf("%w: %s has nil resolve", ErrInvalidPlugin, p.Key)
	}

	key := strings.ToUpper(p.Key)
	p.Key = key

	r.mu.Lock()
	_, replaced := r.plugins[key]
	r.plugins[key] = p
	r.mu.Unlock()

	if replaced {
		r.log.Warn("preset plugin replaced", "key", key)
	}
	return nil
}

// RegisterAll registers plugins in order; later entries win on key
// collision. The first validation failure aborts and is returned.
func (r *Registry) RegisterAll(plugins []Plugin) error {
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// Get looks a plugin up by key, case-insensitively.
func (r *Registry) Get(key string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[strings.ToUpper(key)]
	return p, ok
}

// Has reports whether a plugin is registered under key.
func (r *Registry) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// All returns a copy of the registered plugins. Mutating the returned
// slice cannot affect the registry.
func (r *Registry) All() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	return out
}

// Keys returns the registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.plugins))
	for k := range r.plugins {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Unregister removes a plugin and reports whether it existed.
func (r *Registry) Unregister(key string) bool {
	key = strings.ToUpper(key)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.plugins[key]
	delete(r.plugins, key)
	return ok
}

// Clear removes every plugin. Intended for test teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = make(map[string]Plugin)
}
