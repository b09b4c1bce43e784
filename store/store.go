/*
Package store defines persistence for custom preset definitions and
provides an in-memory implementation for tests and development.

PURPOSE:
  Built-in presets live in code; custom presets are operator-defined
  JSON (see factory package) that must survive restarts. The store
  keeps the raw definition JSON - plugins are reconstructed through the
  factory at load time, the same way they were built originally.

SEE ALSO:
  - store/sqlite: SQLite-backed implementation
  - factory: Definition JSON <-> plugin conversion
*/
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrPresetNotFound is returned when a preset key has no stored
// definition. Use with errors.Is.
var ErrPresetNotFound = errors.New("preset not found")

// PresetRecord is a persisted custom preset definition.
type PresetRecord struct {
	Key        string
	ConfigJSON string
	CreatedAt  time.Time
}

// PresetStore persists custom preset definitions. Save upserts,
// matching the registry's override-on-duplicate semantics.
type PresetStore interface {
	Save(ctx context.Context, rec PresetRecord) error
	Get(ctx context.Context, key string) (PresetRecord, error)
	List(ctx context.Context) ([]PresetRecord, error)
	Delete(ctx context.Context, key string) error
}

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	presets map[string]PresetRecord
}

func NewMemory() *Memory {
	return &Memory{presets: make(map[string]PresetRecord)}
}

func (m *Memory) Save(_ context.Context, rec PresetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.presets[rec.Key] = rec
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (PresetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.presets[key]
	if !ok {
		return PresetRecord{}, ErrPresetNotFound
	}
	return rec, nil
}

func (m *Memory) List(_ context.Context) ([]PresetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PresetRecord, 0, len(m.presets))
	for _, rec := range m.presets {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.presets[key]; !ok {
		return ErrPresetNotFound
	}
	delete(m.presets, key)
	return nil
}
