/*
Package sqlite provides a SQLite-backed implementation of the preset
store.

PURPOSE:
  Persists custom preset definitions across restarts. In production the
  same pattern applies to PostgreSQL - only minor SQL dialect
  differences.

SCHEMA:
  presets(key TEXT PRIMARY KEY, config_json TEXT, created_at TIMESTAMP)

  Save is an upsert: re-saving a key replaces its definition, matching
  the registry's override-on-duplicate semantics.

WAL MODE:
  Opened with WAL (Write-Ahead Logging): multiple readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  st, err := sqlite.New("./data/presets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - store: Interface definition and in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/calendar-engine/store"
)

// Store implements store.PresetStore using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS presets (
		key         TEXT PRIMARY KEY,
		config_json TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Save upserts a preset definition.
func (s *Store) Save(ctx context.Context, rec store.PresetRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO presets (key, config_json, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET config_json = excluded.config_json`,
		rec.Key, rec.ConfigJSON, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save preset %s: %w", rec.Key, err)
	}
	return nil
}

// Get returns the definition stored under key.
func (s *Store) Get(ctx context.Context, key string) (store.PresetRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, config_json, created_at FROM presets WHERE key = ?`, key)

	var rec store.PresetRecord
	if err := row.Scan(&rec.Key, &rec.ConfigJSON, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.PresetRecord{}, store.ErrPresetNotFound
		}
		return store.PresetRecord{}, fmt.Errorf("failed to load preset %s: %w", key, err)
	}
	return rec, nil
}

// List returns all stored definitions ordered by key.
func (s *Store) List(ctx context.Context) ([]store.PresetRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, config_json, created_at FROM presets ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var out []store.PresetRecord
	for rows.Next() {
		var rec store.PresetRecord
		if err := rows.Scan(&rec.Key, &rec.ConfigJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preset row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a stored definition.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrPresetNotFound
	}
	return nil
}
