// Package device persists device-local state: the tablet/PIN configuration
// that belongs to this physical device and is never synced to the backend.
// The whole configuration lives as one JSON blob under a fixed key, read at
// startup and rewritten on every change.
package device

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/thibaultdory/foyer/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

const tabletConfigKey = "tablet_config"

// Store is the device-state repository. The mutex serializes read-modify-
// write sequences so two same-tick mutations cannot lose updates.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the device database at path and runs migrations.
// Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open device db: %w", err)
	}
	if path == ":memory:" {
		// An in-memory database exists per connection; the pool must not
		// open a second one.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping device db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate device db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the tablet configuration. A device that was never configured
// yields the zero config, not an error.
func (s *Store) Load() (model.TabletConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (model.TabletConfig, error) {
	var cfg model.TabletConfig
	var raw string
	err := s.db.QueryRow(`SELECT value FROM device_state WHERE key = ?`, tabletConfigKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load tablet config: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return cfg, fmt.Errorf("decode tablet config: %w", err)
	}
	return cfg, nil
}

// Save replaces the stored tablet configuration.
func (s *Store) Save(cfg model.TabletConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

func (s *Store) save(cfg model.TabletConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode tablet config: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO device_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		tabletConfigKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save tablet config: %w", err)
	}
	return nil
}

// Update applies fn to the stored configuration and writes the result back
// under one lock acquisition.
func (s *Store) Update(fn func(*model.TabletConfig) error) (model.TabletConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return cfg, err
	}
	if err := fn(&cfg); err != nil {
		return cfg, err
	}
	if err := s.save(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Reset wipes all device-local state. This is the force-exit escape hatch
// for a device left unusable by failed provisioning.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM device_state`); err != nil {
		return fmt.Errorf("reset device state: %w", err)
	}
	return nil
}
