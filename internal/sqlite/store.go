package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"geocache-router/internal/database"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Default planner settings seeded into a fresh store.
const (
	DefaultHikingSpeedKmh         = 4.0
	DefaultTimeBudgetHours        = 8.0
	DefaultMaxElevationGainMeters = 750.0
	DefaultWindowSize             = 10
	DefaultWindowStride           = 5
)

// Store is a SQLite-based data store implementing database.DataStore
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	settingsRepo database.SettingsRepository
	runRepo      database.RunRepository
}

// New creates a new SQLite store at the specified path
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		log.Printf("Opening SQLite database at: %s", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode and a busy timeout keep concurrent CLI/server access sane
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.settingsRepo = &settingsRepository{store: store}
	store.runRepo = &runRepository{store: store}

	return store, nil
}

// GetDBPath returns the current database file path
func (s *Store) GetDBPath() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist, create everything
		return s.createSchema()
	}

	if version < schemaVersion {
		if err := s.runMigrations(version); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) createSchema() error {
	schema := fmt.Sprintf(`
	-- Schema version tracking
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (%d);

	-- Planner settings (single row table)
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		hiking_speed_kmh REAL NOT NULL DEFAULT %f,
		time_budget_hours REAL NOT NULL DEFAULT %f,
		max_elevation_gain_meters REAL NOT NULL DEFAULT %f,
		window_size INTEGER NOT NULL DEFAULT %d,
		window_stride INTEGER NOT NULL DEFAULT %d
	);
	INSERT OR IGNORE INTO settings (id) VALUES (1);

	-- Search run history
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		path TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		distance_meters REAL NOT NULL DEFAULT 0,
		elevation_gain_meters REAL NOT NULL DEFAULT 0,
		optimizer TEXT NOT NULL DEFAULT 'plan',
		output_file TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`, schemaVersion,
		DefaultHikingSpeedKmh, DefaultTimeBudgetHours, DefaultMaxElevationGainMeters,
		DefaultWindowSize, DefaultWindowStride)

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("SQLite schema initialized (version %d)", schemaVersion)
	return nil
}

func (s *Store) runMigrations(fromVersion int) error {
	// Add migrations here as schema evolves
	_, err := s.db.Exec("UPDATE schema_version SET version = ?", schemaVersion)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		// Checkpoint WAL before closing
		s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Repository accessors
func (s *Store) Settings() database.SettingsRepository { return s.settingsRepo }
func (s *Store) Runs() database.RunRepository          { return s.runRepo }
